package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/whl/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/whl/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/whl/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/whl/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/whl/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/whl/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/whl/internal/adapters/wheel"              //nolint:depguard // Wired in app layer
	"go.trai.ch/whl/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			shell.NodeID,
			wheel.NodeID,
			fs.LayoutNodeID,
			cas.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	python, err := graft.Dep[ports.Interpreter](ctx)
	if err != nil {
		return nil, err
	}

	wheels, err := graft.Dep[ports.WheelArchive](ctx)
	if err != nil {
		return nil, err
	}

	layout, err := graft.Dep[ports.NamespaceLayout](ctx)
	if err != nil {
		return nil, err
	}

	state, err := graft.Dep[ports.ExtractionStore](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(log, loader, python, wheels, layout, state, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
