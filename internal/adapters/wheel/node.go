package wheel

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/whl/internal/adapters/fs"
	"go.trai.ch/whl/internal/core/ports"
)

// NodeID is the unique identifier for the wheel archive Graft node.
const NodeID graft.ID = "adapter.wheel"

func init() {
	graft.Register(graft.Node[ports.WheelArchive]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.WheelArchive, error) {
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewArchive(hasher), nil
		},
	})
}
