package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/whl/internal/core/ports"
)

const (
	WalkerNodeID graft.ID = "adapter.fs.walker"
	HasherNodeID graft.ID = "adapter.fs.hasher"
	LayoutNodeID graft.ID = "adapter.fs.layout"
)

func init() {
	// Walker Node (Concrete implementation needed by Layout)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Hasher Node (Concrete implementation needed by the wheel archive)
	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})

	// Layout Node
	graft.Register(graft.Node[ports.NamespaceLayout]{
		ID:        LayoutNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.NamespaceLayout, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewLayout(walker), nil
		},
	})
}
