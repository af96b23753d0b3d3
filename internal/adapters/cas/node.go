package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/whl/internal/core/ports"
)

const NodeID graft.ID = "adapter.extraction_store"

func init() {
	graft.Register(graft.Node[ports.ExtractionStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ExtractionStore, error) {
			return NewStore(), nil
		},
	})
}
