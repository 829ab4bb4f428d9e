package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the recipe catalog Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[ports.RecipeCatalog]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RecipeCatalog, error) {
			return New(Builtin()), nil
		},
	})
}
