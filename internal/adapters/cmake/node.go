package cmake

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the CMake generators Graft node.
const NodeID graft.ID = "adapter.cmake.generators"

func init() {
	graft.Register(graft.Node[[]ports.Generator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) ([]ports.Generator, error) {
			return Generators(), nil
		},
	})
}

// Generators returns every CMake generator.
func Generators() []ports.Generator {
	return []ports.Generator{
		NewDepsGenerator(),
		NewToolchainGenerator(),
		NewPresetsGenerator(),
	}
}
