package dispatcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/cmake" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/fs"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the dispatcher Graft node.
const NodeID graft.ID = "engine.dispatcher"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.WriterNodeID,
			cmake.NodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			writer, err := graft.Dep[ports.ArtifactWriter](ctx)
			if err != nil {
				return nil, err
			}

			generators, err := graft.Dep[[]ports.Generator](ctx)
			if err != nil {
				return nil, err
			}

			return New(writer, generators...), nil
		},
	})
}
