package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

const (
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// WriterNodeID is the unique identifier for the artifact writer Graft node.
	WriterNodeID graft.ID = "adapter.fs.writer"
	// concreteHasherNodeID provides the concrete hasher shared by the writer.
	concreteHasherNodeID graft.ID = "adapter.fs.hasher_impl"
)

func init() {
	// Concrete hasher (needed by Writer for content hashes)
	graft.Register(graft.Node[*Hasher]{
		ID:        concreteHasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{concreteHasherNodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return hasher, nil
		},
	})

	// Writer Node
	graft.Register(graft.Node[ports.ArtifactWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{concreteHasherNodeID},
		Run: func(ctx context.Context) (ports.ArtifactWriter, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(hasher), nil
		},
	})
}
