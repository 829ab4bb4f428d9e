package ports

import "go.trai.ch/kiln/internal/core/domain"

// DescriptorLoader defines the interface for loading the package descriptor.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type DescriptorLoader interface {
	// Load finds the descriptor file starting at cwd and returns the validated manifest.
	Load(cwd string) (*domain.Manifest, error)

	// LoadFile loads the descriptor file at path.
	LoadFile(path string) (*domain.Manifest, error)
}
