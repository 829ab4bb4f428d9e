// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/kiln/internal/core/domain"

// Generator produces one build-system artifact from the resolved inputs.
// Implementations must be pure: the same input yields byte-identical content.
//
//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type Generator interface {
	// Kind returns the generator kind this implementation handles.
	Kind() domain.GeneratorKind

	// FileName returns the name of the artifact inside the output folder.
	FileName() string

	// Generate renders the artifact.
	Generate(input *domain.GenerationInput) (domain.Artifact, error)
}
