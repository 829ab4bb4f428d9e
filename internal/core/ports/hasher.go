package ports

import "go.trai.ch/kiln/internal/core/domain"

// Hasher computes fingerprints of generation inputs.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns a stable hash of everything that influences generated output.
	Fingerprint(input *domain.GenerationInput) string
}
