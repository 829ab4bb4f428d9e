package ports

import "go.trai.ch/kiln/internal/core/domain"

// ArtifactWriter persists generated artifacts.
//
//go:generate mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks
type ArtifactWriter interface {
	// Write stores artifact inside dir. An identical existing file is left untouched.
	Write(dir string, artifact domain.Artifact) (domain.ArtifactResult, error)

	// Remove deletes the named artifact from dir. It reports whether a file was removed.
	Remove(dir, fileName string) (bool, error)
}
