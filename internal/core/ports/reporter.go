package ports

import "go.trai.ch/kiln/internal/core/domain"

// Reporter presents results to the user.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Artifacts reports the outcome of a generation run.
	Artifacts(pkg *domain.PackageDescriptor, results []domain.ArtifactResult)

	// Options prints the resolved option table.
	Options(set *domain.ResolvedOptionSet)

	// Removed reports artifacts deleted by clean.
	Removed(paths []string)
}
