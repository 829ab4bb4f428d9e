package ports

import "go.trai.ch/kiln/internal/core/domain"

// RecipeCatalog resolves what is known about a dependency.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type RecipeCatalog interface {
	// Recipe returns the recipe for a requirement, preferring locally declared recipes.
	// The boolean is false when no recipe is known, in which case an empty recipe is returned.
	// It fails when the required version is outside the recipe's supported range.
	Recipe(req domain.Requirement, local []domain.Recipe) (domain.Recipe, bool, error)
}
