// Package catalog resolves recipes for required dependencies.
package catalog

import (
	"github.com/Masterminds/semver/v3"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RecipeCatalog = (*Catalog)(nil)

// Catalog serves built-in recipes, shadowed by recipes declared in the descriptor.
type Catalog struct {
	builtin map[domain.Name]domain.Recipe
}

// New creates a catalog over the given built-in recipes.
func New(builtin map[domain.Name]domain.Recipe) *Catalog {
	return &Catalog{builtin: builtin}
}

// Recipe implements ports.RecipeCatalog.
func (c *Catalog) Recipe(req domain.Requirement, local []domain.Recipe) (domain.Recipe, bool, error) {
	recipe, ok := c.lookup(req.Name, local)
	if !ok {
		return domain.Recipe{Name: req.Name}, false, nil
	}
	if err := checkVersion(req, recipe); err != nil {
		return domain.Recipe{}, true, err
	}
	return recipe, true, nil
}

func (c *Catalog) lookup(name domain.Name, local []domain.Recipe) (domain.Recipe, bool) {
	for _, r := range local {
		if r.Name == name {
			return r, true
		}
	}
	r, ok := c.builtin[name]
	return r, ok
}

// checkVersion rejects exact requirements outside the recipe's supported range.
// Ranges are not intersected; they are accepted as written.
func checkVersion(req domain.Requirement, recipe domain.Recipe) error {
	if recipe.Versions == "" {
		return nil
	}
	version, exact := req.ExactVersion()
	if !exact {
		return nil
	}
	constraint, err := semver.NewConstraint(recipe.Versions)
	if err != nil {
		return domain.Invalid(zerr.With(domain.ErrInvalidRecipe, "versions", recipe.Versions))
	}
	if !constraint.Check(version) {
		err := zerr.With(domain.ErrUnsupportedVersion, "dependency", req.Name.String())
		err = zerr.With(err, "version", req.VersionSpec)
		err = zerr.With(err, "supported", recipe.Versions)
		return domain.Invalid(err)
	}
	return nil
}
