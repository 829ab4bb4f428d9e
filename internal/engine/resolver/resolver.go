// Package resolver merges recipe defaults and overrides into final option values.
package resolver

import (
	"errors"
	"fmt"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// ResolveDependency computes the options of one dependency.
//
// Every declared default is included first. Overrides targeting dep are then
// applied in order; the last value per key wins. Keys without a declared default
// are accepted and included. Overrides for other dependencies are ignored.
// A conflict is reported each time an override replaces an earlier override of
// the same key with a different value.
func ResolveDependency(
	dep domain.Name,
	defaults []domain.OptionDefault,
	overrides []domain.OptionOverride,
) ([]domain.ResolvedOption, []domain.OptionConflict) {
	resolved := make([]domain.ResolvedOption, 0, len(defaults))
	index := make(map[domain.Name]int, len(defaults))

	for _, d := range defaults {
		key := domain.OptionKey{Dependency: dep, Option: d.Name}
		opt := domain.ResolvedOption{Key: key, Value: d.Value, Source: domain.SourceDefault}
		if i, ok := index[d.Name]; ok {
			resolved[i] = opt
			continue
		}
		index[d.Name] = len(resolved)
		resolved = append(resolved, opt)
	}

	var conflicts []domain.OptionConflict
	for _, o := range overrides {
		if o.Key.Dependency != dep {
			continue
		}
		opt := domain.ResolvedOption{Key: o.Key, Value: o.Value, Source: domain.SourceOverride}

		i, ok := index[o.Key.Option]
		if !ok {
			index[o.Key.Option] = len(resolved)
			resolved = append(resolved, opt)
			continue
		}

		prev := resolved[i]
		if prev.Source == domain.SourceOverride && prev.Value != o.Value {
			conflicts = append(conflicts, domain.OptionConflict{
				Key:      o.Key,
				Previous: prev.Value,
				Value:    o.Value,
			})
		}
		resolved[i] = opt
	}

	return resolved, conflicts
}

// Resolve computes the options of every required dependency.
// defaultsFor returns the declared defaults of a dependency.
// An override naming a dependency that is not required is a validation error.
func Resolve(
	requirements []domain.Requirement,
	defaultsFor func(domain.Name) []domain.OptionDefault,
	overrides []domain.OptionOverride,
) (*domain.ResolvedOptionSet, []domain.OptionConflict, error) {
	required := make(map[domain.Name]struct{}, len(requirements))
	for _, req := range requirements {
		required[req.Name] = struct{}{}
	}
	for _, o := range overrides {
		if _, ok := required[o.Key.Dependency]; !ok {
			err := zerr.With(domain.ErrUnknownOptionTarget, "dependency", o.Key.Dependency.String())
			err = zerr.With(err, "override", o.Key.String())
			return nil, nil, domain.Invalid(err)
		}
	}

	var (
		all       []domain.ResolvedOption
		conflicts []domain.OptionConflict
	)
	for _, req := range requirements {
		opts, c := ResolveDependency(req.Name, defaultsFor(req.Name), overrides)
		all = append(all, opts...)
		conflicts = append(conflicts, c...)
	}

	return domain.NewResolvedOptionSet(all...), conflicts, nil
}

// Resolver resolves options for a manifest and reports conflicts.
type Resolver struct {
	logger ports.Logger
}

// New creates a new Resolver.
func New(logger ports.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Request is the input of Resolver.Resolve.
type Request struct {
	Requirements []domain.Requirement
	Recipes      map[domain.Name]domain.Recipe
	Overrides    []domain.OptionOverride
	// Strict turns conflicts into an error instead of warnings.
	Strict bool
}

// Resolve resolves the options of req. In strict mode any conflict fails with
// domain.ErrOptionConflict; otherwise every conflict is logged as a warning.
func (r *Resolver) Resolve(req Request) (*domain.ResolvedOptionSet, error) {
	set, conflicts, err := Resolve(req.Requirements, func(dep domain.Name) []domain.OptionDefault {
		return req.Recipes[dep].Defaults
	}, req.Overrides)
	if err != nil {
		return nil, err
	}

	if len(conflicts) == 0 {
		return set, nil
	}

	if req.Strict {
		errs := make([]error, 0, len(conflicts)+1)
		errs = append(errs, domain.ErrOptionConflict)
		for _, c := range conflicts {
			errs = append(errs, zerr.With(zerr.New(conflictMessage(c)), "option", c.Key.String()))
		}
		return nil, errors.Join(errs...)
	}

	for _, c := range conflicts {
		r.logger.Warn(conflictMessage(c))
	}
	return set, nil
}

func conflictMessage(c domain.OptionConflict) string {
	return fmt.Sprintf("option %s overridden: %s -> %s", c.Key, c.Previous, c.Value)
}
