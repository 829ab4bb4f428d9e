// Package dispatcher runs the enabled generators and persists their artifacts.
package dispatcher

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Dispatcher knows generators by kind and runs them independently.
type Dispatcher struct {
	generators map[domain.GeneratorKind]ports.Generator
	writer     ports.ArtifactWriter
}

// New creates a Dispatcher. A later generator replaces an earlier one of the same kind.
func New(writer ports.ArtifactWriter, generators ...ports.Generator) *Dispatcher {
	byKind := make(map[domain.GeneratorKind]ports.Generator, len(generators))
	for _, g := range generators {
		byKind[g.Kind()] = g
	}
	return &Dispatcher{generators: byKind, writer: writer}
}

// Kinds returns the registered generator kinds, sorted.
func (d *Dispatcher) Kinds() []domain.GeneratorKind {
	kinds := make([]domain.GeneratorKind, 0, len(d.generators))
	for k := range d.generators {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Select de-duplicates kinds and returns their generators in order.
// Any unknown kind fails validation before anything runs.
func (d *Dispatcher) Select(kinds []domain.GeneratorKind) ([]ports.Generator, error) {
	kinds = domain.UniqueGenerators(kinds)
	selected := make([]ports.Generator, 0, len(kinds))
	for _, k := range kinds {
		g, ok := d.generators[k]
		if !ok {
			return nil, domain.Invalid(zerr.With(domain.ErrUnknownGenerator, "generator", string(k)))
		}
		selected = append(selected, g)
	}
	return selected, nil
}

// Dispatch runs every requested generator and writes its artifact to input.OutputDir.
//
// Generators run concurrently and do not affect one another: a failing generator
// does not prevent the others from writing. Results are returned in requested
// order for the generators that succeeded. Failures are joined with
// domain.ErrGenerationFailed and are not retried.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	kinds []domain.GeneratorKind,
	input *domain.GenerationInput,
) ([]domain.ArtifactResult, error) {
	selected, err := d.Select(kinds)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ArtifactResult, len(selected))
	errs := make([]error, len(selected))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, gen := range selected {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = generationError(gen, err)
				return nil
			}
			res, err := d.run(gen, input)
			if err != nil {
				errs[i] = generationError(gen, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	var (
		ok     []domain.ArtifactResult
		failed []error
	)
	for i := range selected {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		ok = append(ok, results[i])
	}

	if len(failed) > 0 {
		return ok, errors.Join(append([]error{domain.ErrGenerationFailed}, failed...)...)
	}
	return ok, nil
}

func (d *Dispatcher) run(gen ports.Generator, input *domain.GenerationInput) (domain.ArtifactResult, error) {
	artifact, err := gen.Generate(input)
	if err != nil {
		return domain.ArtifactResult{}, err
	}
	if artifact.Kind == "" {
		artifact.Kind = gen.Kind()
	}
	if artifact.FileName == "" {
		artifact.FileName = gen.FileName()
	}
	return d.writer.Write(input.OutputDir, artifact)
}

func generationError(gen ports.Generator, err error) error {
	return zerr.With(zerr.Wrap(err, "generator failed"), "generator", string(gen.Kind()))
}

// Clean removes the artifacts owned by the requested generators from dir.
// It returns the paths that were removed.
func (d *Dispatcher) Clean(kinds []domain.GeneratorKind, dir string) ([]string, error) {
	selected, err := d.Select(kinds)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, gen := range selected {
		ok, err := d.writer.Remove(dir, gen.FileName())
		if err != nil {
			return removed, errors.Join(domain.ErrGenerationFailed, generationError(gen, err))
		}
		if ok {
			removed = append(removed, filepath.Join(dir, gen.FileName()))
		}
	}
	return removed, nil
}
