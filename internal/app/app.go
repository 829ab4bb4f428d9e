// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"go.trai.ch/kiln/internal/adapters/detector"
	"go.trai.ch/kiln/internal/adapters/profile"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/dispatcher"
	"go.trai.ch/kiln/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader     ports.DescriptorLoader
	catalog    ports.RecipeCatalog
	detector   ports.SettingsDetector
	resolver   *resolver.Resolver
	dispatcher *dispatcher.Dispatcher
	hasher     ports.Hasher
	reporter   ports.Reporter
	watcher    ports.Watcher
	logger     ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.DescriptorLoader,
	catalog ports.RecipeCatalog,
	settingsDetector ports.SettingsDetector,
	res *resolver.Resolver,
	disp *dispatcher.Dispatcher,
	hasher ports.Hasher,
	reporter ports.Reporter,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		loader:     loader,
		catalog:    catalog,
		detector:   settingsDetector,
		resolver:   res,
		dispatcher: disp,
		hasher:     hasher,
		reporter:   reporter,
		watcher:    watcher,
		logger:     log,
	}
}

// Options configures a single run.
type Options struct {
	// Dir is where the descriptor search starts. Empty means the working directory.
	Dir string
	// File is an explicit descriptor path; it disables the upward search.
	File string
	// Profile is an explicit profile path.
	Profile string
	// Flags carries tool settings set on the command line (output folder, strict, ...).
	Flags *pflag.FlagSet
	// Overrides are "dep:key=value" option overrides, applied after the descriptor's.
	Overrides []string
	// Settings are "axis=value" settings overrides.
	Settings []string
}

// Run is everything a command needs: the loaded manifest, the effective tool
// settings and the fully resolved generation input.
type Run struct {
	Manifest *domain.Manifest
	Profile  *profile.Profile
	Input    *domain.GenerationInput
	Kinds    []domain.GeneratorKind
}

// Generate loads, resolves and writes every requested artifact.
func (a *App) Generate(ctx context.Context, opts Options) error {
	run, err := a.Prepare(opts)
	if err != nil {
		return err
	}

	results, err := a.dispatcher.Dispatch(ctx, run.Kinds, run.Input)
	if len(results) > 0 {
		a.reporter.Artifacts(run.Input.Descriptor, results)
	}
	return err
}

// Watch generates once and then again whenever the descriptor or profile changes,
// until ctx is done. Failed regenerations are logged and watching continues.
func (a *App) Watch(ctx context.Context, opts Options) error {
	run, err := a.load(opts)
	if err != nil {
		return err
	}

	if err := a.Generate(ctx, opts); err != nil {
		a.logger.Error(err)
	}

	paths := []string{run.Manifest.Path}
	if run.Profile.File != "" {
		paths = append(paths, run.Profile.File)
	}
	a.logger.Info(fmt.Sprintf("watching %s for changes", strings.Join(paths, ", ")))

	return a.watcher.Watch(ctx, paths, func() error {
		return a.Generate(ctx, opts)
	}, a.logger.Error)
}

// Options resolves the option set and prints it.
func (a *App) Options(opts Options) error {
	run, err := a.load(opts)
	if err != nil {
		return err
	}

	set, _, err := a.resolve(run)
	if err != nil {
		return err
	}
	a.reporter.Options(set)
	return nil
}

// Validate runs every step of generation except writing files.
func (a *App) Validate(opts Options) error {
	run, err := a.Prepare(opts)
	if err != nil {
		return err
	}
	if _, err := a.dispatcher.Select(run.Kinds); err != nil {
		return err
	}

	d := run.Input.Descriptor
	a.logger.Info(fmt.Sprintf("%s/%s is valid: %d dependencies, %d options",
		d.Name(), d.Version(), len(run.Input.Dependencies), run.Input.Options.Len()))
	return nil
}

// Clean removes every artifact kiln knows how to generate from the output folder.
func (a *App) Clean(opts Options) error {
	run, err := a.load(opts)
	if err != nil {
		return err
	}

	removed, err := a.dispatcher.Clean(a.dispatcher.Kinds(), run.Profile.OutputDir(run.Manifest.Root))
	a.reporter.Removed(removed)
	return err
}

// Prepare loads the descriptor and profile and builds the generation input.
func (a *App) Prepare(opts Options) (*Run, error) {
	run, err := a.load(opts)
	if err != nil {
		return nil, err
	}

	set, recipes, err := a.resolve(run)
	if err != nil {
		return nil, err
	}

	settings, err := a.settings(run, opts.Settings)
	if err != nil {
		return nil, err
	}

	m := run.Manifest
	input := &domain.GenerationInput{
		Descriptor:   m.Descriptor,
		Options:      set,
		Settings:     settings,
		Dependencies: dependencies(m.Descriptor.Requirements(), recipes, run.Profile.DepsDir(m.Root)),
		OutputDir:    run.Profile.OutputDir(m.Root),
	}
	input.Fingerprint = a.hasher.Fingerprint(input)
	run.Input = input
	return run, nil
}

// load reads the descriptor, applies command-line overrides and the profile.
func (a *App) load(opts Options) (*Run, error) {
	m, err := a.manifest(opts)
	if err != nil {
		return nil, err
	}

	p, err := profile.Load(m.Root, opts.Profile, opts.Flags)
	if err != nil {
		return nil, err
	}
	a.applyProfile(p)

	for _, raw := range opts.Overrides {
		o, err := domain.ParseOptionOverride(raw, domain.OriginCommandLine)
		if err != nil {
			return nil, err
		}
		m.Overrides = append(m.Overrides, o)
	}

	kinds := m.Generators
	if fromProfile := p.GeneratorKinds(); len(fromProfile) > 0 {
		kinds = domain.UniqueGenerators(fromProfile)
	}

	return &Run{Manifest: m, Profile: p, Kinds: kinds}, nil
}

func (a *App) manifest(opts Options) (*domain.Manifest, error) {
	if opts.File != "" {
		return a.loader.LoadFile(opts.File)
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}
	return a.loader.Load(dir)
}

// applyProfile switches logger and reporter to the profile's output settings when they support it.
func (a *App) applyProfile(p *profile.Profile) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(p.LogFormat == profile.LogFormatJSON)
	}
	if r, ok := a.reporter.(interface{ SetMode(detector.OutputMode) }); ok {
		r.SetMode(detector.ResolveMode(detector.DetectEnvironment(), p.Output))
	}
}

// resolve looks up a recipe for every requirement and resolves the options.
func (a *App) resolve(run *Run) (*domain.ResolvedOptionSet, map[domain.Name]domain.Recipe, error) {
	m := run.Manifest
	requirements := m.Descriptor.Requirements()

	recipes := make(map[domain.Name]domain.Recipe, len(requirements))
	var errs []error
	for _, req := range requirements {
		recipe, known, err := a.catalog.Recipe(req, m.Recipes)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !known {
			a.logger.Warn(fmt.Sprintf("no recipe known for %s; its options are passed through unchecked", req.Name))
		}
		recipes[req.Name] = recipe
	}
	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}

	set, err := a.resolver.Resolve(resolver.Request{
		Requirements: requirements,
		Recipes:      recipes,
		Overrides:    m.Overrides,
		Strict:       run.Profile.Strict,
	})
	if err != nil {
		return nil, nil, err
	}
	return set, recipes, nil
}

// settings merges detected values, profile settings and command-line overrides, in that order.
func (a *App) settings(run *Run, overrides []string) (domain.Settings, error) {
	descriptor := run.Manifest.Descriptor

	candidates := a.detector.Detect()
	if candidates == nil {
		candidates = make(map[string]string)
	}

	explicit := make(map[string]string, len(run.Profile.Settings)+len(overrides))
	maps.Copy(explicit, run.Profile.Settings)
	for _, raw := range overrides {
		axis, value, err := domain.ParseSettingOverride(raw)
		if err != nil {
			return domain.Settings{}, err
		}
		explicit[axis] = value
	}

	for _, axis := range slices.Sorted(maps.Keys(explicit)) {
		if !descriptor.HasSetting(domain.NewName(axis)) {
			a.logger.Warn(fmt.Sprintf("setting %q is not declared by %s and is ignored", axis, descriptor.Name()))
		}
	}
	maps.Copy(candidates, explicit)

	return domain.NewSettings(descriptor.Settings(), candidates)
}

// dependencies pairs each requirement with its recipe and install prefix.
// Exact versions install to <root>/<name>/<version>, ranges to <root>/<name>.
func dependencies(requirements []domain.Requirement, recipes map[domain.Name]domain.Recipe, depsRoot string) []domain.ResolvedDependency {
	deps := make([]domain.ResolvedDependency, 0, len(requirements))
	for _, req := range requirements {
		prefix := filepath.Join(depsRoot, req.Name.String())
		if _, exact := req.ExactVersion(); exact {
			prefix = filepath.Join(prefix, strings.TrimSpace(req.VersionSpec))
		}
		deps = append(deps, domain.ResolvedDependency{
			Requirement: req,
			Recipe:      recipes[req.Name],
			Prefix:      filepath.ToSlash(prefix),
		})
	}
	return deps
}
