// Package domain contains the core domain models of the descriptor interpreter:
// package descriptors, requirements, options, recipes, settings and artifacts.
package domain

import (
	"errors"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Requirement declares that the package depends on a dependency matching VersionSpec.
type Requirement struct {
	// Name is the dependency name (e.g., "arrow").
	Name Name
	// VersionSpec is an exact version ("22.0.0") or a constraint (">=21, <23").
	VersionSpec string
}

// ParseRequirement parses a "name/version" reference such as "arrow/22.0.0".
func ParseRequirement(ref string) (Requirement, error) {
	name, version, ok := strings.Cut(strings.TrimSpace(ref), "/")
	if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(version) == "" {
		return Requirement{}, invalid(zerr.With(ErrInvalidRequirement, "requirement", ref))
	}
	return Requirement{
		Name:        NewName(strings.TrimSpace(name)),
		VersionSpec: strings.TrimSpace(version),
	}, nil
}

// String returns the requirement in "name/version" form.
func (r Requirement) String() string {
	return r.Name.String() + "/" + r.VersionSpec
}

// ExactVersion returns the pinned version when VersionSpec is a single version.
func (r Requirement) ExactVersion() (*semver.Version, bool) {
	v, err := semver.StrictNewVersion(r.VersionSpec)
	if err != nil {
		// Accept the lenient forms ("22.0", "v22.0.0") as long as no operator is present.
		if strings.ContainsAny(r.VersionSpec, "<>=~^*|, xX") {
			return nil, false
		}
		v, err = semver.NewVersion(r.VersionSpec)
		if err != nil {
			return nil, false
		}
	}
	return v, true
}

func (r Requirement) validate() error {
	if r.Name.IsZero() {
		return zerr.With(ErrEmptyDependencyName, "version", r.VersionSpec)
	}
	if strings.TrimSpace(r.VersionSpec) == "" {
		return zerr.With(ErrEmptyVersionSpec, "dependency", r.Name.String())
	}
	if _, err := semver.NewConstraint(r.VersionSpec); err != nil {
		err := zerr.With(ErrInvalidVersionSpec, "dependency", r.Name.String())
		return zerr.With(err, "version", r.VersionSpec)
	}
	return nil
}

// PackageDescriptor is the validated, immutable identity of the package being configured.
type PackageDescriptor struct {
	name         string
	version      string
	settings     []Name
	requirements []Requirement
}

// NewPackageDescriptor validates and constructs a PackageDescriptor.
// Settings keep their declaration order; requirements must be unique by dependency name.
func NewPackageDescriptor(
	name, version string,
	settings []string,
	requirements []Requirement,
) (*PackageDescriptor, error) {
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)

	if name == "" {
		return nil, invalid(ErrEmptyPackageName)
	}
	if version == "" {
		return nil, invalid(zerr.With(ErrEmptyPackageVersion, "package", name))
	}

	axes := make([]Name, 0, len(settings))
	for _, axis := range settings {
		axis = strings.TrimSpace(axis)
		if axis == "" {
			return nil, invalid(zerr.With(ErrEmptySetting, "package", name))
		}
		n := NewName(axis)
		if slices.Contains(axes, n) {
			return nil, invalid(zerr.With(ErrDuplicateSetting, "axis", axis))
		}
		axes = append(axes, n)
	}

	seen := make(map[Name]struct{}, len(requirements))
	reqs := make([]Requirement, 0, len(requirements))
	for _, req := range requirements {
		if err := req.validate(); err != nil {
			return nil, invalid(err)
		}
		if _, dup := seen[req.Name]; dup {
			return nil, invalid(zerr.With(ErrDuplicateRequirement, "dependency", req.Name.String()))
		}
		seen[req.Name] = struct{}{}
		reqs = append(reqs, req)
	}

	return &PackageDescriptor{
		name:         name,
		version:      version,
		settings:     axes,
		requirements: reqs,
	}, nil
}

// Name returns the package name.
func (d *PackageDescriptor) Name() string {
	return d.name
}

// Version returns the package version.
func (d *PackageDescriptor) Version() string {
	return d.version
}

// Settings returns the declared settings axes in declaration order.
func (d *PackageDescriptor) Settings() []Name {
	return slices.Clone(d.settings)
}

// HasSetting reports whether axis is one of the declared settings axes.
func (d *PackageDescriptor) HasSetting(axis Name) bool {
	return slices.Contains(d.settings, axis)
}

// Requirements returns the requirement list in declaration order.
func (d *PackageDescriptor) Requirements() []Requirement {
	return slices.Clone(d.requirements)
}

// Requirement returns the requirement for the named dependency.
func (d *PackageDescriptor) Requirement(dep Name) (Requirement, bool) {
	for _, req := range d.requirements {
		if req.Name == dep {
			return req, true
		}
	}
	return Requirement{}, false
}

// invalid classifies err as a descriptor validation failure.
func invalid(err error) error {
	return errors.Join(ErrInvalidDescriptor, err)
}

// Invalid classifies err as a descriptor validation failure.
// Adapters use it so every validation problem can be matched with ErrInvalidDescriptor.
func Invalid(err error) error {
	if errors.Is(err, ErrInvalidDescriptor) {
		return err
	}
	return invalid(err)
}
