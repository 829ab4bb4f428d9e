package domain

import (
	"strings"
)

// LinkagePlaceholder expands to "shared" or "static" inside CMake target names.
const LinkagePlaceholder = "{linkage}"

// SharedOption is the boolean option that selects shared linkage of a dependency.
const SharedOption = "shared"

// Recipe describes what kiln knows about a dependency: the versions it supports,
// its default options, and how a CMake build consumes it.
type Recipe struct {
	// Name is the dependency name the recipe applies to.
	Name Name
	// Versions is a semver constraint of supported versions. Empty means any.
	Versions string
	// Defaults are the declared default options in declaration order.
	Defaults []OptionDefault
	// CMake describes the package file and imported targets.
	CMake CMakeInfo
}

// Default returns the declared default for option.
func (r Recipe) Default(option Name) (OptionValue, bool) {
	for _, d := range r.Defaults {
		if d.Name == option {
			return d.Value, true
		}
	}
	return OptionValue{}, false
}

// PackageName returns the CMake package name, falling back to the dependency name.
func (r Recipe) PackageName() string {
	if r.CMake.FileName != "" {
		return r.CMake.FileName
	}
	return r.Name.String()
}

// CMakeInfo describes how a dependency is exposed to CMake.
type CMakeInfo struct {
	// FileName is the CMake package name used by find_package (e.g., "Arrow").
	FileName string
	// Targets are the imported targets the package provides.
	Targets []CMakeTarget
}

// CMakeTarget is one imported library target.
type CMakeTarget struct {
	// Name is the target name; it may contain LinkagePlaceholder.
	Name string
	// Library is the library base name without prefix or suffix (e.g., "arrow").
	Library string
	// Component is the find_package component the target belongs to. Empty for the core.
	Component string
	// EnabledBy is a boolean option that must be true for the target to exist. Empty means always.
	EnabledBy string
	// Requires lists targets this target links against; they may contain LinkagePlaceholder.
	Requires []string
}

// Linkage returns "shared" or "static".
func Linkage(shared bool) string {
	if shared {
		return "shared"
	}
	return "static"
}

// ExpandTargetName substitutes the linkage placeholder in name.
func ExpandTargetName(name string, shared bool) string {
	return strings.ReplaceAll(name, LinkagePlaceholder, Linkage(shared))
}

// ResolvedDependency is a requirement matched with its recipe and install prefix.
type ResolvedDependency struct {
	Requirement Requirement
	Recipe      Recipe
	// Prefix is the directory the dependency is installed into.
	Prefix string
}

// Name returns the dependency name.
func (d ResolvedDependency) Name() Name {
	return d.Requirement.Name
}
