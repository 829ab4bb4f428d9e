package domain

import "slices"

// GeneratorKind names an output format.
type GeneratorKind string

const (
	// GeneratorCMakeDeps emits a dependency manifest describing imported targets.
	GeneratorCMakeDeps GeneratorKind = "cmake_deps"
	// GeneratorCMakeToolchain emits a toolchain file with settings and search paths.
	GeneratorCMakeToolchain GeneratorKind = "cmake_toolchain"
	// GeneratorCMakePresets emits a CMakePresets.json pointing at the toolchain file.
	GeneratorCMakePresets GeneratorKind = "cmake_presets"
)

// DefaultGenerators returns the generators enabled when a descriptor names none.
func DefaultGenerators() []GeneratorKind {
	return []GeneratorKind{GeneratorCMakeDeps, GeneratorCMakeToolchain}
}

// UniqueGenerators removes repeated kinds, keeping first occurrences in order.
func UniqueGenerators(kinds []GeneratorKind) []GeneratorKind {
	out := make([]GeneratorKind, 0, len(kinds))
	for _, k := range kinds {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

// GenerationInput is everything a generator may read. Generators must not modify it.
type GenerationInput struct {
	Descriptor   *PackageDescriptor
	Options      *ResolvedOptionSet
	Settings     Settings
	Dependencies []ResolvedDependency
	// OutputDir is the folder the artifacts are written to.
	OutputDir string
	// Fingerprint identifies the inputs; it is written into every artifact header.
	Fingerprint string
}

// Artifact is one generated document.
type Artifact struct {
	Kind     GeneratorKind
	FileName string
	Content  []byte
}

// WriteStatus describes what the writer did with an artifact.
type WriteStatus string

const (
	// StatusWritten means the file was created or replaced.
	StatusWritten WriteStatus = "written"
	// StatusUnchanged means an identical file already existed and was left untouched.
	StatusUnchanged WriteStatus = "unchanged"
)

// ArtifactResult reports the outcome of writing one artifact.
type ArtifactResult struct {
	Kind   GeneratorKind
	Path   string
	Status WriteStatus
	// Hash is the content hash of the artifact as written.
	Hash string
}
