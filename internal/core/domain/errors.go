package domain

import "go.trai.ch/zerr"

// Error kinds. Every failure surfaced by kiln is joined with exactly one of these,
// so callers can classify it with errors.Is.
var (
	// ErrInvalidDescriptor is returned when a package descriptor is malformed.
	ErrInvalidDescriptor = zerr.New("invalid package descriptor")

	// ErrOptionConflict is returned in strict mode when overrides contradict each other.
	ErrOptionConflict = zerr.New("conflicting option overrides")

	// ErrGenerationFailed is returned when a generator cannot produce or write its artifact.
	ErrGenerationFailed = zerr.New("generation failed")
)

var (
	// ErrEmptyPackageName is returned when the descriptor has no name.
	ErrEmptyPackageName = zerr.New("package name must not be empty")

	// ErrEmptyPackageVersion is returned when the descriptor has no version.
	ErrEmptyPackageVersion = zerr.New("package version must not be empty")

	// ErrDuplicateRequirement is returned when a dependency is required more than once.
	ErrDuplicateRequirement = zerr.New("duplicate requirement")

	// ErrEmptyDependencyName is returned when a requirement has no dependency name.
	ErrEmptyDependencyName = zerr.New("requirement dependency name must not be empty")

	// ErrEmptyVersionSpec is returned when a requirement has no version specification.
	ErrEmptyVersionSpec = zerr.New("requirement version must not be empty")

	// ErrInvalidVersionSpec is returned when a requirement version is neither a version nor a constraint.
	ErrInvalidVersionSpec = zerr.New("invalid requirement version, expected a semantic version or constraint")

	// ErrInvalidRequirement is returned when a requirement reference is not in name/version form.
	ErrInvalidRequirement = zerr.New("invalid requirement reference, expected format: name/version")

	// ErrDuplicateSetting is returned when a settings axis is declared twice.
	ErrDuplicateSetting = zerr.New("duplicate settings axis")

	// ErrEmptySetting is returned when a settings axis name is empty.
	ErrEmptySetting = zerr.New("settings axis name must not be empty")

	// ErrUnsetSetting is returned when a declared settings axis has no value.
	ErrUnsetSetting = zerr.New("settings axis has no value")

	// ErrInvalidOverride is returned when an option override cannot be parsed.
	ErrInvalidOverride = zerr.New("invalid option override, expected format: dependency:option=value")

	// ErrInvalidSettingOverride is returned when a setting override cannot be parsed.
	ErrInvalidSettingOverride = zerr.New("invalid setting override, expected format: axis=value")

	// ErrUnknownOptionTarget is returned when an override names a dependency that is not required.
	ErrUnknownOptionTarget = zerr.New("option override targets a dependency that is not required")

	// ErrUnsupportedVersion is returned when a required version is outside a recipe's supported range.
	ErrUnsupportedVersion = zerr.New("required version is not supported by recipe")

	// ErrInvalidRecipe is returned when a locally declared recipe is malformed.
	ErrInvalidRecipe = zerr.New("invalid recipe")

	// ErrUnknownGenerator is returned when an unsupported generator kind is requested.
	ErrUnknownGenerator = zerr.New("unknown generator")

	// ErrConfigReadFailed is returned when the descriptor file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read descriptor file")

	// ErrConfigParseFailed is returned when the descriptor file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse descriptor file")

	// ErrConfigNotFound is returned when no descriptor file can be found.
	ErrConfigNotFound = zerr.New("could not find " + DescriptorFileName)

	// ErrProfileLoadFailed is returned when tool settings cannot be loaded.
	ErrProfileLoadFailed = zerr.New("failed to load profile")

	// ErrArtifactWriteFailed is returned when a generated artifact cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrArtifactRemoveFailed is returned when a generated artifact cannot be removed.
	ErrArtifactRemoveFailed = zerr.New("failed to remove artifact")

	// ErrOutputDirCreateFailed is returned when the output folder cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output folder")

	// ErrFileHashFailed is returned when hashing an existing artifact fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch files")
)
