package domain

import "path/filepath"

const (
	// KilnDirName is the name of the internal workspace directory.
	KilnDirName = ".kiln"

	// DepsDirName is the name of the directory holding installed dependency prefixes.
	DepsDirName = "deps"

	// GeneratorsDirName is the default output folder for generated artifacts.
	GeneratorsDirName = "generators"

	// DescriptorFileName is the name of the package descriptor file.
	DescriptorFileName = "kiln.yaml"

	// ProfileFileName is the name of the optional tool settings file.
	ProfileFileName = "profile.yaml"

	// EnvPrefix is the prefix of environment variables read as tool settings.
	EnvPrefix = "KILN_"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultKilnPath returns the default root directory for kiln metadata.
func DefaultKilnPath() string {
	return KilnDirName
}

// DefaultDepsRoot returns the default root under which dependency prefixes live.
// It joins .kiln and deps.
func DefaultDepsRoot() string {
	return filepath.Join(KilnDirName, DepsDirName)
}

// DefaultOutputDir returns the default output folder for generated artifacts.
// It joins .kiln and generators.
func DefaultOutputDir() string {
	return filepath.Join(KilnDirName, GeneratorsDirName)
}

// DefaultProfilePath returns the default location of the profile file.
// It joins .kiln and profile.yaml.
func DefaultProfilePath() string {
	return filepath.Join(KilnDirName, ProfileFileName)
}
