package domain

// Manifest is a loaded descriptor file: the validated package descriptor together
// with the overrides, generators and local recipes declared next to it.
type Manifest struct {
	// Path is the descriptor file the manifest was loaded from.
	Path string
	// Root is the directory containing the descriptor file.
	Root string
	// Descriptor is the validated package identity and requirement list.
	Descriptor *PackageDescriptor
	// Overrides are the option overrides in declaration order.
	Overrides []OptionOverride
	// Generators are the requested output formats.
	Generators []GeneratorKind
	// Recipes are recipes declared locally in the descriptor file.
	Recipes []Recipe
}
