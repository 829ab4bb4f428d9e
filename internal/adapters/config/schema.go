package config

import "gopkg.in/yaml.v3"

// Descriptor represents the structure of the kiln.yaml descriptor file.
type Descriptor struct {
	Name       string               `yaml:"name"`
	Version    string               `yaml:"version"`
	Settings   []string             `yaml:"settings"`
	Requires   []string             `yaml:"requires"`
	Options    yaml.Node            `yaml:"options"`
	Generators []string             `yaml:"generators"`
	Recipes    map[string]RecipeDTO `yaml:"recipes"`
}

// RecipeDTO represents a recipe declared locally in the descriptor.
type RecipeDTO struct {
	Versions string    `yaml:"versions"`
	Defaults yaml.Node `yaml:"defaults"`
	CMake    CMakeDTO  `yaml:"cmake"`
}

// CMakeDTO describes how a locally declared recipe is consumed by CMake.
type CMakeDTO struct {
	FileName string      `yaml:"file_name"`
	Targets  []TargetDTO `yaml:"targets"`
}

// TargetDTO represents an imported target of a locally declared recipe.
type TargetDTO struct {
	Name      string   `yaml:"name"`
	Library   string   `yaml:"library"`
	Component string   `yaml:"component"`
	EnabledBy string   `yaml:"enabled_by"`
	Requires  []string `yaml:"requires"`
}
