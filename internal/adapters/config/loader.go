// Package config provides the descriptor loader for kiln.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.DescriptorLoader = (*Loader)(nil)

// Loader implements ports.DescriptorLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load walks up from cwd to the nearest kiln.yaml and loads it.
func (l *Loader) Load(cwd string) (*domain.Manifest, error) {
	path, err := findDescriptor(cwd)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(path)
}

// LoadFile reads and validates the descriptor at path.
func (l *Loader) LoadFile(path string) (*domain.Manifest, error) {
	var dto Descriptor
	if err := readAndUnmarshalYAML(path, &dto); err != nil {
		return nil, err
	}

	requirements := make([]domain.Requirement, 0, len(dto.Requires))
	for _, ref := range dto.Requires {
		r, err := domain.ParseRequirement(ref)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, r)
	}

	descriptor, err := domain.NewPackageDescriptor(dto.Name, dto.Version, dto.Settings, requirements)
	if err != nil {
		return nil, err
	}

	overrides, err := parseOptions(&dto.Options)
	if err != nil {
		return nil, domain.Invalid(err)
	}

	recipes, err := buildRecipes(dto.Recipes)
	if err != nil {
		return nil, domain.Invalid(err)
	}

	for _, r := range recipes {
		if _, required := descriptor.Requirement(r.Name); !required {
			l.Logger.Warn(fmt.Sprintf("recipe %q declared in %s is not required and has no effect", r.Name, domain.DescriptorFileName))
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}

	return &domain.Manifest{
		Path:       abs,
		Root:       filepath.Dir(abs),
		Descriptor: descriptor,
		Overrides:  overrides,
		Generators: buildGenerators(dto.Generators),
		Recipes:    recipes,
	}, nil
}

func findDescriptor(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.DescriptorFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}
	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

// parseOptions reads the options section, keeping declaration order.
// Two shapes are accepted and may not be mixed:
//
//	options:            options:
//	  arrow:              - "arrow:shared=True"
//	    shared: true      - "arrow:parquet=True"
func parseOptions(node *yaml.Node) ([]domain.OptionOverride, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
		var overrides []domain.OptionOverride
		for i := 0; i+1 < len(node.Content); i += 2 {
			depNode, optsNode := node.Content[i], node.Content[i+1]
			dep := strings.TrimSpace(depNode.Value)
			if dep == "" {
				return nil, invalidAt(domain.ErrInvalidOverride, depNode)
			}
			defaults, err := parseOptionMapping(optsNode)
			if err != nil {
				return nil, zerr.With(err, "dependency", dep)
			}
			for _, d := range defaults {
				overrides = append(overrides, domain.OptionOverride{
					Key:    domain.OptionKey{Dependency: domain.NewName(dep), Option: d.Name},
					Value:  d.Value,
					Origin: domain.OriginDescriptor,
				})
			}
		}
		return overrides, nil
	case yaml.SequenceNode:
		overrides := make([]domain.OptionOverride, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, invalidAt(domain.ErrInvalidOverride, item)
			}
			o, err := domain.ParseOptionOverride(item.Value, domain.OriginDescriptor)
			if err != nil {
				return nil, err
			}
			overrides = append(overrides, o)
		}
		return overrides, nil
	default:
		return nil, invalidAt(domain.ErrInvalidOverride, node)
	}
}

// parseOptionMapping reads a key -> scalar mapping in declaration order.
func parseOptionMapping(node *yaml.Node) ([]domain.OptionDefault, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, invalidAt(domain.ErrInvalidOverride, node)
	}

	out := make([]domain.OptionDefault, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := strings.TrimSpace(keyNode.Value)
		if key == "" {
			return nil, invalidAt(domain.ErrInvalidOverride, keyNode)
		}
		value, err := optionValue(valueNode)
		if err != nil {
			return nil, zerr.With(err, "option", key)
		}
		out = append(out, domain.OptionDefault{Name: domain.NewName(key), Value: value})
	}
	return out, nil
}

func optionValue(node *yaml.Node) (domain.OptionValue, error) {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return domain.OptionValue{}, invalidAt(domain.ErrInvalidOverride, node)
	}
	if node.Tag == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return domain.OptionValue{}, invalidAt(zerr.Wrap(err, domain.ErrInvalidOverride.Error()), node)
		}
		return domain.BoolOption(b), nil
	}
	return domain.ParseOptionValue(node.Value), nil
}

func buildRecipes(dtos map[string]RecipeDTO) ([]domain.Recipe, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	// Sort names for determinism
	names := make([]string, 0, len(dtos))
	for name := range dtos {
		names = append(names, name)
	}
	slices.Sort(names)

	recipes := make([]domain.Recipe, 0, len(names))
	for _, name := range names {
		dto := dtos[name]
		recipe, err := buildRecipe(name, &dto)
		if err != nil {
			return nil, zerr.With(err, "recipe", name)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func buildRecipe(name string, dto *RecipeDTO) (domain.Recipe, error) {
	if dto.Versions != "" {
		if _, err := semver.NewConstraint(dto.Versions); err != nil {
			return domain.Recipe{}, zerr.With(domain.ErrInvalidRecipe, "versions", dto.Versions)
		}
	}

	defaults, err := parseOptionMapping(&dto.Defaults)
	if err != nil {
		return domain.Recipe{}, err
	}

	targets := make([]domain.CMakeTarget, 0, len(dto.CMake.Targets))
	for _, t := range dto.CMake.Targets {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Library) == "" {
			return domain.Recipe{}, zerr.With(domain.ErrInvalidRecipe, "target", t.Name)
		}
		targets = append(targets, domain.CMakeTarget{
			Name:      t.Name,
			Library:   t.Library,
			Component: t.Component,
			EnabledBy: t.EnabledBy,
			Requires:  t.Requires,
		})
	}

	return domain.Recipe{
		Name:     domain.NewName(name),
		Versions: dto.Versions,
		Defaults: defaults,
		CMake: domain.CMakeInfo{
			FileName: dto.CMake.FileName,
			Targets:  targets,
		},
	}, nil
}

func buildGenerators(names []string) []domain.GeneratorKind {
	if len(names) == 0 {
		return domain.DefaultGenerators()
	}
	kinds := make([]domain.GeneratorKind, 0, len(names))
	for _, n := range names {
		kinds = append(kinds, domain.GeneratorKind(strings.TrimSpace(n)))
	}
	return domain.UniqueGenerators(kinds)
}

// invalidAt attaches the source line of node to err. The caller classifies the result.
func invalidAt(err error, node *yaml.Node) error {
	return zerr.With(err, "line", node.Line)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "file", configPath)
	}

	return nil
}
