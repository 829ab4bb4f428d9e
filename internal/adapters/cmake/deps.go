package cmake

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Generator = (*DepsGenerator)(nil)

// DepsGenerator writes one script declaring an imported target for every library
// of every dependency, as find_package config files would.
type DepsGenerator struct{}

// NewDepsGenerator creates a new DepsGenerator.
func NewDepsGenerator() *DepsGenerator {
	return &DepsGenerator{}
}

// Kind implements ports.Generator.
func (g *DepsGenerator) Kind() domain.GeneratorKind {
	return domain.GeneratorCMakeDeps
}

// FileName implements ports.Generator.
func (g *DepsGenerator) FileName() string {
	return DepsFileName
}

// Generate implements ports.Generator.
func (g *DepsGenerator) Generate(input *domain.GenerationInput) (domain.Artifact, error) {
	var b strings.Builder
	writeHeader(&b, input)

	for _, dep := range input.Dependencies {
		b.WriteString("\n")
		writeDependency(&b, input, dep)
	}

	return domain.Artifact{
		Kind:     g.Kind(),
		FileName: g.FileName(),
		Content:  []byte(b.String()),
	}, nil
}

func writeDependency(b *strings.Builder, input *domain.GenerationInput, dep domain.ResolvedDependency) {
	pkg := dep.Recipe.PackageName()
	shared := isShared(input, dep.Name())

	fmt.Fprintf(b, "# %s\n", dep.Requirement)
	fmt.Fprintf(b, "set(%s_ROOT %s)\n", pkg, path(dep.Prefix))
	if _, exact := dep.Requirement.ExactVersion(); exact {
		fmt.Fprintf(b, "set(%s_VERSION %s)\n", pkg, quote(dep.Requirement.VersionSpec))
	} else {
		fmt.Fprintf(b, "set(%s_VERSION_RANGE %s)\n", pkg, quote(dep.Requirement.VersionSpec))
	}
	fmt.Fprintf(b, "set(%s_INCLUDE_DIRS \"${%s_ROOT}/include\")\n", pkg, pkg)
	fmt.Fprintf(b, "set(%s_LIB_DIRS \"${%s_ROOT}/lib\")\n", pkg, pkg)

	definitions := compileDefinitions(input, dep.Name())
	if len(definitions) > 0 {
		fmt.Fprintf(b, "set(%s_DEFINITIONS\n", pkg)
		for _, d := range definitions {
			fmt.Fprintf(b, "  %s\n", quote(d))
		}
		b.WriteString(")\n")
	}

	var components []string
	targets := enabledTargets(input, dep)
	if len(targets) == 0 {
		fmt.Fprintf(b, "# no imported targets are known for %s\n", dep.Name())
	}
	for _, t := range targets {
		writeTarget(b, input, pkg, t, shared, len(definitions) > 0)
		if t.Component != "" && !slices.Contains(components, t.Component) {
			components = append(components, t.Component)
		}
	}

	if len(components) > 0 {
		fmt.Fprintf(b, "set(%s_COMPONENTS %s)\n", pkg, strings.Join(components, ";"))
		for _, c := range components {
			fmt.Fprintf(b, "set(%s_%s_FOUND TRUE)\n", pkg, c)
		}
	}
	fmt.Fprintf(b, "set(%s_FOUND TRUE)\n", pkg)
}

// compileDefinitions renders every resolved option of dep as KILN_<DEP>_<OPTION>=<value>.
func compileDefinitions(input *domain.GenerationInput, dep domain.Name) []string {
	var defs []string
	for opt := range input.Options.For(dep) {
		value := opt.Value.String()
		if b, ok := opt.Value.Bool(); ok {
			value = "0"
			if b {
				value = "1"
			}
		}
		defs = append(defs, fmt.Sprintf("KILN_%s_%s=%s", identifier(dep.String()), identifier(opt.Key.Option.String()), value))
	}
	return defs
}

func enabledTargets(input *domain.GenerationInput, dep domain.ResolvedDependency) []domain.CMakeTarget {
	var out []domain.CMakeTarget
	for _, t := range dep.Recipe.CMake.Targets {
		if t.EnabledBy != "" && !optionTrue(input, dep.Name(), t.EnabledBy) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func writeTarget(
	b *strings.Builder,
	input *domain.GenerationInput,
	pkg string,
	t domain.CMakeTarget,
	shared bool,
	hasDefinitions bool,
) {
	name := domain.ExpandTargetName(t.Name, shared)
	kind := "STATIC"
	if shared {
		kind = "SHARED"
	}

	fmt.Fprintf(b, "if(NOT TARGET %s)\n", name)
	fmt.Fprintf(b, "  add_library(%s %s IMPORTED)\n", name, kind)
	fmt.Fprintf(b, "  set_target_properties(%s PROPERTIES\n", name)
	for _, prop := range libraryProperties(pkg, t.Library, shared, targetOS(input)) {
		fmt.Fprintf(b, "    %s\n", prop)
	}
	fmt.Fprintf(b, "    INTERFACE_INCLUDE_DIRECTORIES \"${%s_INCLUDE_DIRS}\"\n", pkg)
	if hasDefinitions {
		fmt.Fprintf(b, "    INTERFACE_COMPILE_DEFINITIONS \"${%s_DEFINITIONS}\"\n", pkg)
	}
	if len(t.Requires) > 0 {
		requires := make([]string, 0, len(t.Requires))
		for _, r := range t.Requires {
			requires = append(requires, domain.ExpandTargetName(r, shared))
		}
		fmt.Fprintf(b, "    INTERFACE_LINK_LIBRARIES %s\n", quote(strings.Join(requires, ";")))
	}
	b.WriteString("  )\n")
	b.WriteString("endif()\n")
}

// libraryProperties returns the IMPORTED_* properties locating the library file.
func libraryProperties(pkg, library string, shared bool, system string) []string {
	switch {
	case system == "Windows" && shared:
		return []string{
			fmt.Sprintf("IMPORTED_LOCATION \"${%s_ROOT}/bin/%s.dll\"", pkg, library),
			fmt.Sprintf("IMPORTED_IMPLIB \"${%s_LIB_DIRS}/%s.lib\"", pkg, library),
		}
	case system == "Windows":
		return []string{fmt.Sprintf("IMPORTED_LOCATION \"${%s_LIB_DIRS}/%s.lib\"", pkg, library)}
	case system == "Macos" && shared:
		return []string{fmt.Sprintf("IMPORTED_LOCATION \"${%s_LIB_DIRS}/lib%s.dylib\"", pkg, library)}
	case shared:
		return []string{fmt.Sprintf("IMPORTED_LOCATION \"${%s_LIB_DIRS}/lib%s.so\"", pkg, library)}
	default:
		return []string{fmt.Sprintf("IMPORTED_LOCATION \"${%s_LIB_DIRS}/lib%s.a\"", pkg, library)}
	}
}
