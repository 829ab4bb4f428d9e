package cmake

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Generator = (*ToolchainGenerator)(nil)

// compilers maps the compiler setting to C and C++ compiler executables.
var compilers = map[string][2]string{
	"gcc":         {"gcc", "g++"},
	"clang":       {"clang", "clang++"},
	"apple-clang": {"clang", "clang++"},
	"msvc":        {"cl", "cl"},
}

// ToolchainGenerator writes a toolchain file passed to cmake with -DCMAKE_TOOLCHAIN_FILE.
type ToolchainGenerator struct{}

// NewToolchainGenerator creates a new ToolchainGenerator.
func NewToolchainGenerator() *ToolchainGenerator {
	return &ToolchainGenerator{}
}

// Kind implements ports.Generator.
func (g *ToolchainGenerator) Kind() domain.GeneratorKind {
	return domain.GeneratorCMakeToolchain
}

// FileName implements ports.Generator.
func (g *ToolchainGenerator) FileName() string {
	return ToolchainFileName
}

// Generate implements ports.Generator.
func (g *ToolchainGenerator) Generate(input *domain.GenerationInput) (domain.Artifact, error) {
	var b strings.Builder
	writeHeader(&b, input)

	if input.Settings.Len() > 0 {
		b.WriteString("\n")
		for s := range input.Settings.All() {
			fmt.Fprintf(&b, "set(KILN_SETTING_%s %s)\n", identifier(s.Axis.String()), quote(s.Value))
		}
	}

	if buildType, ok := input.Settings.Get(domain.SettingBuildType); ok {
		b.WriteString("\n")
		fmt.Fprintf(&b, "set(CMAKE_BUILD_TYPE %s CACHE STRING \"Build type\")\n", quote(buildType))
	}

	if compiler, ok := input.Settings.Get(domain.SettingCompiler); ok {
		if exe, known := compilers[compiler]; known {
			b.WriteString("\n")
			writeDefault(&b, "CMAKE_C_COMPILER", exe[0])
			writeDefault(&b, "CMAKE_CXX_COMPILER", exe[1])
		}
	}

	var (
		pic    bool
		rpaths []string
	)
	for _, dep := range input.Dependencies {
		shared := isShared(input, dep.Name())
		if shared || optionTrue(input, dep.Name(), "fPIC") {
			pic = true
		}
		if shared {
			rpaths = append(rpaths, filepath.Join(dep.Prefix, "lib"))
		}
	}

	if pic {
		b.WriteString("\n")
		b.WriteString("set(CMAKE_POSITION_INDEPENDENT_CODE ON)\n")
	}

	if len(rpaths) > 0 && targetOS(input) != "Windows" {
		b.WriteString("\n")
		writeList(&b, "APPEND", "CMAKE_BUILD_RPATH", rpaths)
		writeList(&b, "APPEND", "CMAKE_INSTALL_RPATH", rpaths)
	}

	b.WriteString("\n")
	if len(input.Dependencies) > 0 {
		prefixes := make([]string, 0, len(input.Dependencies))
		for _, dep := range input.Dependencies {
			prefixes = append(prefixes, dep.Prefix)
		}
		writeList(&b, "PREPEND", "CMAKE_PREFIX_PATH", prefixes)
	}

	b.WriteString("set(CMAKE_FIND_PACKAGE_PREFER_CONFIG ON)\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "include(\"${CMAKE_CURRENT_LIST_DIR}/%s\" OPTIONAL)\n", DepsFileName)

	return domain.Artifact{
		Kind:     g.Kind(),
		FileName: g.FileName(),
		Content:  []byte(b.String()),
	}, nil
}

func writeDefault(b *strings.Builder, variable, value string) {
	fmt.Fprintf(b, "if(NOT DEFINED %s)\n", variable)
	fmt.Fprintf(b, "  set(%s %s)\n", variable, quote(value))
	b.WriteString("endif()\n")
}

func writeList(b *strings.Builder, op, variable string, values []string) {
	fmt.Fprintf(b, "list(%s %s\n", op, variable)
	for _, v := range values {
		fmt.Fprintf(b, "  %s\n", path(v))
	}
	b.WriteString(")\n")
}
