package cmake_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/catalog"
	"go.trai.ch/kiln/internal/adapters/cmake"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/resolver"
)

const (
	fingerprint = "0123456789abcdef"
	depsRoot    = "/work/.kiln/deps"
	outputDir   = "/work/.kiln/generators"
)

type fixture struct {
	name      string
	version   string
	axes      []string
	settings  map[string]string
	requires  []string
	overrides []string
}

var parquetpad = fixture{
	name:     "parquetpad",
	version:  "0.1.0",
	axes:     []string{"os", "compiler", "build_type", "arch"},
	settings: map[string]string{"os": "Linux", "compiler": "gcc", "build_type": "Release", "arch": "x86_64"},
	requires: []string{"arrow/22.0.0"},
	overrides: []string{
		"arrow:parquet=True",
		"arrow:shared=True",
	},
}

var staticDefaults = fixture{
	name:      "x",
	version:   "0.1.0",
	axes:      []string{"os"},
	settings:  map[string]string{"os": "Linux"},
	requires:  []string{"arrow/22.0.0", "lib/>=1.0"},
	overrides: []string{"lib:codec=zstd"},
}

// build assembles a generation input the way the application does.
func (f fixture) build(t *testing.T) *domain.GenerationInput {
	t.Helper()

	reqs := make([]domain.Requirement, 0, len(f.requires))
	for _, ref := range f.requires {
		r, err := domain.ParseRequirement(ref)
		require.NoError(t, err)
		reqs = append(reqs, r)
	}
	d, err := domain.NewPackageDescriptor(f.name, f.version, f.axes, reqs)
	require.NoError(t, err)

	settings, err := domain.NewSettings(d.Settings(), f.settings)
	require.NoError(t, err)

	overrides := make([]domain.OptionOverride, 0, len(f.overrides))
	for _, raw := range f.overrides {
		o, err := domain.ParseOptionOverride(raw, domain.OriginDescriptor)
		require.NoError(t, err)
		overrides = append(overrides, o)
	}

	builtin := catalog.Builtin()
	deps := make([]domain.ResolvedDependency, 0, len(reqs))
	for _, r := range reqs {
		recipe, ok := builtin[r.Name]
		if !ok {
			recipe = domain.Recipe{Name: r.Name}
		}
		prefix := depsRoot + "/" + r.Name.String()
		if _, exact := r.ExactVersion(); exact {
			prefix += "/" + r.VersionSpec
		}
		deps = append(deps, domain.ResolvedDependency{Requirement: r, Recipe: recipe, Prefix: prefix})
	}

	set, _, err := resolver.Resolve(reqs, func(dep domain.Name) []domain.OptionDefault {
		return builtin[dep].Defaults
	}, overrides)
	require.NoError(t, err)

	return &domain.GenerationInput{
		Descriptor:   d,
		Options:      set,
		Settings:     settings,
		Dependencies: deps,
		OutputDir:    outputDir,
		Fingerprint:  fingerprint,
	}
}

func TestGenerators_Golden(t *testing.T) {
	fixtures := map[string]fixture{
		"parquetpad":      parquetpad,
		"static_defaults": staticDefaults,
	}
	generators := map[string]ports.Generator{
		"deps":      cmake.NewDepsGenerator(),
		"toolchain": cmake.NewToolchainGenerator(),
		"presets":   cmake.NewPresetsGenerator(),
	}

	for fixtureName, f := range fixtures {
		for genName, gen := range generators {
			t.Run(fixtureName+"_"+genName, func(t *testing.T) {
				artifact, err := gen.Generate(f.build(t))
				require.NoError(t, err)
				assert.Equal(t, gen.Kind(), artifact.Kind)
				assert.Equal(t, gen.FileName(), artifact.FileName)

				g := goldie.New(t)
				g.Assert(t, fixtureName+"_"+genName, artifact.Content)
			})
		}
	}
}

func TestGenerators_ByteIdentical(t *testing.T) {
	for _, gen := range cmake.Generators() {
		t.Run(string(gen.Kind()), func(t *testing.T) {
			first, err := gen.Generate(parquetpad.build(t))
			require.NoError(t, err)
			for range 5 {
				again, err := gen.Generate(parquetpad.build(t))
				require.NoError(t, err)
				require.Equal(t, first.Content, again.Content)
			}
		})
	}
}

func TestDepsGenerator_PlatformLibraries(t *testing.T) {
	tests := []struct {
		os       string
		contains []string
	}{
		{"Linux", []string{`"${Arrow_LIB_DIRS}/libarrow.so"`}},
		{"Macos", []string{`"${Arrow_LIB_DIRS}/libarrow.dylib"`}},
		{"Windows", []string{
			`IMPORTED_LOCATION "${Arrow_ROOT}/bin/arrow.dll"`,
			`IMPORTED_IMPLIB "${Arrow_LIB_DIRS}/arrow.lib"`,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			f := parquetpad
			f.settings = map[string]string{"os": tt.os, "compiler": "gcc", "build_type": "Release", "arch": "x86_64"}

			artifact, err := cmake.NewDepsGenerator().Generate(f.build(t))
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, string(artifact.Content), want)
			}
		})
	}
}

func TestDepsGenerator_ParquetDisabled(t *testing.T) {
	f := parquetpad
	f.overrides = []string{"arrow:shared=True"}

	artifact, err := cmake.NewDepsGenerator().Generate(f.build(t))
	require.NoError(t, err)
	assert.Contains(t, string(artifact.Content), "Arrow::arrow_shared")
	assert.NotContains(t, string(artifact.Content), "Parquet::")
	assert.NotContains(t, string(artifact.Content), "Arrow_COMPONENTS")
}

func TestToolchainGenerator_WindowsHasNoRpath(t *testing.T) {
	f := parquetpad
	f.settings = map[string]string{"os": "Windows", "compiler": "msvc", "build_type": "Debug", "arch": "x86_64"}

	artifact, err := cmake.NewToolchainGenerator().Generate(f.build(t))
	require.NoError(t, err)
	content := string(artifact.Content)
	assert.NotContains(t, content, "RPATH")
	assert.Contains(t, content, `set(CMAKE_C_COMPILER "cl")`)
	assert.Contains(t, content, `set(CMAKE_BUILD_TYPE "Debug" CACHE STRING "Build type")`)
}

func TestGenerators_Kinds(t *testing.T) {
	var kinds []domain.GeneratorKind
	for _, g := range cmake.Generators() {
		kinds = append(kinds, g.Kind())
	}
	assert.Equal(t, []domain.GeneratorKind{
		domain.GeneratorCMakeDeps,
		domain.GeneratorCMakeToolchain,
		domain.GeneratorCMakePresets,
	}, kinds)
}
