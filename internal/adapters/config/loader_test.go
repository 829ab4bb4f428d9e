package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/config"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const parquetpad = `
name: parquetpad
version: 0.1.0
settings: [os, compiler, build_type, arch]
requires:
  - arrow/22.0.0
options:
  arrow:
    parquet: True
    shared: True
generators: [cmake_deps, cmake_toolchain]
`

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), domain.FilePerm)
	require.NoError(t, err)
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, domain.DescriptorFileName, parquetpad)

	m, err := newLoader(t).LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, dir, m.Root)
	assert.Equal(t, "parquetpad", m.Descriptor.Name())
	assert.Equal(t, "0.1.0", m.Descriptor.Version())
	assert.Equal(t, domain.NewNames([]string{"os", "compiler", "build_type", "arch"}), m.Descriptor.Settings())
	require.Len(t, m.Descriptor.Requirements(), 1)
	assert.Equal(t, "arrow/22.0.0", m.Descriptor.Requirements()[0].String())

	require.Len(t, m.Overrides, 2)
	assert.Equal(t, "arrow:parquet", m.Overrides[0].Key.String(), "declaration order is kept")
	assert.Equal(t, domain.BoolOption(true), m.Overrides[0].Value)
	assert.Equal(t, domain.OriginDescriptor, m.Overrides[0].Origin)
	assert.Equal(t, "arrow:shared", m.Overrides[1].Key.String())

	assert.Equal(t, []domain.GeneratorKind{domain.GeneratorCMakeDeps, domain.GeneratorCMakeToolchain}, m.Generators)
	assert.Empty(t, m.Recipes)
}

func TestLoader_Load_WalksUp(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.DescriptorFileName, parquetpad)

	nested := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	m, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, domain.DescriptorFileName), m.Path)
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}

func TestLoader_ListOptions(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, domain.DescriptorFileName, `
name: x
version: 0.1.0
requires: [lib/1.0]
options:
  - "lib:shared=True"
  - "lib:codec=zstd"
`)

	m, err := newLoader(t).LoadFile(path)
	require.NoError(t, err)
	require.Len(t, m.Overrides, 2)
	assert.Equal(t, domain.BoolOption(true), m.Overrides[0].Value)
	assert.Equal(t, domain.StringOption("zstd"), m.Overrides[1].Value)
}

func TestLoader_DefaultGenerators(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, domain.DescriptorFileName, "name: x\nversion: 0.1.0\n")

	m, err := newLoader(t).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGenerators(), m.Generators)
	assert.Empty(t, m.Descriptor.Requirements())
	assert.Empty(t, m.Overrides)
}

func TestLoader_LocalRecipes(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, domain.DescriptorFileName, `
name: x
version: 0.1.0
requires: [widget/2.1.0]
recipes:
  widget:
    versions: ">=2.0, <3"
    defaults:
      shared: false
      backend: opengl
    cmake:
      file_name: Widget
      targets:
        - name: Widget::widget
          library: widget
          requires: [Threads::Threads]
`)

	m, err := newLoader(t).LoadFile(path)
	require.NoError(t, err)
	require.Len(t, m.Recipes, 1)

	r := m.Recipes[0]
	assert.Equal(t, "widget", r.Name.String())
	assert.Equal(t, ">=2.0, <3", r.Versions)
	require.Len(t, r.Defaults, 2)
	assert.Equal(t, "shared", r.Defaults[0].Name.String())
	assert.Equal(t, domain.BoolOption(false), r.Defaults[0].Value)
	assert.Equal(t, domain.StringOption("opengl"), r.Defaults[1].Value)
	assert.Equal(t, "Widget", r.PackageName())
	require.Len(t, r.CMake.Targets, 1)
	assert.Equal(t, []string{"Threads::Threads"}, r.CMake.Targets[0].Requires)
}

func TestLoader_UnrequiredRecipeWarns(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, domain.DescriptorFileName, `
name: x
version: 0.1.0
recipes:
  widget:
    cmake:
      targets:
        - {name: Widget::widget, library: widget}
`)

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := config.NewLoader(mockLogger).LoadFile(path)
	require.NoError(t, err)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
		invalid bool
	}{
		{
			name:    "malformed yaml",
			content: "name: [unterminated",
			want:    domain.ErrConfigParseFailed,
		},
		{
			name:    "missing name",
			content: "version: 0.1.0\n",
			want:    domain.ErrEmptyPackageName,
			invalid: true,
		},
		{
			name:    "bad requirement",
			content: "name: x\nversion: 0.1.0\nrequires: [arrow]\n",
			want:    domain.ErrInvalidRequirement,
			invalid: true,
		},
		{
			name:    "duplicate requirement",
			content: "name: x\nversion: 0.1.0\nrequires: [arrow/22.0.0, arrow/21.0.0]\n",
			want:    domain.ErrDuplicateRequirement,
			invalid: true,
		},
		{
			name:    "option value is a list",
			content: "name: x\nversion: 0.1.0\noptions:\n  arrow:\n    shared: [1, 2]\n",
			want:    domain.ErrInvalidOverride,
			invalid: true,
		},
		{
			name:    "option value is null",
			content: "name: x\nversion: 0.1.0\noptions:\n  arrow:\n    shared:\n",
			want:    domain.ErrInvalidOverride,
			invalid: true,
		},
		{
			name:    "malformed list override",
			content: "name: x\nversion: 0.1.0\noptions: [\"arrow-shared\"]\n",
			want:    domain.ErrInvalidOverride,
			invalid: true,
		},
		{
			name:    "options is a scalar",
			content: "name: x\nversion: 0.1.0\noptions: shared\n",
			want:    domain.ErrInvalidOverride,
			invalid: true,
		},
		{
			name:    "recipe target without library",
			content: "name: x\nversion: 0.1.0\nrecipes:\n  w:\n    cmake:\n      targets: [{name: W::w}]\n",
			want:    domain.ErrInvalidRecipe,
			invalid: true,
		},
		{
			name:    "recipe with bad version range",
			content: "name: x\nversion: 0.1.0\nrecipes:\n  w:\n    versions: \"not a range!\"\n",
			want:    domain.ErrInvalidRecipe,
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := createFile(t, dir, domain.DescriptorFileName, tt.content)

			m, err := newLoader(t).LoadFile(path)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorContains(t, err, tt.want.Error())
			assert.Equal(t, tt.invalid, errors.Is(err, domain.ErrInvalidDescriptor))
		})
	}
}

func TestLoader_ReadFailure(t *testing.T) {
	_, err := newLoader(t).LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}
