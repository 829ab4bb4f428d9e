package domain_test

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestName(t *testing.T) {
	a := domain.NewName("arrow")
	b := domain.NewName("arrow")

	if a != b {
		t.Errorf("Expected interned names to compare equal")
	}
	if a.String() != "arrow" {
		t.Errorf("Expected String() to return %q, got %q", "arrow", a.String())
	}

	var zero domain.Name
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())
	assert.Negative(t, domain.NewName("a").Compare(domain.NewName("b")))
}

func TestNameJSON(t *testing.T) {
	type wrapper struct {
		Dep domain.Name `json:"dep"`
	}

	data, err := json.Marshal(wrapper{Dep: domain.NewName("zlib")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dep":"zlib"}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, domain.NewName("zlib"), out.Dep)
}

func TestSettings(t *testing.T) {
	axes := domain.NewNames([]string{"os", "build_type"})
	s, err := domain.NewSettings(axes, map[string]string{
		"os":         "Linux",
		"build_type": "Release",
		"arch":       "x86_64",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	v, ok := s.Get("os")
	assert.True(t, ok)
	assert.Equal(t, "Linux", v)
	_, ok = s.Get("arch")
	assert.False(t, ok, "undeclared axes are not carried")

	var order []string
	for setting := range s.All() {
		order = append(order, setting.Axis.String())
	}
	assert.Equal(t, []string{"os", "build_type"}, order)
}

func TestSettings_Unset(t *testing.T) {
	_, err := domain.NewSettings(domain.NewNames([]string{"compiler"}), map[string]string{"compiler": " "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDescriptor))
	assert.ErrorContains(t, err, domain.ErrUnsetSetting.Error())
}

func TestParseSettingOverride(t *testing.T) {
	axis, value, err := domain.ParseSettingOverride("build_type=Debug")
	require.NoError(t, err)
	assert.Equal(t, "build_type", axis)
	assert.Equal(t, "Debug", value)

	_, _, err = domain.ParseSettingOverride("build_type")
	assert.Error(t, err)
	_, _, err = domain.ParseSettingOverride("=Debug")
	assert.Error(t, err)
}

func TestRecipe(t *testing.T) {
	r := domain.Recipe{
		Name: domain.NewName("arrow"),
		Defaults: []domain.OptionDefault{
			{Name: domain.NewName("shared"), Value: domain.BoolOption(false)},
		},
	}

	v, ok := r.Default(domain.NewName("shared"))
	require.True(t, ok)
	assert.Equal(t, domain.BoolOption(false), v)
	_, ok = r.Default(domain.NewName("parquet"))
	assert.False(t, ok)

	assert.Equal(t, "arrow", r.PackageName())
	r.CMake.FileName = "Arrow"
	assert.Equal(t, "Arrow", r.PackageName())

	assert.Equal(t, "Arrow::arrow_shared", domain.ExpandTargetName("Arrow::arrow_{linkage}", true))
	assert.Equal(t, "Arrow::arrow_static", domain.ExpandTargetName("Arrow::arrow_{linkage}", false))
}

func TestUniqueGenerators(t *testing.T) {
	got := domain.UniqueGenerators([]domain.GeneratorKind{
		domain.GeneratorCMakeToolchain,
		domain.GeneratorCMakeDeps,
		domain.GeneratorCMakeToolchain,
	})
	assert.Equal(t, []domain.GeneratorKind{domain.GeneratorCMakeToolchain, domain.GeneratorCMakeDeps}, got)
}

func TestLayoutPaths(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"DefaultKilnPath", domain.DefaultKilnPath(), ".kiln"},
		{"DefaultDepsRoot", domain.DefaultDepsRoot(), filepath.Join(".kiln", "deps")},
		{"DefaultOutputDir", domain.DefaultOutputDir(), filepath.Join(".kiln", "generators")},
		{"DefaultProfilePath", domain.DefaultProfilePath(), filepath.Join(".kiln", "profile.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, tt.got)
			}
		})
	}
}
