package fs_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
)

func input(t *testing.T, opts ...domain.ResolvedOption) *domain.GenerationInput {
	t.Helper()
	r, err := domain.ParseRequirement("arrow/22.0.0")
	require.NoError(t, err)
	d, err := domain.NewPackageDescriptor("parquetpad", "0.1.0", []string{"os"}, []domain.Requirement{r})
	require.NoError(t, err)
	s, err := domain.NewSettings(d.Settings(), map[string]string{"os": "Linux"})
	require.NoError(t, err)

	return &domain.GenerationInput{
		Descriptor: d,
		Options:    domain.NewResolvedOptionSet(opts...),
		Settings:   s,
		Dependencies: []domain.ResolvedDependency{{
			Requirement: r,
			Recipe:      domain.Recipe{Name: r.Name},
			Prefix:      "/deps/arrow/22.0.0",
		}},
		OutputDir: "/out",
	}
}

func TestHasher_Fingerprint(t *testing.T) {
	h := fs.NewHasher()
	shared := domain.ResolvedOption{Key: domain.NewOptionKey("arrow", "shared"), Value: domain.BoolOption(true), Source: domain.SourceOverride}

	a := h.Fingerprint(input(t, shared))
	b := h.Fingerprint(input(t, shared))
	assert.Equal(t, a, b, "fingerprint must be deterministic")
	assert.Len(t, a, 16)

	other := input(t, shared)
	other.OutputDir = "/elsewhere"
	assert.Equal(t, a, h.Fingerprint(other), "output folder is not part of the fingerprint")

	static := domain.ResolvedOption{Key: domain.NewOptionKey("arrow", "shared"), Value: domain.BoolOption(false), Source: domain.SourceOverride}
	assert.NotEqual(t, a, h.Fingerprint(input(t, static)))

	asString := domain.ResolvedOption{Key: domain.NewOptionKey("arrow", "shared"), Value: domain.StringOption("true"), Source: domain.SourceOverride}
	assert.NotEqual(t, a, h.Fingerprint(input(t, asString)), "bool and string values hash differently")
}

func TestHasher_ComputeFileHash(t *testing.T) {
	h := fs.NewHasher()
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), domain.FilePerm))

	got, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, h.HashContent([]byte("content")), got)

	_, err = h.ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "generators")
	w := fs.NewWriter(fs.NewHasher())
	artifact := domain.Artifact{
		Kind:     domain.GeneratorCMakeDeps,
		FileName: "kiln_deps.cmake",
		Content:  []byte("set(x 1)\n"),
	}

	res, err := w.Write(dir, artifact)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWritten, res.Status)
	assert.Equal(t, filepath.Join(dir, "kiln_deps.cmake"), res.Path)
	assert.Equal(t, domain.GeneratorCMakeDeps, res.Kind)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, artifact.Content, data)

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
	}

	// Identical content is left untouched.
	again, err := w.Write(dir, artifact)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnchanged, again.Status)
	assert.Equal(t, res.Hash, again.Hash)

	// Changed content is replaced.
	artifact.Content = []byte("set(x 2)\n")
	changed, err := w.Write(dir, artifact)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWritten, changed.Status)
	assert.NotEqual(t, res.Hash, changed.Hash)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriter_Write_Unwritable(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), domain.FilePerm))

	w := fs.NewWriter(fs.NewHasher())
	_, err := w.Write(filepath.Join(blocker, "generators"), domain.Artifact{FileName: "a.cmake"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrOutputDirCreateFailed.Error())
}

func TestWriter_Remove(t *testing.T) {
	dir := t.TempDir()
	w := fs.NewWriter(fs.NewHasher())
	_, err := w.Write(dir, domain.Artifact{FileName: "a.cmake", Content: []byte("a")})
	require.NoError(t, err)

	removed, err := w.Remove(dir, "a.cmake")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = w.Remove(dir, "a.cmake")
	require.NoError(t, err)
	assert.False(t, removed)
}
