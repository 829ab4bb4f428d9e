package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/detector"
	"go.trai.ch/kiln/internal/adapters/report"
	"go.trai.ch/kiln/internal/core/domain"
)

func newReporter(t *testing.T, mode detector.OutputMode) (*report.Reporter, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}
	return report.New(buf, mode), buf
}

func TestReporter_Artifacts(t *testing.T) {
	r, buf := newReporter(t, detector.ModePlain)
	pkg, err := domain.NewPackageDescriptor("parquetpad", "0.1.0", nil, nil)
	require.NoError(t, err)

	r.Artifacts(pkg, []domain.ArtifactResult{
		{Kind: domain.GeneratorCMakeDeps, Path: "out/kiln_deps.cmake", Status: domain.StatusWritten},
		{Kind: domain.GeneratorCMakeToolchain, Path: "out/kiln_toolchain.cmake", Status: domain.StatusUnchanged},
	})

	assert.Equal(t,
		"✓ written   out/kiln_deps.cmake (cmake_deps)\n"+
			"= unchanged out/kiln_toolchain.cmake (cmake_toolchain)\n"+
			"parquetpad/0.1.0: 1 written, 1 unchanged\n",
		buf.String())
}

func TestReporter_Options(t *testing.T) {
	set := domain.NewResolvedOptionSet(
		domain.ResolvedOption{Key: domain.NewOptionKey("arrow", "parquet"), Value: domain.BoolOption(true), Source: domain.SourceOverride},
		domain.ResolvedOption{Key: domain.NewOptionKey("arrow", "shared"), Value: domain.BoolOption(true), Source: domain.SourceOverride},
		domain.ResolvedOption{Key: domain.NewOptionKey("arrow", "fPIC"), Value: domain.BoolOption(true), Source: domain.SourceDefault},
	)

	for _, mode := range []detector.OutputMode{detector.ModePlain, detector.ModeRich} {
		r, buf := newReporter(t, mode)
		r.Options(set)

		out := buf.String()
		assert.Contains(t, strings.ToUpper(out), "DEPENDENCY")
		assert.Contains(t, out, "parquet")
		assert.Contains(t, out, string(domain.SourceOverride))
		assert.Contains(t, out, string(domain.SourceDefault))
	}
}

func TestReporter_Empty(t *testing.T) {
	r, buf := newReporter(t, detector.ModePlain)
	r.Options(domain.NewResolvedOptionSet())
	r.Removed(nil)
	assert.Equal(t, "no options resolved\nnothing to clean\n", buf.String())
}

func TestReporter_Removed(t *testing.T) {
	r, buf := newReporter(t, detector.ModePlain)
	r.Removed([]string{"out/kiln_deps.cmake"})
	assert.Equal(t, "- removed out/kiln_deps.cmake\n", buf.String())
}
