package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/cmd/kiln/commands"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
)

type mockApp struct {
	calls []string
	opts  app.Options
	err   error
}

func (m *mockApp) record(name string, opts app.Options) error {
	m.calls = append(m.calls, name)
	m.opts = opts
	return m.err
}

func (m *mockApp) Generate(_ context.Context, opts app.Options) error {
	return m.record("generate", opts)
}

func (m *mockApp) Watch(_ context.Context, opts app.Options) error {
	return m.record("watch", opts)
}

func (m *mockApp) Options(opts app.Options) error { return m.record("options", opts) }

func (m *mockApp) Validate(opts app.Options) error { return m.record("validate", opts) }

func (m *mockApp) Clean(opts app.Options) error { return m.record("clean", opts) }

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	cli.SetArgs(args)
	out := &bytes.Buffer{}
	cli.SetOutput(out, out)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Generate(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "generate",
		"--file", "pkg/kiln.yaml",
		"-o", "arrow:parquet=True",
		"-o", "arrow:shared=True",
		"-s", "build_type=Debug",
		"-g", "cmake_deps,cmake_presets",
		"--strict",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"generate"}, m.calls)
	assert.Equal(t, "pkg/kiln.yaml", m.opts.File)
	assert.Equal(t, []string{"arrow:parquet=True", "arrow:shared=True"}, m.opts.Overrides)
	assert.Equal(t, []string{"build_type=Debug"}, m.opts.Settings)
	require.NotNil(t, m.opts.Flags)
	assert.True(t, m.opts.Flags.Changed("strict"))
	gens, err := m.opts.Flags.GetStringSlice("generators")
	require.NoError(t, err)
	assert.Equal(t, []string{"cmake_deps", "cmake_presets"}, gens)
}

func TestCommands_GenerateWatch(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "generate", "--watch")
	require.NoError(t, err)
	assert.Equal(t, []string{"watch"}, m.calls)
}

func TestCommands_Subcommands(t *testing.T) {
	for _, name := range []string{"options", "validate", "clean"} {
		t.Run(name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, name, "--profile", "ci.yaml")
			require.NoError(t, err)
			assert.Equal(t, []string{name}, m.calls)
			assert.Equal(t, "ci.yaml", m.opts.Profile)
		})
	}
}

func TestCommands_PropagatesErrors(t *testing.T) {
	m := &mockApp{err: errors.New("simulated error")}
	_, err := execute(t, m, "validate")
	require.Error(t, err)
	assert.Equal(t, "simulated error", err.Error())
}

func TestCommands_RejectsArgs(t *testing.T) {
	_, err := execute(t, &mockApp{}, "generate", "extra")
	require.Error(t, err)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "kiln version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "kiln version "+build.Version)
}
