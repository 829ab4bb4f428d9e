// Package profile loads kiln's tool settings.
//
// Values are layered, highest precedence first: command-line flags, KILN_
// environment variables, the profile file, and built-in defaults.
package profile

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Log formats.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// Profile holds tool settings. It never describes the package itself.
type Profile struct {
	OutputFolder string            `koanf:"output_folder"`
	DepsRoot     string            `koanf:"deps_root"`
	LogFormat    string            `koanf:"log_format"`
	Output       string            `koanf:"output"`
	Strict       bool              `koanf:"strict"`
	Generators   []string          `koanf:"generators"`
	Settings     map[string]string `koanf:"settings"`

	// File is the profile file that was read, if any.
	File string `koanf:"-"`
}

// Defaults returns the built-in tool settings.
func Defaults() map[string]any {
	return map[string]any{
		"output_folder": domain.DefaultOutputDir(),
		"deps_root":     domain.DefaultDepsRoot(),
		"log_format":    LogFormatPretty,
		"output":        "auto",
		"strict":        false,
	}
}

// Load reads the tool settings for the project rooted at root.
// An explicit path must exist; otherwise root/.kiln/profile.yaml is used when present.
// Only flags that were explicitly set override lower layers.
func Load(root, explicit string, flags *pflag.FlagSet) (*Profile, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, zerr.Wrap(err, domain.ErrProfileLoadFailed.Error())
	}

	// 2. Profile file
	path, err := findProfile(root, explicit)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrProfileLoadFailed.Error()), "file", path)
		}
	}

	// 3. Environment (KILN_OUTPUT_FOLDER -> output_folder, KILN_SETTINGS_OS -> settings.os)
	if err := k.Load(env.Provider(domain.EnvPrefix, ".", envKey), nil); err != nil {
		return nil, zerr.Wrap(err, domain.ErrProfileLoadFailed.Error())
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, known := flagKeys[key]; !known {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, zerr.Wrap(err, domain.ErrProfileLoadFailed.Error())
		}
	}

	var p Profile
	if err := k.Unmarshal("", &p); err != nil {
		return nil, zerr.Wrap(err, domain.ErrProfileLoadFailed.Error())
	}
	p.File = path
	p.Generators = splitList(p.Generators)

	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// flagKeys are the flag names, in config-key form, that map onto profile keys.
var flagKeys = map[string]struct{}{
	"output_folder": {},
	"deps_root":     {},
	"log_format":    {},
	"output":        {},
	"strict":        {},
	"generators":    {},
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, domain.EnvPrefix))
	if axis, ok := strings.CutPrefix(key, "settings_"); ok {
		return "settings." + axis
	}
	return key
}

func findProfile(root, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrProfileLoadFailed.Error()), "file", explicit)
		}
		return explicit, nil
	}
	candidate := filepath.Join(root, domain.DefaultProfilePath())
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// splitList accepts "a,b" from environment variables as two entries.
func splitList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (p *Profile) validate() error {
	if !slices.Contains([]string{LogFormatPretty, LogFormatJSON}, p.LogFormat) {
		return zerr.With(domain.ErrProfileLoadFailed, "log_format", p.LogFormat)
	}
	if !slices.Contains([]string{"auto", "rich", "plain", "ci"}, p.Output) {
		return zerr.With(domain.ErrProfileLoadFailed, "output", p.Output)
	}
	return nil
}

// OutputDir returns the output folder, resolved against root when relative.
func (p *Profile) OutputDir(root string) string {
	return resolvePathRelativeTo(p.OutputFolder, root)
}

// DepsDir returns the dependency prefix root, resolved against root when relative.
func (p *Profile) DepsDir(root string) string {
	return resolvePathRelativeTo(p.DepsRoot, root)
}

// GeneratorKinds returns the profile's generator selection, or nil when none is set.
func (p *Profile) GeneratorKinds() []domain.GeneratorKind {
	if len(p.Generators) == 0 {
		return nil
	}
	kinds := make([]domain.GeneratorKind, 0, len(p.Generators))
	for _, g := range p.Generators {
		kinds = append(kinds, domain.GeneratorKind(g))
	}
	return kinds
}

func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
