// Package cmake implements generators that make resolved dependencies consumable by CMake.
package cmake

import (
	"fmt"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

// Artifact file names.
const (
	DepsFileName      = "kiln_deps.cmake"
	ToolchainFileName = "kiln_toolchain.cmake"
	PresetsFileName   = "CMakePresets.json"
)

// writeHeader writes the comment block every CMake script starts with.
func writeHeader(b *strings.Builder, input *domain.GenerationInput) {
	fmt.Fprintf(b, "# Generated by kiln for %s/%s. Do not edit.\n",
		input.Descriptor.Name(), input.Descriptor.Version())
	fmt.Fprintf(b, "# fingerprint: %s\n", input.Fingerprint)
	b.WriteString("\n")
	b.WriteString("include_guard(GLOBAL)\n")
}

// quote renders s as a CMake quoted argument.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// path renders a filesystem path as a quoted CMake argument with forward slashes.
func path(p string) string {
	return quote(strings.ReplaceAll(p, `\`, "/"))
}

// identifier upper-cases s and replaces everything outside [A-Z0-9_] with '_'.
func identifier(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// isShared reports whether dep resolved to shared linkage.
func isShared(input *domain.GenerationInput, dep domain.Name) bool {
	return optionTrue(input, dep, domain.SharedOption)
}

func optionTrue(input *domain.GenerationInput, dep domain.Name, option string) bool {
	v, ok := input.Options.Get(dep.String(), option)
	return ok && v.Truthy()
}

func targetOS(input *domain.GenerationInput) string {
	v, _ := input.Settings.Get(domain.SettingOS)
	return v
}
