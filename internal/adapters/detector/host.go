// Package detector inspects the machine kiln runs on: its settings values and
// whether output goes to an interactive terminal.
package detector

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.SettingsDetector = (*Host)(nil)

// DefaultBuildType is the build type assumed when nothing else selects one.
const DefaultBuildType = "Release"

// Host detects settings from the Go runtime and the CC environment variable.
type Host struct {
	GOOS   string
	GOARCH string
	Getenv func(string) string
}

// NewHost creates a detector for the current process.
func NewHost() *Host {
	return &Host{
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
		Getenv: os.Getenv,
	}
}

// Detect implements ports.SettingsDetector.
func (h *Host) Detect() map[string]string {
	return map[string]string{
		domain.SettingOS:        osName(h.GOOS),
		domain.SettingArch:      archName(h.GOARCH),
		domain.SettingCompiler:  h.compiler(),
		domain.SettingBuildType: DefaultBuildType,
	}
}

func osName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Macos"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	case "":
		return ""
	default:
		return strings.ToUpper(goos[:1]) + goos[1:]
	}
}

func archName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "armv8"
	case "386":
		return "x86"
	case "arm":
		return "armv7"
	default:
		return goarch
	}
}

func (h *Host) compiler() string {
	cc := ""
	if h.Getenv != nil {
		cc = strings.ToLower(filepath.Base(strings.TrimSpace(h.Getenv("CC"))))
	}
	cc = strings.TrimSuffix(cc, ".exe")

	switch {
	case cc == "" || cc == ".":
		// Platform toolchain default
		switch h.GOOS {
		case "darwin":
			return "apple-clang"
		case "windows":
			return "msvc"
		default:
			return "gcc"
		}
	case strings.Contains(cc, "clang"):
		if h.GOOS == "darwin" {
			return "apple-clang"
		}
		return "clang"
	case cc == "cl":
		return "msvc"
	default:
		return "gcc"
	}
}
