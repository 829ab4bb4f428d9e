package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/detector"
)

func TestHost_Detect(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		goarch   string
		cc       string
		os       string
		arch     string
		compiler string
	}{
		{"linux default", "linux", "amd64", "", "Linux", "x86_64", "gcc"},
		{"linux clang", "linux", "arm64", "/usr/bin/clang-18", "Linux", "armv8", "clang"},
		{"linux gcc path", "linux", "amd64", "/usr/bin/x86_64-linux-gnu-gcc", "Linux", "x86_64", "gcc"},
		{"macos default", "darwin", "arm64", "", "Macos", "armv8", "apple-clang"},
		{"macos clang", "darwin", "amd64", "clang", "Macos", "x86_64", "apple-clang"},
		{"windows default", "windows", "386", "", "Windows", "x86", "msvc"},
		{"windows cl", "windows", "amd64", `cl.exe`, "Windows", "x86_64", "msvc"},
		{"other os", "netbsd", "riscv64", "", "Netbsd", "riscv64", "gcc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &detector.Host{
				GOOS:   tt.goos,
				GOARCH: tt.goarch,
				Getenv: func(key string) string {
					if key == "CC" {
						return tt.cc
					}
					return ""
				},
			}

			got := h.Detect()
			assert.Equal(t, tt.os, got["os"])
			assert.Equal(t, tt.arch, got["arch"])
			assert.Equal(t, tt.compiler, got["compiler"])
			assert.Equal(t, detector.DefaultBuildType, got["build_type"])
		})
	}
}

func TestNewHost(t *testing.T) {
	got := detector.NewHost().Detect()
	assert.NotEmpty(t, got["os"])
	assert.NotEmpty(t, got["arch"])
	assert.NotEmpty(t, got["compiler"])
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.ModePlain, detector.DetectEnvironment())
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name     string
		auto     detector.OutputMode
		flag     string
		expected detector.OutputMode
	}{
		{"rich flag", detector.ModePlain, "rich", detector.ModeRich},
		{"plain flag", detector.ModeRich, "plain", detector.ModePlain},
		{"ci flag", detector.ModeRich, "ci", detector.ModePlain},
		{"auto flag", detector.ModeRich, "auto", detector.ModeRich},
		{"empty flag", detector.ModePlain, "", detector.ModePlain},
		{"unknown flag", detector.ModeRich, "fancy", detector.ModeRich},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.auto, tt.flag))
		})
	}
}
