package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how human-facing output is rendered.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeRich renders box-drawn tables and colors.
	ModeRich
	// ModePlain renders ASCII tables for logs and CI.
	ModePlain
)

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stdout is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeRich
}

// ResolveMode applies user override flag to auto-detection.
// userFlag should be one of: "auto", "rich", "plain", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "rich":
		return ModeRich
	case "plain", "ci":
		return ModePlain
	default:
		return autoDetected
	}
}
