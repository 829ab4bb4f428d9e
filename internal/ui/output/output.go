// Package output builds termenv outputs with kiln's color rules.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile returns Ascii when NO_COLOR is set, and the detected profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output on w, defaulting to stderr.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)
}

// Paint renders s in color on out.
func Paint(out *termenv.Output, s string, color termenv.Color) string {
	return out.String(s).Foreground(color).String()
}

// Color converts a palette entry to a termenv color.
func Color(hex string) termenv.Color {
	return termenv.RGBColor(hex)
}
