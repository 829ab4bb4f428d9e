// Package report renders generation results and option tables for humans.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"go.trai.ch/kiln/internal/adapters/detector"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter writes results to an output stream.
type Reporter struct {
	w    io.Writer
	out  *termenv.Output
	mode detector.OutputMode
}

// New creates a Reporter on w. A nil writer selects stdout.
func New(w io.Writer, mode detector.OutputMode) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{w: w, out: output.New(w), mode: mode}
}

// SetMode changes how tables are drawn.
func (r *Reporter) SetMode(mode detector.OutputMode) {
	r.mode = mode
}

// Artifacts prints one line per artifact followed by a summary.
func (r *Reporter) Artifacts(pkg *domain.PackageDescriptor, results []domain.ArtifactResult) {
	written := 0
	for _, res := range results {
		icon, color := style.Unchanged, style.Ash
		if res.Status == domain.StatusWritten {
			icon, color = style.Check, style.Green
			written++
		}
		line := fmt.Sprintf("%s %-9s %s (%s)", icon, res.Status, res.Path, res.Kind)
		r.println(output.Paint(r.out, line, output.Color(string(color))))
	}

	summary := fmt.Sprintf("%d written, %d unchanged", written, len(results)-written)
	if pkg != nil {
		summary = fmt.Sprintf("%s/%s: %s", pkg.Name(), pkg.Version(), summary)
	}
	r.println(output.Paint(r.out, summary, output.Color(string(style.Ember))))
}

// Options prints the resolved options as a table.
func (r *Reporter) Options(set *domain.ResolvedOptionSet) {
	if set == nil || set.Len() == 0 {
		r.println("no options resolved")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.AppendHeader(table.Row{"Dependency", "Option", "Value", "Source"})
	for opt := range set.All() {
		t.AppendRow(table.Row{opt.Key.Dependency.String(), opt.Key.Option.String(), opt.Value.String(), string(opt.Source)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})

	tableStyle := table.StyleDefault
	if r.mode == detector.ModeRich {
		tableStyle = table.StyleLight
	}
	tableStyle.Options.DrawBorder = false
	t.SetStyle(tableStyle)
	t.Render()
}

// Removed prints the files deleted by clean.
func (r *Reporter) Removed(paths []string) {
	if len(paths) == 0 {
		r.println("nothing to clean")
		return
	}
	for _, p := range paths {
		r.println(output.Paint(r.out, style.Removed+" removed "+p, output.Color(string(style.Ash))))
	}
}

func (r *Reporter) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}
