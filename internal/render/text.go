package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ftahirops/dumptriage/internal/model"
)

var (
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorGray   = lipgloss.Color("#6272A4")
	colorWhite  = lipgloss.Color("#F8F8F2")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	labelStyle = lipgloss.NewStyle().Foreground(colorGray)
	valueStyle = lipgloss.NewStyle().Foreground(colorWhite)
	critStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	dimStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

func severityStyle(sev model.Severity) lipgloss.Style {
	switch sev {
	case model.SeverityCritical:
		return critStyle
	case model.SeverityWarning:
		return warnStyle
	default:
		return infoStyle
	}
}

// WriteText renders a human-readable triage report: a header summarizing
// the snapshot's vitals, followed by every finding ranked in rule order.
func WriteText(w io.Writer, snap *model.Snapshot, findings []model.Finding) {
	fmt.Fprintln(w, titleStyle.Render("Dump Triage Report"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("dump:"), valueStyle.Render(snap.DumpPath))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("runtime:"), valueStyle.Render(snap.RuntimeDescription))
	fmt.Fprintf(w, "%s %s threads, %s managed heap, %s modules\n",
		labelStyle.Render("summary:"),
		valueStyle.Render(fmt.Sprintf("%d", len(snap.Threads))),
		valueStyle.Render(humanize.Bytes(snap.GC.TotalHeapBytes)),
		valueStyle.Render(fmt.Sprintf("%d", snap.TotalModuleCount)))
	fmt.Fprintln(w)

	if len(snap.Warnings) > 0 {
		fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("%d data warning(s) during extraction:", len(snap.Warnings))))
		for _, warn := range snap.Warnings {
			fmt.Fprintf(w, "  %s %s\n", dimStyle.Render("["+warn.Category.String()+"]"), warn.Message)
		}
		fmt.Fprintln(w)
	}

	for i, f := range findings {
		style := severityStyle(f.Severity)
		fmt.Fprintf(w, "%d. %s %s\n", i+1, style.Render("["+f.Severity.String()+"]"), style.Render(f.Title))
		for _, line := range strings.Split(f.Evidence, "\n") {
			fmt.Fprintf(w, "   %s\n", dimStyle.Render(line))
		}
		if f.Recommendation != "" {
			fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("->"), f.Recommendation)
		}
		fmt.Fprintln(w)
	}
}
