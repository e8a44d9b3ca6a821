package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/specialistvlad/glyphforge/internal/app"
	"github.com/specialistvlad/glyphforge/internal/assettype"
)

// Color palette shared by all CLI output.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary text.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	typeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight).
			Width(7)

	pathStyle = lipgloss.NewStyle()

	sizeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(2)
)

// RenderReport prints a summary of a build.
func RenderReport(w io.Writer, r *app.Report) {
	var b strings.Builder

	if r.DryRun {
		fmt.Fprintf(&b, "%s %s %s\n",
			WarningStyle.Render("○ Dry run"),
			TitleStyle.Render(r.Name),
			SubtitleStyle.Render(fmt.Sprintf("· %s · nothing written", plural(r.Icons, "icon"))))
		fmt.Fprintf(&b, "  %s %s\n", typeStyle.Render("plan"), planString(r.Plan))
		for _, f := range r.Files {
			fmt.Fprintf(&b, "  %s%s\n", typeStyle.Render(string(f.Type)), pathStyle.Render(f.Path))
		}
		fmt.Fprint(w, b.String())
		return
	}

	fmt.Fprintf(&b, "%s %s %s\n",
		SuccessStyle.Render("✔ Built"),
		TitleStyle.Render(r.Name),
		SubtitleStyle.Render(fmt.Sprintf("· %s · %s · %s",
			plural(r.Icons, "icon"), plural(len(r.Files), "file"), r.Duration.Round(time.Millisecond))))
	for _, f := range r.Files {
		fmt.Fprintf(&b, "  %s%s%s\n", typeStyle.Render(string(f.Type)), pathStyle.Render(f.Path), sizeStyle.Render(formatSize(f.Size)))
	}
	fmt.Fprint(w, b.String())
}

func planString(plan []assettype.AssetType) string {
	return strings.Join(assettype.Strings(plan), " → ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// formatSize renders a byte count with a decimal unit.
func formatSize(n int) string {
	const unit = 1000
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "kMG"[exp])
}
