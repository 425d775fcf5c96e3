// Package render turns typed API records into human-readable terminal
// text. Renderers are pure: they never touch the transport.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"gbpcli/src/gbp"
)

// timeFormat is how build timestamps are shown, in the caller's local
// timezone.
const timeFormat = "01/02/06 15:04:05"

// Styles holds the color styles for rendered output.
type Styles struct {
	Header    lipgloss.Style
	Machine   lipgloss.Style
	Number    lipgloss.Style
	Published lipgloss.Style
	Keep      lipgloss.Style
	Added     lipgloss.Style
	Removed   lipgloss.Style
	Changed   lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() *Styles {
	return &Styles{
		Header:    lipgloss.NewStyle().Bold(true),
		Machine:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8AB4F8")),
		Number:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E8EAED")),
		Published: lipgloss.NewStyle().Foreground(lipgloss.Color("#34A853")),
		Keep:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBC04")),
		Added:     lipgloss.NewStyle().Foreground(lipgloss.Color("#34A853")),
		Removed:   lipgloss.NewStyle().Foreground(lipgloss.Color("#EA4335")),
		Changed:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBC04")),
	}
}

// Renderer formats typed records with a fixed style set.
type Renderer struct {
	styles *Styles
}

// New returns a Renderer with the default styles.
func New() *Renderer {
	return &Renderer{styles: DefaultStyles()}
}

// Machines renders the machine list as two aligned columns, preserving the
// given order.
func (r *Renderer) Machines(machines []gbp.Machine) string {
	nameWidth := len("machine")
	for _, m := range machines {
		if w := runewidth.StringWidth(m.Name); w > nameWidth {
			nameWidth = w
		}
	}

	var sb strings.Builder
	sb.WriteString(r.styles.Header.Render(fmt.Sprintf("%-*s  %s", nameWidth, "machine", "builds")))
	sb.WriteByte('\n')
	for _, m := range machines {
		name := runewidth.FillRight(m.Name, nameWidth)
		sb.WriteString(fmt.Sprintf("%s  %6d\n", r.styles.Machine.Render(name), m.BuildCount))
	}
	return sb.String()
}

// BuildFlags returns the three-slot flag column for a build: K for kept,
// * for published, N for an attached note. Builds without info get blank
// slots.
func BuildFlags(b gbp.Build) string {
	flags := []byte{' ', ' ', ' '}
	if info := b.Info; info != nil {
		if info.Keep != nil && *info.Keep {
			flags[0] = 'K'
		}
		if info.Published != nil && *info.Published {
			flags[1] = '*'
		}
		if info.Note != nil {
			flags[2] = 'N'
		}
	}
	return "[" + string(flags) + "]"
}

// BuildLine renders one build as a list row: flags, number, submitted
// timestamp.
func (r *Renderer) BuildLine(b gbp.Build) string {
	line := BuildFlags(b)
	line += fmt.Sprintf(" %5d", b.Number)
	if b.Info != nil {
		line += "  " + b.Info.Submitted.Local().Format(timeFormat)
	}
	return line
}

// BuildList renders builds one per line in the given order.
func (r *Renderer) BuildList(builds []gbp.Build) string {
	var sb strings.Builder
	for _, b := range builds {
		sb.WriteString(r.BuildLine(b))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// BuildDetail renders the full status view of a build with info.
func (r *Renderer) BuildDetail(b gbp.Build) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s\n",
		r.styles.Header.Render("Build:"),
		r.styles.Machine.Render(fmt.Sprintf("%s/%d", b.Machine, b.Number))))

	info := b.Info
	if info == nil {
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Submitted: %s\n", info.Submitted.Local().Format(timeFormat)))
	if info.Completed != nil {
		sb.WriteString(fmt.Sprintf("Completed: %s\n", info.Completed.Local().Format(timeFormat)))
	} else {
		sb.WriteString("Completed: in progress\n")
	}
	sb.WriteString(fmt.Sprintf("Published: %s\n", yesNo(info.Published)))
	sb.WriteString(fmt.Sprintf("Keep: %s\n", yesNo(info.Keep)))
	if info.Note != nil {
		sb.WriteString("\n")
		for _, line := range strings.Split(strings.TrimRight(*info.Note, "\n"), "\n") {
			sb.WriteString("    " + line + "\n")
		}
	}
	return sb.String()
}

// Diff renders the changed items between two builds with -/+/* prefixes,
// in the order given.
func (r *Renderer) Diff(left, right gbp.Build, changes []gbp.Change) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("diff -r %s/%d %s/%d\n", left.Machine, left.Number, right.Machine, right.Number))
	if left.Info != nil {
		sb.WriteString(fmt.Sprintf("--- %s/%d %s\n", left.Machine, left.Number, left.Info.Submitted.Local().Format(timeFormat)))
	}
	if right.Info != nil {
		sb.WriteString(fmt.Sprintf("+++ %s/%d %s\n", right.Machine, right.Number, right.Info.Submitted.Local().Format(timeFormat)))
	}

	for _, change := range changes {
		var line string
		switch change.Status {
		case gbp.Removed:
			line = r.styles.Removed.Render("-" + change.Item)
		case gbp.Added:
			line = r.styles.Added.Render("+" + change.Item)
		case gbp.Changed:
			line = r.styles.Changed.Render("*" + change.Item)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Packages renders package identifiers one per line.
func (r *Renderer) Packages(packages []string) string {
	var sb strings.Builder
	for _, pkg := range packages {
		sb.WriteString(pkg)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func yesNo(b *bool) string {
	if b != nil && *b {
		return "yes"
	}
	return "no"
}
