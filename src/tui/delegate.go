package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rowRenderingOverhead accounts for the panel border and the list's own
// padding around each row.
const rowRenderingOverhead = 6

// Delegate renders machine and build rows as single-line table rows.
type Delegate struct {
	styles *StyleConfig
}

// NewDelegate returns a delegate with the default styles.
func NewDelegate() Delegate {
	return Delegate{styles: DefaultStyles()}
}

// Height returns the height of a list row.
func (d Delegate) Height() int { return 1 }

// Spacing returns the spacing between rows.
func (d Delegate) Spacing() int { return 0 }

// Update handles row-level updates; rows here are static.
func (d Delegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

// Render draws one row, highlighting the selection.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}

	width := m.Width() - rowRenderingOverhead
	if width <= 0 {
		return
	}

	style := lipgloss.NewStyle().Foreground(d.styles.TextSecondary)
	if index == m.Index() {
		style = style.Bold(true).
			Foreground(d.styles.Primary).
			Background(d.styles.SelectedColor)
	}

	fmt.Fprint(w, style.Render(r.Row(width)))
}
