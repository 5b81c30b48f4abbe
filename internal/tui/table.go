package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table provides styled table rendering. Widths are measured in terminal
// cells, so wide runes in pattern names keep columns aligned.
type Table struct {
	w       io.Writer
	header  lipgloss.Style
	columns []TableColumn
}

// NewTable creates a new table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w: w,
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		columns: columns,
	}
}

// WriteHeader writes the table header row.
func (t *Table) WriteHeader() {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	_, _ = fmt.Fprintln(t.w, t.header.Render(t.format(names)))
}

// WriteRow writes a data row to the table. Values wider than their column
// are truncated with an ellipsis.
func (t *Table) WriteRow(values ...string) {
	_, _ = fmt.Fprintln(t.w, t.format(values))
}

func (t *Table) format(values []string) string {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		cells[i] = pad(Truncate(value, col.Width), col.Width, col.Align)
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}

// pad fills s with spaces up to width cells.
func pad(s string, width int, align Alignment) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
