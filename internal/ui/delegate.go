package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/notes/internal/model"
)

// listItem adapts a record to bubbles/list.Item.
type listItem struct {
	rec model.Record
}

func (i listItem) FilterValue() string { return i.rec.Title }

func toListItems(recs []model.Record) []list.Item {
	out := make([]list.Item, 0, len(recs))
	for _, r := range recs {
		out = append(out, listItem{rec: r})
	}
	return out
}

// recordDelegate renders a record on three lines: checkbox and title,
// subtitle, creation time.
type recordDelegate struct{}

func (d recordDelegate) Height() int                               { return 3 }
func (d recordDelegate) Spacing() int                              { return 1 }
func (d recordDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d recordDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := Current()

	width := m.Width() - 6
	if width < 10 {
		width = 10
	}

	box := t.Muted.Render(t.BoxUnchecked)
	title := ansi.Truncate(it.rec.Title, width, "…")
	if it.rec.Completed {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(t.Cursor)
	}
	indent := "    "

	fmt.Fprintf(w, "%s%s %s\n", prefix, box, title)
	fmt.Fprintf(w, "%s%s\n", indent, ansi.Truncate(it.rec.Subtitle, width, "…"))
	fmt.Fprintf(w, "%s%s", indent, t.Muted.Render("Added on: "+it.rec.CreatedAt))
}
