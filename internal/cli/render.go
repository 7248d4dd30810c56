package cli

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/notes/internal/model"
	"github.com/idilsaglam/notes/internal/ui"
)

const maxTitleWidth = 80

func stats(items []model.Record) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// listLines renders the framed ls output: header, progress, records.
func listLines(items []model.Record, group bool) []string {
	t := ui.Current()
	d, p := stats(items)

	lines := []string{
		ui.Header("Notes", d, p),
		t.Muted.Render(ui.ProgressBar(d, d+p, 28)),
		"",
	}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `add Buy milk | 2% organic`"))
	return lines
}

func flatLines(items []model.Record) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no notes")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box := t.Muted.Render(t.BoxUnchecked)
		if it.Completed {
			box = t.Success.Render(t.BoxChecked)
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s",
			t.Muted.Render(fmt.Sprintf("#%-2d", it.ID)), box,
			ansi.Truncate(it.Title, maxTitleWidth, "..."),
			t.Muted.Render(ansi.Truncate(it.Subtitle, maxTitleWidth, "..."))))
	}
	return out
}

func groupLines(items []model.Record) []string {
	t := ui.Current()
	var pend, done []model.Record
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "", t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}

func detailLines(rec model.Record) []string {
	t := ui.Current()
	state := t.Pending.Render("pending")
	if rec.Completed {
		state = t.Success.Render("done")
	}
	return []string{
		t.Title.Render(fmt.Sprintf("#%d %s", rec.ID, rec.Title)),
		rec.Subtitle,
		t.Muted.Render("Added on: " + rec.CreatedAt),
		"Status: " + state,
	}
}
