package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/idilsaglam/notes/internal/model"
	"github.com/idilsaglam/notes/internal/store"
	"github.com/idilsaglam/notes/internal/ui"
)

// errUsage marks a malformed command line.
var errUsage = errors.New("usage")

type usageError struct{ msg string }

func (e *usageError) Error() string { return "usage: " + e.msg }
func (e *usageError) Unwrap() error { return errUsage }

func usage(msg string) error { return &usageError{msg: msg} }

// batch applies line commands to one store.
type batch struct {
	opt    Options
	st     *store.Store
	events <-chan store.Event
}

// runBatch executes every line of in and returns the exit code:
// 2 if any line was malformed, 1 if any command failed, 0 otherwise.
// Processing always continues to the end of input.
func runBatch(in io.Reader, opt Options) int {
	st := newStore(opt)
	events, unsubscribe := st.Subscribe()
	defer unsubscribe()
	b := &batch{opt: opt, st: st, events: events}

	var failed, malformed bool
	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := b.exec(line)
		b.drainEvents()
		switch {
		case err == nil:
		case errors.Is(err, errUsage):
			malformed = true
			ui.Fail(opt.Stderr, fmt.Sprintf("line %d: %v", lineNo, err))
		default:
			failed = true
			opt.Logger.Warn("command failed", "line", lineNo, "err", err)
			ui.Fail(opt.Stderr, fmt.Sprintf("line %d: %v", lineNo, err))
		}
	}
	if err := sc.Err(); err != nil {
		ui.Fail(opt.Stderr, "read: "+err.Error())
		return 1
	}

	switch {
	case malformed:
		return 2
	case failed:
		return 1
	}
	return 0
}

func (b *batch) exec(line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "add":
		title, subtitle, ok := splitPair(rest)
		if !ok {
			return usage("add <title> | <subtitle>")
		}
		rec, err := b.st.Create(title, subtitle)
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}
		ui.OK(b.opt.Stdout, fmt.Sprintf("added #%d", rec.ID))
		return nil

	case "edit":
		idText, pair, _ := strings.Cut(rest, " ")
		id, err := parseID(idText)
		if err != nil {
			return usage("edit <id> <title> | <subtitle>")
		}
		title, subtitle, ok := splitPair(pair)
		if !ok {
			return usage("edit <id> <title> | <subtitle>")
		}
		rec, err := b.st.Update(id, title, subtitle)
		if err != nil {
			return fmt.Errorf("edit: %w", err)
		}
		ui.OK(b.opt.Stdout, fmt.Sprintf("updated #%d", rec.ID))
		return nil

	case "done":
		id, err := parseID(rest)
		if err != nil {
			return usage("done <id>")
		}
		rec, err := b.st.ToggleComplete(id)
		if err != nil {
			return fmt.Errorf("done: %w", err)
		}
		state := "pending"
		if rec.Completed {
			state = "done"
		}
		ui.OK(b.opt.Stdout, fmt.Sprintf("toggled #%d (%s)", rec.ID, state))
		return nil

	case "rm":
		id, err := parseID(rest)
		if err != nil {
			return usage("rm <id>")
		}
		if b.st.Delete(id) {
			ui.OK(b.opt.Stdout, fmt.Sprintf("removed #%d", id))
		} else {
			fmt.Fprintln(b.opt.Stdout, ui.Current().Muted.Render(fmt.Sprintf("nothing to remove for #%d", id)))
		}
		return nil

	case "show":
		id, err := parseID(rest)
		if err != nil {
			return usage("show <id>")
		}
		rec, ok := b.st.FindByID(id)
		if !ok {
			return fmt.Errorf("show: %w", &model.NotFoundError{ID: id})
		}
		fmt.Fprintln(b.opt.Stdout, ui.Panel(detailLines(rec)))
		return nil

	case "ls":
		if rest != "" {
			return usage("ls")
		}
		fmt.Fprintln(b.opt.Stdout, ui.Panel(listLines(b.st.List(), b.opt.Group)))
		return nil
	}
	return usage("unknown command " + strconv.Quote(cmd))
}

// drainEvents logs pending store events and prints their notices.
func (b *batch) drainEvents() {
	for {
		select {
		case ev := <-b.events:
			b.opt.Logger.Debug("store event", "kind", ev.Kind, "id", ev.Record.ID)
			if ev.Message != "" {
				fmt.Fprintln(b.opt.Stdout, ui.Current().Muted.Render(ev.Message))
			}
		default:
			return
		}
	}
}

func splitPair(s string) (string, string, bool) {
	title, subtitle, ok := strings.Cut(s, "|")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(title), strings.TrimSpace(subtitle), true
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, fmt.Errorf("negative id %d", id)
	}
	return id, nil
}
