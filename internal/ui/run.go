package ui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/idilsaglam/notes/internal/store"
)

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TermSize returns the terminal size of stdout, or 80x24.
func TermSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, st *store.Store, logger *log.Logger, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = TermSize()
	}

	m := New(st, logger, opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
