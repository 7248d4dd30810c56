package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/notes/internal/config"
	"github.com/idilsaglam/notes/internal/store"
	"github.com/idilsaglam/notes/internal/ui"
)

// Options carry what the subcommands need from main.
type Options struct {
	Config *config.Config
	Logger *log.Logger
	Group  bool // ls output grouped by pending/done

	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

func (o *Options) defaults() {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// newStore builds an empty store configured from opt.
func newStore(opt Options) *store.Store {
	return store.New(store.WithStrictEdit(opt.Config.StrictEdit))
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		return doUI(ctx, opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ui":
		if len(a) != 0 {
			ui.Fail(opt.Stderr, "usage: notes ui")
			return 2
		}
		return doUI(ctx, opt)

	case "batch":
		if len(a) > 1 {
			ui.Fail(opt.Stderr, "usage: notes batch [file]")
			return 2
		}
		in := opt.Stdin
		if len(a) == 1 && a[0] != "-" {
			f, err := os.Open(a[0])
			if err != nil {
				ui.Fail(opt.Stderr, "open: "+err.Error())
				return 1
			}
			defer f.Close()
			in = f
		}
		return runBatch(in, opt)
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `notes - a tiny in-memory notes app

Usage:
  notes [flags] [subcommand] [args]

Subcommands:
  ui                 Interactive list (default)
  batch [file]       Run line commands from file or stdin
  help               Show this help

Batch commands:
  add <title> | <subtitle>
  edit <id> <title> | <subtitle>
  done <id>          Toggle completion
  rm <id>            Remove (no-op if absent)
  show <id>
  ls

Examples:
  notes
  printf 'add Buy milk | 2%% organic\nls\n' | notes batch
`)
}

func doUI(ctx context.Context, opt Options) int {
	st := newStore(opt)
	err := ui.Run(ctx, st, opt.Logger, ui.Options{
		StrictEdit:     opt.Config.StrictEdit,
		NoticeDuration: opt.Config.Notice(),
	})
	if err != nil {
		opt.Logger.Error("ui stopped", "err", err)
		ui.Fail(opt.Stderr, "ui: "+err.Error())
		return 1
	}
	return 0
}
