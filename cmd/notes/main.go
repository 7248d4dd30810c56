package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/idilsaglam/notes/internal/cli"
	"github.com/idilsaglam/notes/internal/config"
	"github.com/idilsaglam/notes/internal/logging"
	"github.com/idilsaglam/notes/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "path to a TOML config file")
	theme := flag.String("theme", "", "color theme: classic, neon or mono")
	groupPending := flag.Bool("group", false, "group ls output by pending/done")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		return 1
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		return 2
	}
	ui.SetTheme(cfg.Theme)

	// The interactive screen owns the terminal, so without a log file
	// only batch mode logs to stderr.
	args := flag.Args()
	var fallback io.Writer = os.Stderr
	if len(args) == 0 || args[0] == "ui" {
		fallback = io.Discard
	}
	logger, closer, err := logging.Open(cfg.Log, fallback)
	if err != nil {
		ui.Fail(os.Stderr, "log: "+err.Error())
		return 1
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("starting", "args", args, "theme", cfg.Theme, "strict_edit", cfg.StrictEdit)
	code := cli.Run(ctx, args, cli.Options{
		Config: cfg,
		Logger: logger,
		Group:  *groupPending,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
