package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/sadopc/pomo/internal/cli"
	"github.com/sadopc/pomo/internal/clock"
	"github.com/sadopc/pomo/internal/config"
	"github.com/sadopc/pomo/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	log, logFile, err := logging.New(logging.Options{
		Path:       cfg.LogPath,
		Level:      cfg.LogLevel,
		MaxSizeMB:  5,
		MaxBackups: 3,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	width := 0
	if interactive {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return cli.Run(ctx, os.Args[1:], cli.Options{
		Config:      cfg,
		Log:         log,
		Clock:       clock.NewRealClock(),
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: interactive,
		Width:       width,
	})
}
