package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"hrpayroll/internal/app"
	"hrpayroll/internal/app/server"
	"hrpayroll/internal/cli"
	"hrpayroll/internal/platform/config"
)

const usage = `usage: payroll [command]

commands:
  (none)   interactive employee menu
  serve    run the HTTP API
  migrate  apply database migrations for the postgres store
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	command := ""
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, command, cfg, logger); err != nil {
		logger.Error("payroll failed", "command", command, "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, cfg config.Config, logger *slog.Logger) error {
	switch command {
	case "", "menu":
		a, err := app.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()
		return cli.NewMenu(a.Service, os.Stdin, os.Stdout, cfg.PayslipDir).Run(ctx)
	case "serve":
		a, err := app.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()
		return server.Run(ctx, a)
	case "migrate":
		if err := app.MigrateOnly(ctx, cfg); err != nil {
			return err
		}
		logger.Info("migrations applied")
		return nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	// The menu owns stdout, so logs go to stderr.
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
