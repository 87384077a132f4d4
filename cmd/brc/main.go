// Command brc prints min/mean/max per station for a file of
// "<station>;<temperature>" lines.
//
//	brc [-workers N] [-config file] [-log-level level] <path>
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shandysiswandi/gobrc/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkglog"
	"github.com/shandysiswandi/gobrc/internal/weather"
	"github.com/shandysiswandi/gobrc/internal/weather/engine"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("brc", flag.ContinueOnError)
	workers := fs.Int("workers", 0, "parallel scanners (default: number of CPUs)")
	configPath := fs.String("config", "", "optional config file with modules.weather.* keys")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: brc [flags] <path>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	pkglog.InitLogging(os.Stderr, pkglog.ParseLevel(*logLevel))

	cfg, err := pkgconfig.NewViper(*configPath, nil)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		return 1
	}
	defer cfg.Close()

	opts := weather.EngineOptions(cfg)
	if *workers > 0 {
		opts.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	final, err := engine.New(opts).Compute(ctx, fs.Arg(0))
	if err != nil {
		slog.Error("failed to compute aggregates", "path", fs.Arg(0), "error", err)
		return 1
	}

	if err := engine.WriteReport(os.Stdout, final); err != nil {
		slog.Error("failed to write report", "error", err)
		return 1
	}

	return 0
}
