// Command captioner burns timed text captions into videos with ffmpeg's
// drawtext filter.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or captions a single video, a directory of videos
// or every row of a CSV manifest.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/captioner/internal/check"
	"github.com/backmassage/captioner/internal/config"
	"github.com/backmassage/captioner/internal/display"
	"github.com/backmassage/captioner/internal/logging"
	"github.com/backmassage/captioner/internal/pipeline"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	// Bootstrap: the logger doesn't exist yet, so errors go to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "captioner: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "captioner: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "captioner: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner(os.Stdout, version)

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Dry runs never invoke ffmpeg, so they work on machines without it.
	if !cfg.DryRun {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
	}
	if !check.ProbeAvailable() {
		log.Warn("ffprobe not found; using %dx%d when the manifest has no dimensions",
			cfg.DefaultWidth, cfg.DefaultHeight)
	}

	// Cancel on SIGINT/SIGTERM; the pipeline stops before the next job.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current job…")
		cancel()
	}()

	sum, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if sum.Failed > 0 {
		return 1
	}
	return 0
}
