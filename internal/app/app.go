package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/0xh7ml/URLxtract/internal/banner"
	"github.com/0xh7ml/URLxtract/internal/batch"
	"github.com/0xh7ml/URLxtract/internal/config"
	"github.com/0xh7ml/URLxtract/internal/domain"
	"github.com/0xh7ml/URLxtract/internal/input"
	"github.com/0xh7ml/URLxtract/internal/suffix"
)

// Streams are the process standard streams, swappable in tests.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func Run(ctx context.Context, cfg config.Config, s Streams) error {
	log := newLogger(s.Err, cfg.Verbose)
	defer func() { _ = log.Sync() }()

	start := time.Now()

	rules, err := loadRules(cfg, log)
	if err != nil {
		return err
	}

	urls, err := input.Collect(cfg.URL, cfg.File, s.In)
	if err != nil {
		return err
	}
	log.Debug("app: input collected", zap.Int("urls", len(urls)))

	proc := batch.NewProcessor(
		domain.NewParser(rules),
		batch.WithWorkers(cfg.Workers),
		batch.WithLogger(log),
	)

	results, err := proc.Process(ctx, urls, cfg.Mode)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	if cfg.Uniq {
		results = batch.Unique(results)
	}

	if !cfg.Silent {
		banner.Print(s.Err)
	}

	w := bufio.NewWriter(s.Out)
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	log.Debug("app: done",
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func loadRules(cfg config.Config, log *zap.Logger) (*suffix.Ruleset, error) {
	opts := suffix.Options{IncludePrivate: cfg.IncludePrivate, Logger: log}

	if cfg.SuffixListPath != "" {
		return suffix.LoadFile(cfg.SuffixListPath, opts)
	}
	return suffix.Default(opts)
}
