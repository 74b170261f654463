package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/wordsim/internal/config"
	"github.com/hyperjump/wordsim/internal/models"
	"github.com/hyperjump/wordsim/internal/storage"
	"github.com/hyperjump/wordsim/internal/vector"
	"github.com/hyperjump/wordsim/internal/watcher"
)

// session holds the state watch mode reruns against. A failed reload keeps
// the previous space and pairs.
type session struct {
	mu      sync.Mutex
	cfg     *config.Config
	space   *vector.Space
	pairs   []models.Pair
	journal storage.Storage
	logger  *zap.Logger
	stdout  io.Writer
	stderr  io.Writer
}

// refresh reloads whatever path refers to and reruns the pairs. Calls are
// serialized so two reloads never print interleaved output.
func (s *session) refresh(ctx context.Context, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case samePath(path, s.cfg.Model.Path):
		space, err := loadSpace(s.cfg, componentLogger(s.cfg, s.logger))
		if err != nil {
			s.logger.Warn("vector reload failed, keeping previous vectors",
				zap.String("path", path), zap.Error(err))
			fmt.Fprintf(s.stderr, "Failed to reload vectors: %v\n", err)
			return
		}
		s.space = space
		s.logger.Info("vectors reloaded", zap.String("path", path), zap.Int("vocab_size", space.Len()))
	case samePath(path, s.cfg.Queries.File):
		pairs, err := resolvePairs(s.cfg, nil, "")
		if err != nil {
			s.logger.Warn("pairs reload failed, keeping previous pairs",
				zap.String("path", path), zap.Error(err))
			fmt.Fprintf(s.stderr, "Failed to reload pairs: %v\n", err)
			return
		}
		s.pairs = pairs
	default:
		return
	}
	s.evaluateLocked(ctx)
}

func (s *session) evaluateLocked(ctx context.Context) {
	if err := evaluate(ctx, s.cfg, s.space, s.pairs, s.journal, s.logger, s.stdout, s.stderr); err != nil {
		s.logger.Warn("run failed", zap.Error(err))
	}
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && filepath.Clean(absA) == filepath.Clean(absB)
}

func runWatch(args []string, stdout, stderr io.Writer) int {
	cfg, qf, words, logger, code := parseQueryArgs("watch", args, stderr)
	if code >= 0 {
		return code
	}
	defer logger.Sync()

	pairs, err := resolvePairs(cfg, words, qf.kind)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to resolve pairs: %v\n", err)
		return 1
	}
	space, err := loadSpace(cfg, componentLogger(cfg, logger))
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load vectors: %v\n", err)
		return 1
	}
	journal := openJournal(cfg, logger)
	if journal != nil {
		defer journal.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &session{
		cfg:     cfg,
		space:   space,
		pairs:   pairs,
		journal: journal,
		logger:  logger,
		stdout:  stdout,
		stderr:  stderr,
	}
	s.mu.Lock()
	s.evaluateLocked(ctx)
	s.mu.Unlock()

	files := []string{cfg.Model.Path}
	if len(words) == 0 {
		files = append(files, cfg.Queries.File)
	}
	watchOpts := []watcher.WatcherOption{
		watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond),
	}
	if cfg.Debug {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	w := watcher.NewWatcher(files, func(path string) { s.refresh(ctx, path) }, watchOpts...)
	if err := w.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "Failed to start watcher: %v\n", err)
		return 1
	}
	logger.Info("watching for changes", zap.Strings("files", w.Files()))

	<-ctx.Done()
	logger.Info("Shutting down...")
	w.Stop()
	return 0
}
