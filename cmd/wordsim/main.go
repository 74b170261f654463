// Package main is the wordsim CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/wordsim/internal/cli"
	"github.com/hyperjump/wordsim/internal/config"
	"github.com/hyperjump/wordsim/internal/extract"
	"github.com/hyperjump/wordsim/internal/models"
	"github.com/hyperjump/wordsim/internal/query"
	"github.com/hyperjump/wordsim/internal/storage"
	"github.com/hyperjump/wordsim/internal/vector"
	"github.com/hyperjump/wordsim/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/wordsim/config.yaml"

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory wins if it exists, and a missing default file means
// built-in defaults. Returns the config and the path actually loaded ("" for
// built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}
	command, rest := args[0], args[1:]
	switch command {
	case "compare":
		return runCompare(rest, stdout, stderr)
	case "watch":
		return runWatch(rest, stdout, stderr)
	case "info":
		return runInfo(rest, stdout, stderr)
	case "history":
		return runHistory(rest, stdout, stderr)
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "wordsim version %s\n", version)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
}

// queryFlags are shared by compare, watch, and info. Empty or zero values
// leave the config untouched.
type queryFlags struct {
	configPath string
	model      string
	format     string
	limit      int
	pairs      string
	kind       string
	output     string
	journal    bool
	debug      bool
}

func newQueryFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *queryFlags) {
	qf := &queryFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&qf.configPath, "config", defaultConfigPath, "config file path")
	fs.StringVar(&qf.model, "model", "", "vector file path (overrides model.path)")
	fs.StringVar(&qf.format, "format", "", "vector file format: auto, text, or binary")
	fs.IntVar(&qf.limit, "limit", 0, "read at most this many vectors (0 = all)")
	fs.StringVar(&qf.pairs, "pairs", "", "pair list file (.txt, .tsv, .csv, .xlsx, .yaml)")
	fs.StringVar(&qf.kind, "kind", "both", "scores for positional words: similarity, distance, or both")
	fs.StringVar(&qf.output, "output", "", "output format: text or json")
	fs.BoolVar(&qf.journal, "journal", true, "record the run in the journal")
	fs.BoolVar(&qf.debug, "debug", false, "enable debug logging")
	return fs, qf
}

// apply overrides cfg with the flags that were set on the command line.
func (qf *queryFlags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model.Path = qf.model
		case "format":
			cfg.Model.Format = qf.format
		case "limit":
			cfg.Model.Limit = qf.limit
		case "pairs":
			cfg.Queries.File = qf.pairs
		case "output":
			cfg.Output.Format = qf.output
		case "journal":
			enabled := qf.journal
			cfg.Journal.Enabled = &enabled
		case "debug":
			cfg.Debug = cfg.Debug || qf.debug
		}
	})
}

// argsReorder moves flags in front of positional words so that
// "wordsim compare king queen --kind distance" parses. Positional words keep
// their order and follow a "--" so tokens starting with "-" survive parsing.
// A single-dash word that names no flag, such as the treebank token "-LRB-",
// is a positional word; unknown "--name" arguments stay flags and fail.
func argsReorder(fs *flag.FlagSet, args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(a) < 2 || a[0] != '-' {
			positional = append(positional, a)
			continue
		}
		name := strings.TrimLeft(a, "-")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name = name[:eq]
		}
		f := fs.Lookup(name)
		if f == nil && !strings.HasPrefix(a, "--") && name != "h" && name != "help" {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		if strings.Contains(a, "=") || f == nil || isBoolFlag(f) {
			continue
		}
		if i+1 < len(args) {
			flags = append(flags, args[i+1])
			i++
		}
	}
	if len(positional) == 0 {
		return flags
	}
	out := make([]string, 0, len(flags)+1+len(positional))
	out = append(out, flags...)
	out = append(out, "--")
	return append(out, positional...)
}

func isBoolFlag(f *flag.Flag) bool {
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}

// parseQueryArgs parses flags, loads config, applies overrides, and builds the
// logger. It returns a non-negative exit code when the command should stop.
func parseQueryArgs(name string, args []string, stderr io.Writer) (*config.Config, *queryFlags, []string, *zap.Logger, int) {
	fs, qf := newQueryFlagSet(name, stderr)
	if err := fs.Parse(argsReorder(fs, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, nil, nil, 0
		}
		return nil, nil, nil, nil, 1
	}
	cfg, resolved, err := loadConfig(qf.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return nil, nil, nil, nil, 1
	}
	qf.apply(fs, cfg)
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create logger: %v\n", err)
		return nil, nil, nil, nil, 1
	}
	logger.Debug("config loaded",
		zap.String("config_path", resolved),
		zap.String("model_path", cfg.Model.Path))
	return cfg, qf, fs.Args(), logger, -1
}

// componentLogger returns logger in debug mode and a no-op logger otherwise,
// so that library chatter stays off the terminal during normal runs.
func componentLogger(cfg *config.Config, logger *zap.Logger) *zap.Logger {
	if cfg.Debug {
		return logger
	}
	return zap.NewNop()
}

func loadSpace(cfg *config.Config, logger *zap.Logger) (*vector.Space, error) {
	format, err := vector.ParseFormat(cfg.Model.Format)
	if err != nil {
		return nil, err
	}
	return vector.Load(cfg.Model.Path,
		vector.WithFormat(format),
		vector.WithLimit(cfg.Model.Limit),
		vector.WithCacheSize(cfg.Model.CacheSize),
		vector.WithLogger(logger),
	)
}

// resolvePairs picks the pairs to score: positional words, then the pairs
// file, then pairs listed in the config, then the built-in set.
func resolvePairs(cfg *config.Config, words []string, kind string) ([]models.Pair, error) {
	if len(words) > 0 {
		kinds, err := query.KindsFor(kind)
		if err != nil {
			return nil, err
		}
		return query.FromWords(words, kinds)
	}
	if cfg.Queries.File != "" {
		pairs, err := extract.NewExtractor().Extract(cfg.Queries.File)
		if err != nil {
			return nil, fmt.Errorf("read pairs: %w", err)
		}
		return pairs, nil
	}
	if len(cfg.Queries.Pairs) > 0 {
		return append([]models.Pair(nil), cfg.Queries.Pairs...), nil
	}
	return query.DefaultPairs(), nil
}

// openJournal returns nil when the journal is disabled or cannot be opened;
// journal problems never stop a run.
func openJournal(cfg *config.Config, logger *zap.Logger) storage.Storage {
	if !cfg.Journal.EnabledOrDefault() {
		return nil
	}
	store, err := storage.NewSQLiteStorage(cfg.Journal.DatabasePath)
	if err != nil {
		logger.Warn("journal unavailable", zap.String("path", cfg.Journal.DatabasePath), zap.Error(err))
		return nil
	}
	return store
}

// evaluate scores pairs, prints the run, and journals it.
func evaluate(ctx context.Context, cfg *config.Config, space *vector.Space, pairs []models.Pair,
	journal storage.Storage, logger *zap.Logger, stdout, stderr io.Writer) error {
	format, err := cli.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	runner := query.NewRunner(query.WithLogger(componentLogger(cfg, logger)))
	run, err := runner.Run(ctx, space, pairs)
	if err != nil {
		return err
	}
	run.ModelPath = cfg.Model.Path
	if err := cli.WriteRun(stdout, stderr, run, format); err != nil {
		return err
	}
	if journal != nil {
		if err := journal.SaveRun(ctx, run); err != nil {
			logger.Warn("journal save failed", zap.String("run_id", run.ID), zap.Error(err))
		}
	}
	return nil
}

func runCompare(args []string, stdout, stderr io.Writer) int {
	cfg, qf, words, logger, code := parseQueryArgs("compare", args, stderr)
	if code >= 0 {
		return code
	}
	defer logger.Sync()

	if _, err := cli.ParseOutputFormat(cfg.Output.Format); err != nil {
		fmt.Fprintf(stderr, "Invalid output format: %v\n", err)
		return 1
	}
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
	if err := evaluate(context.Background(), cfg, space, pairs, journal, logger, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Failed to run queries: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `wordsim - cosine similarity and distance between word vectors

Usage:
  wordsim compare [flags] [a b ...]   Score word pairs (default: the built-in king set)
  wordsim watch [flags]               Rerun whenever the vector or pairs file changes
  wordsim info [flags]                Show vector file statistics
  wordsim history [flags] [run-id]    List journaled runs or show one
  wordsim version                     Show version
  wordsim help                        Show this help

Compare / Watch / Info Flags:
  --config string    Config file path (default: /usr/local/etc/wordsim/config.yaml)
  --model string     Vector file path
  --format string    Vector file format: auto, text, or binary (default: auto)
  --limit int        Read at most this many vectors (default: 0, all)
  --pairs string     Pair list file (.txt, .tsv, .csv, .xlsx, .yaml)
  --kind string      Scores for positional words: similarity, distance, or both (default: both)
  --output string    Output format: text or json (default: text)
  --journal          Record the run in the journal (default: true)
  --debug            Enable debug logging

  Words starting with "-" (e.g. -LRB-) are read as words unless they name a
  flag. Put words after "--" to pass one that does: wordsim compare -- -limit x

History Flags:
  --config string    Config file path
  --limit int        Number of runs to list (default: 20)
  --offset int       Runs to skip (default: 0)
  --output string    Output format: text or json (default: text)
  --delete           Delete the given run instead of showing it

Examples:
  wordsim compare
  wordsim compare king queen man woman
  wordsim compare king queen --kind distance
  wordsim compare --model GoogleNews-vectors-negative300.bin.gz --limit 500000
  wordsim compare --pairs pairs.csv --output json
  wordsim watch --model vectors.txt --pairs pairs.yaml
  wordsim history
`)
}
