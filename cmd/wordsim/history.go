package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hyperjump/wordsim/internal/cli"
	"github.com/hyperjump/wordsim/internal/storage"
)

func runHistory(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 20, "number of runs to list")
	offset := fs.Int("offset", 0, "runs to skip")
	output := fs.String("output", "", "output format: text or json")
	del := fs.Bool("delete", false, "delete the given run")
	if err := fs.Parse(argsReorder(fs, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *output != "" {
		cfg.Output.Format = *output
	}
	format, err := cli.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid output format: %v\n", err)
		return 1
	}
	if fs.NArg() > 1 || (*del && fs.NArg() != 1) {
		fmt.Fprintln(stderr, "Usage: wordsim history [flags] [run-id]")
		return 1
	}

	// Listing an absent journal is not an error and must not create one.
	if _, statErr := os.Stat(cfg.Journal.DatabasePath); errors.Is(statErr, os.ErrNotExist) {
		if fs.NArg() == 1 {
			fmt.Fprintf(stderr, "Failed to get run: %v\n", storage.ErrNotFound)
			return 1
		}
		_ = cli.WriteHistory(stdout, nil, format)
		return 0
	}
	store, err := storage.NewSQLiteStorage(cfg.Journal.DatabasePath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open journal: %v\n", err)
		return 1
	}
	defer store.Close()

	ctx := context.Background()
	if fs.NArg() == 1 {
		id := fs.Arg(0)
		if *del {
			if err := store.DeleteRun(ctx, id); err != nil {
				fmt.Fprintf(stderr, "Failed to delete run: %v\n", err)
				return 1
			}
			fmt.Fprintf(stdout, "Deleted run %s\n", id)
			return 0
		}
		run, err := store.GetRun(ctx, id)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to get run: %v\n", err)
			return 1
		}
		if format == cli.OutputText {
			fmt.Fprintf(stdout, "Run %s  %s  %s (%d tokens, %d dims)\n",
				run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				run.ModelPath, run.VocabSize, run.Dimensions)
		}
		if err := cli.WriteRun(stdout, stderr, run, format); err != nil {
			fmt.Fprintf(stderr, "Failed to write run: %v\n", err)
			return 1
		}
		return 0
	}

	runs, err := store.ListRuns(ctx, *offset, *limit)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to list runs: %v\n", err)
		return 1
	}
	if err := cli.WriteHistory(stdout, runs, format); err != nil {
		fmt.Fprintf(stderr, "Failed to write history: %v\n", err)
		return 1
	}
	if format == cli.OutputText {
		if total, err := store.CountRuns(ctx); err == nil && total > int64(len(runs)) {
			fmt.Fprintf(stdout, "(%d of %d runs shown)\n", len(runs), total)
		}
	}
	return 0
}
