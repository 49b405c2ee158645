package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joseph-ayodele/content-analyzer/internal/app"
	"github.com/joseph-ayodele/content-analyzer/internal/batch"
	"github.com/joseph-ayodele/content-analyzer/internal/common"
	"github.com/joseph-ayodele/content-analyzer/internal/report"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("analyze-batch", flag.ContinueOnError)
	var (
		dir        = fs.String("dir", "", "directory of PDFs and images to analyze (required)")
		out        = fs.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		skipHidden = fs.Bool("skip-hidden", true, "skip dot files and directories")
		workers    = fs.Int("workers", 2, "files processed concurrently")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *dir == "" {
		printError("Error: --dir is required\n")
		return 1
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(filepath.Clean(*dir)), "content-analysis.xlsx")
	}

	cfg := common.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		printError("Error: startup failed: %v\n", err)
		return 1
	}
	defer application.Close()
	if !application.Capability.Available() {
		printError("Error: %v\n", application.Capability.Err())
		return 1
	}

	runner := batch.NewRunner(application.Pipeline, logger)
	results, stats, err := runner.AnalyzeDirectory(ctx, *dir, batch.Options{
		SkipHidden: *skipHidden,
		MaxBytes:   cfg.Server.MaxUploadBytes,
		Workers:    *workers,
	})
	if err != nil {
		printError("Error: %v\n", err)
		return 1
	}

	xlsx, err := report.NewWriter(logger).XLSX(results, stats)
	if err != nil {
		printError("Error: building report: %v\n", err)
		return 1
	}
	if err := os.WriteFile(*out, xlsx, 0o644); err != nil {
		printError("Error: writing %s: %v\n", *out, err)
		return 1
	}

	fmt.Printf("Analyzed %d of %d files (%d failed). Report: %s\n", stats.Succeeded, stats.Matched, stats.Failed, *out)
	if stats.Failed > 0 {
		return 3
	}
	return 0
}
