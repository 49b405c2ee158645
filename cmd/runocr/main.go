package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/content-analyzer/internal/api"
	"github.com/joseph-ayodele/content-analyzer/internal/app"
	"github.com/joseph-ayodele/content-analyzer/internal/common"
	"github.com/joseph-ayodele/content-analyzer/internal/suggest"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup finishes before exit.
func run(args []string) int {
	cfg := common.LoadConfig()

	// Logs go to stderr so stdout carries only the result JSON.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	if len(args) != 1 {
		logger.Error("usage", "cmd", "runocr <file.pdf|file.png|...>")
		return 2
	}
	path := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return 1
	}
	defer application.Close()

	start := time.Now()
	res, err := application.Pipeline.ExtractFile(ctx, path)
	dur := time.Since(start)
	if err != nil {
		logger.Error("text extraction failed",
			"path", path, "code", common.CodeOf(err), "error", err, "duration_ms", dur.Milliseconds())
		return 1
	}
	if strings.TrimSpace(res.Text) == "" {
		logger.Error("no text extracted", "path", path)
		return 1
	}

	out := api.NewExtractionResult(filepath.Base(path), res.Text, suggest.Suggest(res.Text))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		logger.Error("encode result", "error", err)
		return 1
	}

	logger.Info("text extraction OK",
		"kind", res.Kind,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"duration_ms", dur.Milliseconds(),
	)
	return 0
}
