// Package batch runs the extraction pipeline over a directory tree.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/content-analyzer/constants"
	"github.com/joseph-ayodele/content-analyzer/internal/api"
	"github.com/joseph-ayodele/content-analyzer/internal/common"
	"github.com/joseph-ayodele/content-analyzer/internal/extract"
	"github.com/joseph-ayodele/content-analyzer/internal/suggest"
)

type FileResult struct {
	ID          string
	Path        string
	Kind        constants.FileKind
	Text        string
	Pages       int
	Suggestions []string
	WordCount   int
	TextLength  int
	Duration    time.Duration
	Code        string // AppError code on failure
	Err         string
}

func (r FileResult) OK() bool { return r.Err == "" }

type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
}

type Options struct {
	SkipHidden bool
	MaxBytes   int64 // 0 = constants.MaxUploadBytes
	Workers    int   // concurrent files; OCR itself stays serialized
}

type Runner struct {
	extractor extract.TextExtractor
	logger    *slog.Logger
}

func NewRunner(extractor extract.TextExtractor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{extractor: extractor, logger: logger}
}

// AnalyzeDirectory walks root, extracts every file with an allowed extension
// and attaches suggestions. Per-file failures are recorded, not returned.
// Results are in walk order regardless of opts.Workers.
func (r *Runner) AnalyzeDirectory(ctx context.Context, root string, opts Options) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = constants.MaxUploadBytes
	}

	var results []FileResult
	var jobs []job
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{ID: uuid.NewString(), Path: path, Err: walkErr.Error()})
			return nil
		}
		if opts.SkipHidden && path != root && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		_, kind, ok := constants.Classify(path)
		if !ok {
			return nil
		}
		stats.Matched++
		jobs = append(jobs, job{idx: len(results), entry: d})
		results = append(results, FileResult{ID: uuid.NewString(), Path: path, Kind: kind})
		return nil
	})
	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}

	r.runJobs(ctx, jobs, results, opts)

	for _, res := range results {
		if res.OK() {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
	}
	r.logger.Info("batch.directory.done",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
	)
	return results, stats, ctx.Err()
}

func (r *Runner) analyzeFile(ctx context.Context, res FileResult, d fs.DirEntry, maxBytes int64) FileResult {
	path, kind := res.Path, res.Kind
	logger := r.logger.With("job_id", res.ID)
	ctx = common.WithLogger(ctx, logger)
	fail := func(err error) FileResult {
		res.Code = common.CodeOf(err)
		res.Err = err.Error()
		logger.Warn("batch.file.failed", "path", path, "code", res.Code, "error", err)
		return res
	}

	info, err := d.Info()
	if err != nil {
		return fail(err)
	}
	if err := common.ValidateSize(info.Size(), maxBytes); err != nil {
		return fail(err)
	}

	out, err := r.extractor.Extract(ctx, path, kind)
	res.Pages = out.Pages
	res.Duration = out.Duration
	if err != nil {
		return fail(err)
	}
	if strings.TrimSpace(out.Text) == "" {
		return fail(common.NoTextExtracted("no text could be extracted"))
	}

	summary := api.NewExtractionResult(filepath.Base(path), out.Text, suggest.Suggest(out.Text))
	res.Text = summary.ExtractedText
	res.Suggestions = summary.Suggestions
	res.WordCount = summary.WordCount
	res.TextLength = summary.TextLength
	logger.Debug("batch.file.ok", "path", path, "kind", kind, "words", res.WordCount)
	return res
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
