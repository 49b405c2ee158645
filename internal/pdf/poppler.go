package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/content-analyzer/internal/common"
)

// stderrTailBytes bounds how much pdftoppm stderr reaches logs and clients.
const stderrTailBytes = 1 << 10

// Runner lets us stub pdftoppm in tests. stderr is returned in full; callers
// keep only its tail.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	attrs := []any{
		"cmd", filepath.Base(name),
		"pages_arg", pageLimitArg(args),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		if ctx.Err() != nil {
			r.logger.Warn("pdftoppm cancelled", append(attrs, "error", ctx.Err())...)
		} else {
			r.logger.Error("pdftoppm failed", append(attrs, "error", err, "stderr", stderrTail(errb.Bytes()))...)
		}
	} else {
		r.logger.Debug("pdftoppm ok", attrs...)
	}
	return out.Bytes(), errb.Bytes(), err
}

// pageLimitArg returns the value passed with -l, or "all".
func pageLimitArg(args []string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "-l" {
			return args[i+1]
		}
	}
	return "all"
}

// stderrTail keeps the last stderrTailBytes of pdftoppm output; the fatal
// message is printed last.
func stderrTail(b []byte) string {
	msg := strings.TrimSpace(string(b))
	if len(msg) <= stderrTailBytes {
		return msg
	}
	return "..." + msg[len(msg)-stderrTailBytes:]
}

// Poppler rasterizes with the pdftoppm command line tool.
type Poppler struct {
	cfg      Config
	runner   Runner
	lookPath func(file string) (string, error)
	logger   *slog.Logger
}

func NewPoppler(cfg Config, logger *slog.Logger) *Poppler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poppler{
		cfg:      cfg.withDefaults(),
		runner:   execRunner{logger: logger},
		lookPath: exec.LookPath,
		logger:   logger,
	}
}

// WithRunner swaps the command runner; used by tests.
func (p *Poppler) WithRunner(r Runner) *Poppler {
	p.runner = r
	return p
}

// resolveBinary looks on PATH first and falls back to PopplerPath.
func (p *Poppler) resolveBinary() (string, error) {
	bin, err := p.lookPath(p.cfg.Pdftoppm)
	if err == nil {
		return bin, nil
	}
	if p.cfg.PopplerPath == "" {
		return "", err
	}
	bin, err2 := p.lookPath(filepath.Join(p.cfg.PopplerPath, p.cfg.Pdftoppm))
	if err2 != nil {
		return "", fmt.Errorf("%v; POPPLER_PATH=%s: %w", err, p.cfg.PopplerPath, err2)
	}
	return bin, nil
}

// Rasterize renders every page to PNG at the configured DPI.
func (p *Poppler) Rasterize(ctx context.Context, path string) ([]Page, error) {
	start := time.Now()

	bin, err := p.resolveBinary()
	if err != nil {
		p.logger.Error("pdftoppm not found", "binary", p.cfg.Pdftoppm, "poppler_path", p.cfg.PopplerPath, "error", err)
		return nil, common.RasterizationError(
			withGuidance("Failed to convert PDF to images. pdftoppm is not installed or not on PATH."), err)
	}

	// The page tree is only parsed when a cap is set, to report truncation.
	if p.cfg.MaxPages > 0 {
		if total, err := PageCount(path); err != nil {
			p.logger.Debug("pdf page count unavailable", "path", path, "error", err)
		} else if total > p.cfg.MaxPages {
			p.logger.Warn("pdf exceeds page limit; rendering first pages only", "path", path, "pages", total, "max_pages", p.cfg.MaxPages)
		}
	}

	tmpDir, err := os.MkdirTemp(p.cfg.TempDir, "pdfpages-*")
	if err != nil {
		return nil, fmt.Errorf("create render dir: %w", err)
	}
	defer func(dir string) {
		if err := os.RemoveAll(dir); err != nil {
			p.logger.Warn("failed to remove render dir", "path", dir, "error", err)
		}
	}(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 200 -png [-l N] <in.pdf> <tmp/page>
	args := []string{"-r", strconv.Itoa(p.cfg.DPI), "-png"}
	if p.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(p.cfg.MaxPages))
	}
	args = append(args, path, prefix)

	if _, errb, err := p.runner.Run(ctx, bin, args...); err != nil {
		return nil, common.RasterizationError(
			withGuidance("Failed to convert PDF to images. Ensure Poppler is installed and accessible."),
			stderrError(err, errb))
	}

	files, err := renderedPages(prefix)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, common.RasterizationError(withGuidance("pdftoppm produced no images."), fmt.Errorf("no pages rendered"))
	}

	pages := make([]Page, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("read rendered page %d: %w", f.number, err)
		}
		pages = append(pages, Page{Number: f.number, PNG: data})
	}

	p.logger.Debug("pdf rasterized",
		"path", path,
		"pages", len(pages),
		"dpi", p.cfg.DPI,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return pages, nil
}

type renderedPage struct {
	path   string
	number int
}

// renderedPages collects prefix-N.png outputs ordered by page number.
// pdftoppm zero-pads N to the width of the last page number.
func renderedPages(prefix string) ([]renderedPage, error) {
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("glob rendered pages: %w", err)
	}
	out := make([]renderedPage, 0, len(matches))
	for _, m := range matches {
		num := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), filepath.Base(prefix)+"-"), ".png")
		n, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		out = append(out, renderedPage{path: m, number: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].number < out[j].number })
	return out, nil
}
