// Package mupdf renders PDF pages in-process with MuPDF (go-fitz), for hosts
// without the poppler utilities.
package mupdf

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"time"

	"github.com/gen2brain/go-fitz"

	"github.com/joseph-ayodele/content-analyzer/internal/common"
	"github.com/joseph-ayodele/content-analyzer/internal/pdf"
)

const guidance = "Failed to render PDF with MuPDF. The file may be corrupt or password protected; " +
	"switch PDF_BACKEND=poppler to use pdftoppm instead."

type Rasterizer struct {
	dpi      int
	maxPages int
	logger   *slog.Logger
}

func New(cfg pdf.Config, logger *slog.Logger) *Rasterizer {
	if logger == nil {
		logger = slog.Default()
	}
	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = 200
	}
	return &Rasterizer{dpi: dpi, maxPages: cfg.MaxPages, logger: logger}
}

var _ pdf.Rasterizer = (*Rasterizer)(nil)

func (r *Rasterizer) Rasterize(ctx context.Context, path string) ([]pdf.Page, error) {
	start := time.Now()

	doc, err := fitz.New(path)
	if err != nil {
		return nil, common.RasterizationError(guidance, err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if n <= 0 {
		return nil, common.RasterizationError(guidance, fmt.Errorf("document has no pages"))
	}
	if r.maxPages > 0 && n > r.maxPages {
		r.logger.Warn("pdf exceeds page limit; rendering first pages only", "path", path, "pages", n, "max_pages", r.maxPages)
		n = r.maxPages
	}

	pages := make([]pdf.Page, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, float64(r.dpi))
		if err != nil {
			return nil, common.RasterizationError(guidance, fmt.Errorf("page %d: %w", i+1, err))
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		pages = append(pages, pdf.Page{Number: i + 1, PNG: buf.Bytes()})
	}

	r.logger.Debug("pdf rasterized",
		"path", path,
		"backend", "mupdf",
		"pages", len(pages),
		"dpi", r.dpi,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return pages, nil
}
