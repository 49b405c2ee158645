package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/content-analyzer/constants"
	"github.com/joseph-ayodele/content-analyzer/internal/common"
	"github.com/joseph-ayodele/content-analyzer/internal/pdf"
)

type Pipeline struct {
	ocr     ImageRecognizer
	raster  pdf.Rasterizer
	tempDir string
	logger  *slog.Logger
}

var _ TextExtractor = (*Pipeline)(nil)

// NewPipeline wires the OCR adapter and rasterizer. tempDir holds per-page
// scratch files; "" means os.TempDir().
func NewPipeline(ocr ImageRecognizer, raster pdf.Rasterizer, tempDir string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{ocr: ocr, raster: raster, tempDir: tempDir, logger: logger}
}

// ExtractFile classifies path by its extension and extracts it.
func (p *Pipeline) ExtractFile(ctx context.Context, path string) (Result, error) {
	_, kind, err := common.ValidateExtension(path)
	if err != nil {
		return Result{}, err
	}
	return p.Extract(ctx, path, kind)
}

// Extract produces the text of the file at path according to kind.
func (p *Pipeline) Extract(ctx context.Context, path string, kind constants.FileKind) (Result, error) {
	start := time.Now()
	logger := common.LoggerFromContext(ctx, p.logger)
	logger.Debug("starting extraction", "path", path, "kind", kind)

	var (
		res Result
		err error
	)
	switch kind {
	case constants.PDF:
		res, err = p.extractPDF(ctx, path)
	case constants.IMAGE:
		res, err = p.extractImage(ctx, path)
	default:
		logger.Error("unsupported file kind", "kind", kind, "path", path)
		return Result{}, common.UnsupportedFileType(constants.NormalizeExt(filepath.Ext(path)))
	}
	res.Kind = kind
	res.Duration = time.Since(start)
	if err != nil {
		logger.Error("extraction failed", "path", path, "kind", kind, "code", common.CodeOf(err), "error", err)
		return res, err
	}
	logger.Info("extraction ok",
		"kind", kind,
		"pages", res.Pages,
		"pages_with_text", res.PagesWithText,
		"bytes", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (p *Pipeline) extractImage(ctx context.Context, path string) (Result, error) {
	if p.ocr == nil {
		return Result{}, common.CapabilityUnavailable("OCR engine not configured", nil)
	}
	txt, err := p.ocr.Recognize(ctx, path)
	if err != nil {
		return Result{Pages: 1}, err
	}
	res := Result{Text: txt, Pages: 1}
	if strings.TrimSpace(txt) != "" {
		res.PagesWithText = 1
	}
	return res, nil
}

// extractPDF OCRs every rendered page and joins the non-empty ones with
// constants.PageBreak. A failing page aborts the document.
func (p *Pipeline) extractPDF(ctx context.Context, path string) (Result, error) {
	if p.raster == nil {
		return Result{}, common.CapabilityUnavailable("PDF rasterizer not configured", nil)
	}
	if p.ocr == nil {
		return Result{}, common.CapabilityUnavailable("OCR engine not configured", nil)
	}

	pages, err := p.raster.Rasterize(ctx, path)
	if err != nil {
		return Result{}, err
	}

	texts := make([]string, 0, len(pages))
	for _, page := range pages {
		txt, err := p.recognizePage(ctx, page)
		if err != nil {
			return Result{Pages: len(pages)}, fmt.Errorf("page %d: %w", page.Number, err)
		}
		txt = strings.TrimSpace(txt)
		if txt == "" || txt == constants.NoTextFound {
			p.logger.Debug("page has no text; skipped", "page", page.Number)
			continue
		}
		texts = append(texts, txt)
	}

	res := Result{Pages: len(pages), PagesWithText: len(texts)}
	if len(texts) == 0 {
		return res, common.NoTextExtracted("No text extracted from PDF pages")
	}
	res.Text = strings.Join(texts, constants.PageBreak)
	return res, nil
}

// recognizePage stages one page image in a scratch file that is removed as
// soon as OCR returns.
func (p *Pipeline) recognizePage(ctx context.Context, page pdf.Page) (string, error) {
	var txt string
	err := common.WithTempFile(p.tempDir, fmt.Sprintf("page%d-*.png", page.Number),
		func(w io.Writer) error {
			_, err := w.Write(page.PNG)
			return err
		},
		func(path string) error {
			var err error
			txt, err = p.ocr.Recognize(ctx, path)
			return err
		})
	return txt, err
}
