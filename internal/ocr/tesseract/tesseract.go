// Package tesseract backs ocr.Recognizer with libtesseract through gosseract.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/joseph-ayodele/content-analyzer/internal/ocr"
)

type Config struct {
	Languages   []string // default ["eng"]
	TessdataDir string
}

// Engine owns a single gosseract client. It is not safe for concurrent use;
// ocr.Capability serializes calls.
type Engine struct {
	client *gosseract.Client
	langs  []string
}

// New initializes the client and runs a warm-up recognition so that missing
// libraries or language data surface at startup instead of on first request.
func New(cfg Config) (*Engine, error) {
	langs := cfg.Languages
	if len(langs) == 0 {
		langs = []string{"eng"}
	}

	c := gosseract.NewClient()
	if cfg.TessdataDir != "" {
		if err := c.SetTessdataPrefix(cfg.TessdataDir); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := c.SetLanguage(langs...); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("set languages: %w", err)
	}
	if err := warmUp(c); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &Engine{client: c, langs: langs}, nil
}

// NewCapability builds the process-wide OCR handle, degrading to an
// unavailable capability when tesseract cannot be initialized.
func NewCapability(cfg Config, logger *slog.Logger) *ocr.Capability {
	if logger == nil {
		logger = slog.Default()
	}
	e, err := New(cfg)
	if err != nil {
		logger.Warn("tesseract initialization failed; OCR disabled", "error", err)
		return ocr.Unavailable("Tesseract OCR", err)
	}
	logger.Info("tesseract initialized", "version", gosseract.Version(), "languages", strings.Join(e.langs, "+"))
	return ocr.NewCapability(e)
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize returns one fragment per text line, in tesseract's reading order.
func (e *Engine) Recognize(ctx context.Context, img image.Image) ([]ocr.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	frags := make([]ocr.Fragment, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		frags = append(frags, ocr.Fragment{
			Text:       text,
			Box:        b.Box,
			Confidence: b.Confidence / 100.0,
		})
	}
	return frags, nil
}

func (e *Engine) Close() error {
	return e.client.Close()
}

func warmUp(c *gosseract.Client) error {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("warm-up image: %w", err)
	}
	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return fmt.Errorf("warm-up set image: %w", err)
	}
	if _, err := c.Text(); err != nil {
		return fmt.Errorf("warm-up recognition: %w", err)
	}
	return nil
}
