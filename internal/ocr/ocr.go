package ocr

import (
	"context"
	"image"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/joseph-ayodele/content-analyzer/constants"
	"github.com/joseph-ayodele/content-analyzer/internal/common"
)

// Fragment is one piece of recognized text. Fragments are returned in the
// recognizer's reading order; Box and Confidence are informational.
type Fragment struct {
	Text       string
	Box        image.Rectangle
	Confidence float64 // 0..1, zero when unknown
}

// Recognizer is the external text-recognition capability.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) ([]Fragment, error)
}

// Capability is the process-wide recognizer handle. It is built once at
// startup and is either usable or carries the reason it is not.
// Recognizer calls are serialized because native engines are not safe for
// concurrent use.
type Capability struct {
	mu  sync.Mutex
	rec Recognizer
	err error
}

// NewCapability wraps an initialized recognizer.
func NewCapability(rec Recognizer) *Capability {
	if rec == nil {
		return Unavailable("OCR engine", nil)
	}
	return &Capability{rec: rec}
}

// Unavailable returns a capability whose every use fails with CAPABILITY_UNAVAILABLE.
func Unavailable(dependency string, cause error) *Capability {
	msg := dependency + " not initialized. Install Tesseract OCR " +
		"(https://tesseract-ocr.github.io/tessdoc/Installation.html) with the configured language data"
	return &Capability{err: common.CapabilityUnavailable(msg, cause)}
}

// Available reports whether recognition can be attempted.
func (c *Capability) Available() bool { return c != nil && c.rec != nil }

// Err is nil for a usable capability and the init failure otherwise.
func (c *Capability) Err() error {
	switch {
	case c.Available():
		return nil
	case c != nil && c.err != nil:
		return c.err
	default:
		return Unavailable("OCR engine", nil).err
	}
}

// Name of the underlying engine, or "unavailable".
func (c *Capability) Name() string {
	if !c.Available() {
		return "unavailable"
	}
	return c.rec.Name()
}

func (c *Capability) recognize(ctx context.Context, img image.Image) ([]Fragment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec.Recognize(ctx, img)
}

// Close releases the engine if it holds native resources.
func (c *Capability) Close() error {
	if !c.Available() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if closer, ok := c.rec.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

type Config struct {
	ContrastFactor float64 // unset (0) means 1.5; 1.0 leaves the image unchanged
}

// Reader turns an image file into text using the shared capability.
type Reader struct {
	capability *Capability
	cfg        Config
	logger     *slog.Logger
}

func NewReader(capability *Capability, cfg Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ContrastFactor == 0 {
		cfg.ContrastFactor = 1.5
	}
	return &Reader{capability: capability, cfg: cfg, logger: logger}
}

// Recognize opens the image at path, enhances it and returns its text joined
// with newlines in recognizer order. An image with no recognized text yields
// constants.NoTextFound.
func (r *Reader) Recognize(ctx context.Context, path string) (string, error) {
	if err := r.capability.Err(); err != nil {
		return "", err
	}
	start := time.Now()

	img, format, err := loadImage(path)
	if err != nil {
		r.logger.Error("ocr.decode.failed", "path", path, "error", err)
		return "", common.DecodeError(err)
	}
	b := img.Bounds()
	r.logger.Debug("ocr.image.opened", "path", path, "format", format, "width", b.Dx(), "height", b.Dy())

	enhanced := enhanceContrast(toRGB(img), r.cfg.ContrastFactor)

	frags, err := r.capability.recognize(ctx, enhanced)
	if err != nil {
		r.logger.Error("ocr.recognize.failed", "path", path, "engine", r.capability.Name(), "error", err)
		return "", common.RecognitionError(err)
	}

	texts := make([]string, 0, len(frags))
	for _, f := range frags {
		texts = append(texts, f.Text)
	}
	joined := strings.Join(texts, "\n")

	r.logger.Debug("ocr.recognize.ok",
		"path", path,
		"fragments", len(frags),
		"confidence", meanConfidence(frags),
		"text_bytes", len(joined),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if joined == "" {
		return constants.NoTextFound, nil
	}
	return strings.TrimSpace(joined), nil
}
