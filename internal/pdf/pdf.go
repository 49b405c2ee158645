package pdf

import (
	"context"
	"fmt"
	"strings"
)

// Page is one rendered PDF page. Number is 1-based.
type Page struct {
	Number int
	PNG    []byte
}

// Rasterizer renders every page of a PDF, in order.
type Rasterizer interface {
	Rasterize(ctx context.Context, path string) ([]Page, error)
}

type Config struct {
	DPI         int    // default 200
	MaxPages    int    // 0 = no limit
	PopplerPath string // directory searched for pdftoppm when it is not on PATH
	Pdftoppm    string // binary name; default "pdftoppm"
	TempDir     string // parent of per-document render directories; "" = os.TempDir()
}

func (c Config) withDefaults() Config {
	if c.DPI <= 0 {
		c.DPI = 200
	}
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	return c
}

// InstallGuidance is appended to every poppler-related failure.
const InstallGuidance = "PDF extraction requires the Poppler utilities (pdftoppm).\n" +
	"Install Poppler (Linux): apt-get install poppler-utils\n" +
	"Install Poppler (macOS): brew install poppler\n" +
	"Install Poppler (Windows): https://github.com/oschwartz10612/poppler-windows (add bin to PATH or set POPPLER_PATH)"

func withGuidance(summary string) string {
	return strings.TrimSpace(summary) + "\n" + InstallGuidance
}

func stderrError(err error, stderr []byte) error {
	msg := stderrTail(stderr)
	if msg == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, msg)
}
