package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/content-analyzer/constants"
)

// ImageRecognizer is the OCR adapter contract: image file -> text.
type ImageRecognizer interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// TextExtractor turns a staged file of a known kind into text.
type TextExtractor interface {
	Extract(ctx context.Context, path string, kind constants.FileKind) (Result, error)
}

type Result struct {
	Text          string
	Kind          constants.FileKind
	Pages         int // rendered pages; 1 for images
	PagesWithText int
	Duration      time.Duration
}
