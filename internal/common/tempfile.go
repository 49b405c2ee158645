package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// WithTempFile creates a temp file in dir (pattern as in os.CreateTemp), lets
// fill write its content, closes it, calls use with its path and removes the
// file on every exit path, including panics in fill or use.
func WithTempFile(dir, pattern string, fill func(w io.Writer) error, use func(path string) error) (err error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			slog.Warn("failed to remove temp file", "path", path, "error", rmErr)
		}
	}()

	if fill != nil {
		if err := fill(f); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return use(path)
}
