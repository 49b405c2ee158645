package pdf

import (
	"fmt"

	lpdf "github.com/ledongthuc/pdf"
)

// PageCount reads the page tree without rendering. The parser is stricter than
// poppler, so callers treat a failure as "unknown" rather than as corrupt input.
func PageCount(path string) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("read page tree: %v", r)
		}
	}()
	f, r, err := lpdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return r.NumPage(), nil
}
