package common

import (
	"github.com/joseph-ayodele/content-analyzer/constants"
)

// ValidateExtension classifies filename against the allow-list.
func ValidateExtension(filename string) (string, constants.FileKind, error) {
	ext, kind, ok := constants.Classify(filename)
	if !ok {
		return ext, "", UnsupportedFileType(ext)
	}
	return ext, kind, nil
}

// ValidateSize rejects sizes strictly greater than limit.
func ValidateSize(size, limit int64) error {
	if size > limit {
		return FileTooLarge(limit)
	}
	return nil
}
