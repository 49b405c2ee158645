package constants

import (
	"path/filepath"
	"sort"
	"strings"
)

// FileKind is the extraction strategy chosen for an upload.
type FileKind string

const (
	PDF   FileKind = "PDF"
	IMAGE FileKind = "IMAGE"
)

// MaxUploadBytes is the largest accepted upload (50 MiB).
const MaxUploadBytes int64 = 50 << 20

// PageBreak separates per-page OCR output of a multi-page document.
const PageBreak = "\n\n--- Page Break ---\n\n"

// NoTextFound is returned by OCR when the recognizer produced nothing.
const NoTextFound = "No text found in image"

// AllowedExtensions maps every accepted extension (lowercase, no dot) to its kind.
var AllowedExtensions = map[string]FileKind{
	"pdf":  PDF,
	"jpg":  IMAGE,
	"jpeg": IMAGE,
	"png":  IMAGE,
	"gif":  IMAGE,
	"bmp":  IMAGE,
	"tiff": IMAGE,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Classify derives the FileKind from a filename's extension.
// ok is false when the extension is not in the allow-list.
func Classify(filename string) (ext string, kind FileKind, ok bool) {
	ext = NormalizeExt(filepath.Ext(filename))
	kind, ok = AllowedExtensions[ext]
	return ext, kind, ok
}

// SupportedExtensions returns the allow-list as sorted ".ext" strings.
func SupportedExtensions() []string {
	out := make([]string, 0, len(AllowedExtensions))
	for ext := range AllowedExtensions {
		out = append(out, "."+ext)
	}
	sort.Strings(out)
	return out
}
