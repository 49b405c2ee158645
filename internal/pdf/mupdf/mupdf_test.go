package mupdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/content-analyzer/internal/common"
	"github.com/joseph-ayodele/content-analyzer/internal/pdf"
)

func TestRasterizeCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\nthis is not really a pdf"), 0o600))

	_, err := New(pdf.Config{}, nil).Rasterize(context.Background(), path)

	require.Error(t, err)
	assert.Equal(t, common.CodeRasterization, common.CodeOf(err))
}

func TestNewDefaults(t *testing.T) {
	r := New(pdf.Config{MaxPages: 4}, nil)
	assert.Equal(t, 200, r.dpi)
	assert.Equal(t, 4, r.maxPages)
}
