package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormatting(t *testing.T) {
	cause := errors.New("bad header")
	err := DecodeError(cause)

	assert.Equal(t, "DECODE_ERROR: cannot decode image: bad header", err.Error())
	assert.Equal(t, "cannot decode image: bad header", err.Detail())
	assert.ErrorIs(t, err, cause)

	noCause := NoTextExtracted("no text extracted from PDF pages")
	assert.Equal(t, "no text extracted from PDF pages", noCause.Detail())
}

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("page 2: %w", RecognitionError(errors.New("boom")))

	assert.Equal(t, CodeRecognition, CodeOf(err))
	assert.True(t, IsCode(err, CodeRecognition))
	assert.False(t, IsCode(err, CodeDecode))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestValidateExtension(t *testing.T) {
	ext, kind, err := ValidateExtension("Holiday.PNG")
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.EqualValues(t, "IMAGE", kind)

	_, _, err = ValidateExtension("archive.zip")
	require.Error(t, err)
	assert.Equal(t, CodeUnsupportedFileType, CodeOf(err))
	assert.Contains(t, err.Error(), `"zip"`)
}

func TestValidateSize(t *testing.T) {
	assert.NoError(t, ValidateSize(10, 10))
	err := ValidateSize(11, 10)
	require.Error(t, err)
	assert.Equal(t, CodeFileTooLarge, CodeOf(err))
}
