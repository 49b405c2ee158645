package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/content-analyzer/constants"
	"github.com/joseph-ayodele/content-analyzer/internal/common"
)

type fakeRecognizer struct {
	frags []Fragment
	err   error
	seen  image.Image

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) Recognize(_ context.Context, img image.Image) ([]Fragment, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.seen = img
	return f.frags, f.err
}

func writePNG(t *testing.T, dir string, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestRecognizeJoinsFragmentsInOrder(t *testing.T) {
	rec := &fakeRecognizer{frags: []Fragment{
		{Text: "  first line", Confidence: 0.9},
		{Text: "second line"},
		{Text: "third  "},
	}}
	r := NewReader(NewCapability(rec), Config{}, nil)
	path := writePNG(t, t.TempDir(), color.White)

	got, err := r.Recognize(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\nthird", got)
}

func TestRecognizeEmptyReturnsSentinel(t *testing.T) {
	r := NewReader(NewCapability(&fakeRecognizer{}), Config{}, nil)
	path := writePNG(t, t.TempDir(), color.White)

	got, err := r.Recognize(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, constants.NoTextFound, got)
}

func TestRecognizeUnavailableCapability(t *testing.T) {
	cause := errors.New("libtesseract.so: cannot open shared object file")
	r := NewReader(Unavailable("Tesseract OCR", cause), Config{}, nil)

	_, err := r.Recognize(context.Background(), "/does/not/matter.png")

	require.Error(t, err)
	assert.Equal(t, common.CodeCapabilityUnavailable, common.CodeOf(err))
	assert.Contains(t, err.Error(), "Tesseract OCR")
	assert.ErrorIs(t, err, cause)
}

func TestRecognizeNilCapability(t *testing.T) {
	r := NewReader(nil, Config{}, nil)
	_, err := r.Recognize(context.Background(), "x.png")
	assert.Equal(t, common.CodeCapabilityUnavailable, common.CodeOf(err))
}

func TestRecognizeDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a png"), 0o600))
	r := NewReader(NewCapability(&fakeRecognizer{}), Config{}, nil)

	_, err := r.Recognize(context.Background(), path)

	require.Error(t, err)
	assert.Equal(t, common.CodeDecode, common.CodeOf(err))

	_, err = r.Recognize(context.Background(), filepath.Join(dir, "missing.png"))
	assert.Equal(t, common.CodeDecode, common.CodeOf(err))
}

func TestRecognizeRecognitionError(t *testing.T) {
	cause := errors.New("engine crashed")
	r := NewReader(NewCapability(&fakeRecognizer{err: cause}), Config{}, nil)
	path := writePNG(t, t.TempDir(), color.White)

	_, err := r.Recognize(context.Background(), path)

	require.Error(t, err)
	assert.Equal(t, common.CodeRecognition, common.CodeOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestRecognizerReceivesEnhancedRGB(t *testing.T) {
	rec := &fakeRecognizer{frags: []Fragment{{Text: "x"}}}
	r := NewReader(NewCapability(rec), Config{}, nil)
	path := writePNG(t, t.TempDir(), color.NRGBA{R: 200, G: 200, B: 200, A: 128})

	_, err := r.Recognize(context.Background(), path)
	require.NoError(t, err)

	rgba, ok := rec.seen.(*image.RGBA)
	require.True(t, ok, "recognizer should get an RGBA image")
	px := rgba.RGBAAt(0, 0)
	// uniform image: contrast around its own mean is a no-op, alpha dropped
	assert.Equal(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, px)
}

func TestCapabilitySerializesCalls(t *testing.T) {
	rec := &fakeRecognizer{frags: []Fragment{{Text: "x"}}, delay: 5 * time.Millisecond}
	r := NewReader(NewCapability(rec), Config{}, nil)
	path := writePNG(t, t.TempDir(), color.White)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Recognize(context.Background(), path)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, rec.maxInFlight.Load())
}

func TestCapabilityState(t *testing.T) {
	ok := NewCapability(&fakeRecognizer{})
	assert.True(t, ok.Available())
	assert.NoError(t, ok.Err())
	assert.Equal(t, "fake", ok.Name())
	assert.NoError(t, ok.Close())

	bad := NewCapability(nil)
	assert.False(t, bad.Available())
	assert.Error(t, bad.Err())
	assert.Equal(t, "unavailable", bad.Name())
	assert.NoError(t, bad.Close())
}
