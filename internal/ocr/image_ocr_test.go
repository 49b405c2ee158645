package ocr

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnhanceContrast(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	out := enhanceContrast(img, 1.5)

	// mean luminance 150: 150 + 1.5*(100-150) = 75, 150 + 1.5*(200-150) = 225
	assert.Equal(t, color.RGBA{R: 75, G: 75, B: 75, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 225, G: 225, B: 225, A: 255}, out.RGBAAt(1, 0))
}

func TestEnhanceContrastClips(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	out := enhanceContrast(img, 3)

	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(1, 0))
}

func TestEnhanceContrastFactorOneIsIdentity(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, enhanceContrast(img, 1).RGBAAt(0, 0))
}

func TestToRGBDropsAlphaAndRebases(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	src.SetNRGBA(6, 5, color.NRGBA{R: 40, G: 50, B: 60, A: 255})

	out := toRGB(src)

	assert.Equal(t, image.Rect(0, 0, 2, 1), out.Bounds())
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 40, G: 50, B: 60, A: 255}, out.RGBAAt(1, 0))
}

func TestMeanConfidence(t *testing.T) {
	assert.Zero(t, meanConfidence(nil))
	assert.InDelta(t, 0.7, meanConfidence([]Fragment{{Confidence: 0.6}, {Confidence: 0.8}, {}}), 1e-9)
}
