package ocr

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func loadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// toRGB copies img into an opaque RGBA buffer. Alpha is discarded rather than
// composited, so transparent pixels keep their colour channels.
func toRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i := out.PixOffset(x-b.Min.X, y-b.Min.Y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = 0xff
		}
	}
	return out
}

// luma is the ITU-R 601-2 transform in 16.16 fixed point.
func luma(r, g, b uint8) uint32 {
	return (uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16
}

// enhanceContrast blends img away from a flat grey image at the mean
// luminance: out = mean + factor*(in-mean), clipped to 0..255.
// img must be opaque RGBA as produced by toRGB; it is modified in place.
func enhanceContrast(img *image.RGBA, factor float64) *image.RGBA {
	if factor == 1 {
		return img
	}
	pix := img.Pix
	n := len(pix) / 4
	if n == 0 {
		return img
	}

	var sum uint64
	for i := 0; i < len(pix); i += 4 {
		sum += uint64(luma(pix[i], pix[i+1], pix[i+2]))
	}
	mean := float64(int(float64(sum)/float64(n) + 0.5))

	for i := 0; i < len(pix); i += 4 {
		for c := 0; c < 3; c++ {
			pix[i+c] = clip8(mean + factor*(float64(pix[i+c])-mean))
		}
	}
	return img
}

func clip8(v float64) uint8 {
	// truncate toward zero before clipping
	iv := int(v)
	if iv < 0 {
		return 0
	}
	if iv > 255 {
		return 255
	}
	return uint8(iv)
}
