package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/bmp"
)

// DecodeBMPToRGBA8 decodes a BMP-encoded image into a tightly packed,
// top-to-bottom RGBA8 pixel buffer suitable as CreateTexture2D's initial
// data for a TextureFormatR8G8B8A8(SRGB) descriptor. BMP is the one raster
// format the pack's image libraries decode without a cgo dependency, and
// is a convenient on-disk container for baked-in test/demo textures that
// need no art-tool round trip.
func DecodeBMPToRGBA8(data []byte) (width, height int, pixels []byte, err error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, nil, fmt.Errorf("renderer: decode bmp: %w", err)
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}
	return bounds.Dx(), bounds.Dy(), rgba.Pix, nil
}

// EncodeRGBA8ToBMP is the inverse of DecodeBMPToRGBA8, used by tests and by
// tools that bake a captured/readback texture out to disk for inspection.
func EncodeRGBA8ToBMP(width, height int, pixels []byte) ([]byte, error) {
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(rgba.Pix, pixels)

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("renderer: encode bmp: %w", err)
	}
	return buf.Bytes(), nil
}
