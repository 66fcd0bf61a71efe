package renderer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBMPRoundTrip(t *testing.T) {
	const w, h = 4, 2
	pixels := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pixels[i*4+0] = byte(i * 17)
		pixels[i*4+1] = byte(i * 31)
		pixels[i*4+2] = byte(i * 53)
		pixels[i*4+3] = 255 // BMP has no alpha channel; opaque round-trips exactly.
	}

	encoded, err := EncodeRGBA8ToBMP(w, h, pixels)
	require.NoError(t, err)

	gotW, gotH, gotPixels, err := DecodeBMPToRGBA8(encoded)
	require.NoError(t, err)
	require.Equal(t, w, gotW)
	require.Equal(t, h, gotH)
	require.Equal(t, pixels, gotPixels)
}

func TestDecodeBMPToRGBA8RejectsGarbage(t *testing.T) {
	_, _, _, err := DecodeBMPToRGBA8([]byte("not a bmp"))
	require.Error(t, err)
}
