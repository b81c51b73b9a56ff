package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessSquare_DefaultCenterCrop(t *testing.T) {
	raw := encodeTestPNG(t, 400, 300)

	out, err := ProcessSquare(raw, CropSpec{}, 256)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 256, decoded.Bounds().Dx())
	assert.Equal(t, 256, decoded.Bounds().Dy())
}

func TestProcessSquare_ExplicitCropClamped(t *testing.T) {
	raw := encodeTestPNG(t, 100, 100)

	// Crop rectangle hangs off the right edge; it must be clamped, not fail.
	out, err := ProcessSquare(raw, CropSpec{X: 80, Y: 10, Size: 50}, 64)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
}

func TestProcessBounded_PreservesAspect(t *testing.T) {
	raw := encodeTestPNG(t, 2000, 500)

	out, err := ProcessBounded(raw, 1024)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1024, decoded.Bounds().Dx())
	assert.Equal(t, 256, decoded.Bounds().Dy())
}

func TestProcessBounded_SmallImageUntouched(t *testing.T) {
	raw := encodeTestPNG(t, 300, 200)

	out, err := ProcessBounded(raw, 1024)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 300, decoded.Bounds().Dx())
	assert.Equal(t, 200, decoded.Bounds().Dy())
}

func TestProcessSquare_RejectsGarbage(t *testing.T) {
	_, err := ProcessSquare([]byte("definitely not an image"), CropSpec{}, 256)
	assert.Error(t, err)
}

func TestDecodeDataURL(t *testing.T) {
	raw := encodeTestPNG(t, 10, 10)
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	decoded, mime, err := DecodeDataURL(url, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, raw, decoded)
}

func TestDecodeDataURL_MimeMismatch(t *testing.T) {
	raw := encodeTestPNG(t, 10, 10)
	url := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)

	_, _, err := DecodeDataURL(url, 1<<20)
	assert.ErrorIs(t, err, ErrInvalidDataURL)
}

func TestDecodeDataURL_TooLarge(t *testing.T) {
	raw := encodeTestPNG(t, 50, 50)
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	_, _, err := DecodeDataURL(url, 10)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDecodeDataURL_NotADataURL(t *testing.T) {
	_, _, err := DecodeDataURL("https://example.com/a.png", 1<<20)
	assert.ErrorIs(t, err, ErrInvalidDataURL)
}
