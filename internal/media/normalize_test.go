package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func pngWithAlpha(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 128}) // translucent pixel
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizePhotoKeepsSmallOpaqueAsJPEG(t *testing.T) {
	n := NormalizePhoto(jpegBytes(t, 640, 480))

	require.False(t, n.Fallback)
	assert.Equal(t, ".jpg", n.Ext)

	img, err := imaging.Decode(bytes.NewReader(n.Data))
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestNormalizePhotoCapsLongSide(t *testing.T) {
	n := NormalizePhoto(jpegBytes(t, 4000, 2000))

	require.False(t, n.Fallback)
	img, err := imaging.Decode(bytes.NewReader(n.Data))
	require.NoError(t, err)
	assert.Equal(t, MaxDimension, img.Bounds().Dx())
	// Aspect ratio preserved: 4000x2000 fits to 1920x960.
	assert.Equal(t, 960, img.Bounds().Dy())
}

func TestNormalizePhotoKeepsTransparencyAsPNG(t *testing.T) {
	n := NormalizePhoto(pngWithAlpha(t, 100, 100))

	require.False(t, n.Fallback)
	assert.Equal(t, ".png", n.Ext)

	img, err := png.Decode(bytes.NewReader(n.Data))
	require.NoError(t, err)
	_, _, _, a := img.At(0, 0).RGBA()
	assert.NotEqual(t, uint32(0xffff), a, "translucent pixel must survive re-encoding")
}

func TestNormalizePhotoFallsBackOnUndecodableInput(t *testing.T) {
	raw := []byte("not an image at all")
	n := NormalizePhoto(raw)

	assert.True(t, n.Fallback)
	assert.Equal(t, ".bin", n.Ext)
	assert.Equal(t, raw, n.Data, "raw bytes stored verbatim")
}

func TestDecodeSignature(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	b64 := base64.StdEncoding.EncodeToString(payload)

	t.Run("bare base64", func(t *testing.T) {
		got, err := DecodeSignature(b64)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("data-url header stripped", func(t *testing.T) {
		got, err := DecodeSignature("data:image/png;base64," + b64)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("surrounding whitespace tolerated", func(t *testing.T) {
		got, err := DecodeSignature("  " + b64 + "\n")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("invalid base64 rejected", func(t *testing.T) {
		_, err := DecodeSignature("data:image/png;base64,@@not-base64@@")
		assert.ErrorIs(t, err, ErrBadSignature)
	})
}
