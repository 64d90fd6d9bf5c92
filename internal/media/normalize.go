// Package media normalizes uploaded job-card images and decodes signature
// payloads before they reach the store. Photos are re-encoded to bounded,
// web-friendly files; anything that cannot be decoded as an image is kept
// verbatim so one bad attachment never aborts a submission.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// MaxDimension caps the longer side of stored photos, in pixels.
const MaxDimension = 1920

// jpegQuality trades size against quality for opaque photos.
const jpegQuality = 75

// ErrBadSignature is returned when a signature payload is not valid
// base64. Unlike photo normalization, which silently falls back to raw
// storage, a malformed signature is a client error.
var ErrBadSignature = errors.New("malformed signature payload")

// Normalized is the result of processing one uploaded file.
type Normalized struct {
	Data     []byte // bytes to store
	Ext      string // file extension including the dot
	Fallback bool   // true when the input was not a decodable image
}

// NormalizePhoto decodes an uploaded image, applies any embedded EXIF
// orientation, downscales it so neither dimension exceeds MaxDimension
// (Lanczos resampling) and re-encodes it: losslessly as PNG when the
// source carries transparency, otherwise as a quality-tuned JPEG. Input
// that cannot be decoded as an image is returned verbatim with a ".bin"
// extension and Fallback set.
func NormalizePhoto(raw []byte) Normalized {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return Normalized{Data: raw, Ext: ".bin", Fallback: true}
	}

	alpha := hasAlpha(img)

	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if alpha {
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return Normalized{Data: raw, Ext: ".bin", Fallback: true}
		}
		return Normalized{Data: buf.Bytes(), Ext: ".png"}
	}
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return Normalized{Data: raw, Ext: ".bin", Fallback: true}
	}
	return Normalized{Data: buf.Bytes(), Ext: ".jpg"}
}

// hasAlpha reports whether the image carries any non-opaque pixel.
func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

// DecodeSignature decodes a data-URL-style base64 signature payload. An
// optional "data:image/png;base64," style header before the first comma
// is stripped. The decoded bytes are returned together with the ".png"
// extension signatures are stored under.
func DecodeSignature(dataURL string) ([]byte, error) {
	b64 := dataURL
	if idx := strings.Index(dataURL, ","); idx >= 0 {
		b64 = dataURL[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return data, nil
}
