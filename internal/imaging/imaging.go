// Package imaging validates and normalizes avatar uploads before they
// are forwarded to the backend. Rejections happen here, client-side,
// so no network request is ever issued for an invalid file.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"golang.org/x/image/draw"
)

// MaxDimension is the longest edge an uploaded avatar is scaled to.
const MaxDimension = 512

// JPEGQuality is the re-encode quality.
const JPEGQuality = 85

// ErrEmpty is returned for an empty file selection.
var ErrEmpty = errors.New("empty image upload")

var allowed = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Avatar is a normalized, upload-ready image.
type Avatar struct {
	Data []byte
	MIME string
}

// Prepare reads an upload, sniffs the real MIME type from the bytes
// (the client-supplied header is not trusted), rejects empty and
// non-image files, scales the image down to MaxDimension, and
// re-encodes it as JPEG.
func Prepare(r io.Reader) (*Avatar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	detected := http.DetectContentType(data)
	if !strings.HasPrefix(detected, "image/") {
		return nil, fmt.Errorf("only image file types are allowed (got %s)", detected)
	}
	if !allowed[detected] {
		return nil, fmt.Errorf("unsupported image format %s (JPEG and PNG accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = shrink(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	return &Avatar{Data: buf.Bytes(), MIME: "image/jpeg"}, nil
}

// shrink scales img down so neither dimension exceeds maxDim,
// preserving aspect ratio. Images already within bounds are returned
// unchanged; nothing is ever upscaled.
func shrink(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
