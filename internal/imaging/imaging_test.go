package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestPrepareJPEG(t *testing.T) {
	data := createTestJPEG(100, 100)
	avatar, err := Prepare(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Prepare JPEG: %v", err)
	}
	if avatar.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", avatar.MIME)
	}
	if len(avatar.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestPreparePNG(t *testing.T) {
	data := createTestPNG(100, 100)
	avatar, err := Prepare(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Prepare PNG: %v", err)
	}
	if avatar.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg (always re-encodes), got %s", avatar.MIME)
	}
}

func TestPrepareDownscale(t *testing.T) {
	data := createTestJPEG(1600, 800)
	avatar, err := Prepare(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Prepare large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(avatar.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dx%d, got %dx%d", MaxDimension, MaxDimension, bounds.Dx(), bounds.Dy())
	}
	if bounds.Dx() != 512 || bounds.Dy() != 256 {
		t.Errorf("expected aspect ratio preserved (512x256), got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPrepareSmallImageNotUpscaled(t *testing.T) {
	data := createTestJPEG(50, 50)
	avatar, err := Prepare(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Prepare small image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(avatar.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("small image should not be resized: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPrepareEmpty(t *testing.T) {
	_, err := Prepare(bytes.NewReader(nil))
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestPrepareNotAnImage(t *testing.T) {
	_, err := Prepare(bytes.NewReader([]byte("not an image at all")))
	if err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestPrepareGIFRejected(t *testing.T) {
	// GIF magic bytes.
	_, err := Prepare(bytes.NewReader([]byte("GIF89a...")))
	if err == nil {
		t.Error("expected error for GIF")
	}
}
