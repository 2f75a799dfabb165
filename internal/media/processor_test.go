package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestProcessKeepsSmallImages(t *testing.T) {
	data := encodePNG(t, 40, 20)
	p := NewScaleProcessor(64)

	res, err := p.Process(context.Background(), Upload{Reader: bytes.NewReader(data), ContentType: "image/jpeg"}, 0)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if res.Resized {
		t.Fatalf("expected small image to pass through")
	}
	if res.ContentType != "image/png" || res.Extension != ".png" {
		t.Fatalf("expected sniffed png type, got %q %q", res.ContentType, res.Extension)
	}
	if !bytes.Equal(res.Bytes, data) {
		t.Fatalf("expected original bytes to be kept")
	}
}

func TestProcessScalesLargeJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 100))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	p := NewScaleProcessor(0)

	res, err := p.Process(context.Background(), Upload{Reader: &buf}, 100)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !res.Resized || res.ContentType != "image/jpeg" {
		t.Fatalf("expected resized jpeg, got resized=%v type=%q", res.Resized, res.ContentType)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(res.Bytes))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 25 {
		t.Fatalf("expected 100x25, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestProcessRejectsNonImages(t *testing.T) {
	p := NewScaleProcessor(100)
	_, err := p.Process(context.Background(), Upload{Reader: strings.NewReader("%PDF-1.4")}, 0)
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	_, err = p.Process(context.Background(), Upload{Reader: strings.NewReader("")}, 0)
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage for empty data, got %v", err)
	}
}

func TestScaleToFit(t *testing.T) {
	if w, h := scaleToFit(3000, 1000, 300); w != 300 || h != 100 {
		t.Fatalf("landscape: got %dx%d", w, h)
	}
	if w, h := scaleToFit(1000, 3000, 300); w != 100 || h != 300 {
		t.Fatalf("portrait: got %dx%d", w, h)
	}
	if w, h := scaleToFit(5000, 1, 100); w != 100 || h != 2 {
		t.Fatalf("thin: got %dx%d", w, h)
	}
}
