package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 2048
	defaultJPEGQuality  = 85
)

var ErrUnsupportedImage = errors.New("media: unsupported image")

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Extension   string
	Resized     bool
}

type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// ScaleProcessor sniffs the real image format and shrinks images whose
// longest side exceeds the limit. JPEG stays JPEG; every other format is
// re-encoded as PNG when it has to be scaled.
type ScaleProcessor struct {
	maxDimension int
	jpegQuality  int
}

func NewScaleProcessor(maxDimension int) *ScaleProcessor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &ScaleProcessor{maxDimension: maxDimension, jpegQuality: defaultJPEGQuality}
}

func (p *ScaleProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image data", ErrUnsupportedImage)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrUnsupportedImage, cfg.Width, cfg.Height)
	}
	contentType, ext := typeFor(format)

	targetMax := maxDimension
	if targetMax <= 0 {
		targetMax = p.maxDimension
	}
	if cfg.Width <= targetMax && cfg.Height <= targetMax {
		return &Result{Bytes: data, ContentType: contentType, Extension: ext}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	w, h := scaleToFit(cfg.Width, cfg.Height, targetMax)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if format == "jpeg" {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.jpegQuality})
	} else {
		contentType, ext = "image/png", ".png"
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, fmt.Errorf("media: encode image: %w", err)
	}
	return &Result{Bytes: buf.Bytes(), ContentType: contentType, Extension: ext, Resized: true}, nil
}

func typeFor(format string) (string, string) {
	switch format {
	case "jpeg":
		return "image/jpeg", ".jpg"
	case "png":
		return "image/png", ".png"
	case "gif":
		return "image/gif", ".gif"
	case "webp":
		return "image/webp", ".webp"
	default:
		return "application/octet-stream", ""
	}
}

func scaleToFit(width, height, maxDim int) (int, int) {
	if width >= height {
		newH := int(math.Round(float64(height) * float64(maxDim) / float64(width)))
		return ensureMin(maxDim), ensureMin(newH)
	}
	newW := int(math.Round(float64(width) * float64(maxDim) / float64(height)))
	return ensureMin(newW), ensureMin(maxDim)
}

func ensureMin(value int) int {
	if value < 2 {
		return 2
	}
	return value
}
