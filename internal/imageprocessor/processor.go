package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Processor recompresses images before they leave the server: it bounds the
// longest side to maxDimension and re-encodes at a fixed quality.
type Processor struct {
	maxDimension int
	quality      int // JPEG quality (1-100)
}

// NewProcessor creates an image processor.
func NewProcessor(maxDimension, quality int) *Processor {
	if maxDimension <= 0 {
		maxDimension = 1920
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Processor{
		maxDimension: maxDimension,
		quality:      quality,
	}
}

// Compress decodes data, downscales it when it exceeds the bound, and
// re-encodes it in its original format. It returns the encoded bytes and
// their content type. Formats other than JPEG and PNG are not touched.
func (p *Processor) Compress(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.bound(img)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	case "png":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}
}

// bound downscales an image so neither side exceeds maxDimension,
// preserving aspect ratio. Smaller images come back unchanged.
func (p *Processor) bound(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= p.maxDimension && height <= p.maxDimension {
		return img
	}

	ratio := float64(width) / float64(height)
	newWidth := p.maxDimension
	newHeight := p.maxDimension
	if width > height {
		newHeight = int(float64(p.maxDimension) / ratio)
	} else {
		newWidth = int(float64(p.maxDimension) * ratio)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// IsValidImage checks whether data contains a decodable image.
func IsValidImage(data []byte) bool {
	_, _, err := image.Decode(bytes.NewReader(data))
	return err == nil
}
