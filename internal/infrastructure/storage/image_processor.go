package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ImageProcessor validates uploaded product images and builds resized
// variants for the storefront.
type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024}
}

// Validate checks size and that the payload is a decodable JPEG or PNG,
// returning the detected format.
func (p *ImageProcessor) Validate(data []byte) (string, error) {
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// Variants returns resized JPEG renditions keyed by variant name.
func (p *ImageProcessor) Variants(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	sizes := map[string]int{"large": 1200, "medium": 600, "thumbnail": 300}
	variants := make(map[string][]byte, len(sizes))
	for name, size := range sizes {
		resized := imaging.Fit(img, size, size, imaging.Lanczos)
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("cannot encode %s variant: %w", name, err)
		}
		variants[name] = buf.Bytes()
	}
	return variants, nil
}
