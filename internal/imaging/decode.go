package imaging

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Image is a validated request image: the original encoded bytes plus the
// pixel dimensions read from the header. Pixel data is never decoded here;
// the face model consumes the encoded bytes directly.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// Decode reads the image header and returns the image with its dimensions.
// Corrupt or unsupported data is an infrastructure fault: the format checks
// a caller can fix happen at the request boundary, before bytes reach the
// pipeline.
func Decode(data []byte) (*Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return &Image{
		Data:   data,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
