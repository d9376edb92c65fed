package preprocess

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	TargetSize = 128
	Channels   = 3

	// TensorLen is the flattened length of the model input, batch dimension
	// included: 1 x 128 x 128 x 3.
	TensorLen = 1 * TargetSize * TargetSize * Channels
)

var ErrInvalidImage = errors.New("could not decode image")

// Normalize decodes raw JPEG/PNG bytes into the flat NHWC float32 vector the
// classifier expects: RGB channel order, 128x128, every value scaled to
// [0, 1]. Pure function of its input.
func Normalize(data []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	resized := resize.Resize(TargetSize, TargetSize, img, resize.Lanczos3)

	out := make([]float32, TensorLen)
	for y := 0; y < TargetSize; y++ {
		for x := 0; x < TargetSize; x++ {
			// RGBA returns 16-bit channel values regardless of source
			// encoding, so the scale factor is 65535 rather than 255.
			r, g, b, _ := resized.At(x, y).RGBA()

			idx := (y*TargetSize + x) * Channels
			out[idx] = float32(r) / 65535.0
			out[idx+1] = float32(g) / 65535.0
			out[idx+2] = float32(b) / 65535.0
		}
	}

	return out, nil
}
