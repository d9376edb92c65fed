package preprocess

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8((x + y) % 256), B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeShapeAndRange(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"png_small", func() []byte { return encodePNG(t, 32, 32) }()},
		{"png_exact", func() []byte { return encodePNG(t, 128, 128) }()},
		{"png_large_landscape", func() []byte { return encodePNG(t, 600, 450) }()},
		{"jpeg_portrait", func() []byte { return encodeJPEG(t, 300, 400) }()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Normalize(tc.data)
			if err != nil {
				t.Fatalf("Normalize returned error: %v", err)
			}
			if len(out) != TensorLen {
				t.Fatalf("len(out) = %d, want %d", len(out), TensorLen)
			}
			for i, v := range out {
				if v < 0 || v > 1 {
					t.Fatalf("out[%d] = %f, outside [0, 1]", i, v)
				}
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	data := encodeJPEG(t, 257, 193)

	first, err := Normalize(data)
	if err != nil {
		t.Fatalf("first Normalize returned error: %v", err)
	}
	second, err := Normalize(data)
	if err != nil {
		t.Fatalf("second Normalize returned error: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("outputs differ at index %d: %f vs %f", i, first[i], second[i])
		}
	}
}

func TestNormalizeInvalidBytes(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not an image")},
		{"truncated_png", encodePNG(t, 64, 64)[:20]},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Normalize(tc.data); !errors.Is(err, ErrInvalidImage) {
				t.Fatalf("Normalize error = %v, want ErrInvalidImage", err)
			}
		})
	}
}
