// Package imageio loads cover images and saves stego images. Output is
// restricted to lossless encodings; a lossy re-encode destroys the payload.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/bmp"
)

const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

var LosslessFormats = []string{FormatPNG, FormatBMP}

var ErrLossyFormat = errors.New("output format is not lossless")

// Load decodes any registered image format (PNG, BMP, JPEG, GIF) into a
// fresh RGBA buffer.
func Load(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ToRGBA(src), nil
}

// ToRGBA copies the colour channels of src into a new opaque RGBA image with
// the same bounds. Alpha is dropped, since premultiplied channels of
// translucent pixels would not survive a PNG round trip.
func ToRGBA(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	straight, ok := src.(*image.NRGBA)
	if !ok || straight.Stride != 4*bounds.Dx() {
		straight = image.NewNRGBA(bounds)
		draw.Draw(straight, bounds, src, bounds.Min, draw.Src)
	}

	dst := image.NewRGBA(bounds)
	for i := 0; i < len(dst.Pix); i += 4 {
		copy(dst.Pix[i:i+3], straight.Pix[i:i+3])
		dst.Pix[i+3] = 0xff
	}
	return dst
}

// FormatOf maps a file extension to a lossless format.
func FormatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("%w: %q (use .png or .bmp)", ErrLossyFormat, filepath.Ext(path))
	}
}

// Save encodes img to path, choosing the encoder from the extension.
func Save(path string, img image.Image) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch format {
	case FormatBMP:
		err = bmp.Encode(file, img)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

// DefaultOutputPath names a new stego image in dir.
func DefaultOutputPath(dir, format string) string {
	return filepath.Join(dir, "stego-"+uuid.NewString()+"."+format)
}
