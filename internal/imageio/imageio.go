// Package imageio loads carriers from and saves stego images to lossless
// formats. Lossy formats would destroy the LSB plane, so they are refused.
package imageio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Format is a lossless container the tools can read and write
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
)

// FormatFor picks the format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".jpg", ".jpeg":
		return "", fmt.Errorf("%s: JPEG is lossy and cannot carry LSB data", path)
	default:
		return "", fmt.Errorf("%s: unsupported image extension", path)
	}
}

// Decode reads a PNG or BMP image and reports which one it was
func Decode(r io.Reader) (image.Image, Format, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	switch Format(format) {
	case PNG, BMP:
		return img, Format(format), nil
	default:
		return nil, "", fmt.Errorf("format %q is not lossless", format)
	}
}

// Encode writes img in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Load opens and decodes an image file
func Load(path string) (image.Image, Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	return Decode(file)
}

// Save encodes img to path using the format implied by its extension
func Save(path string, img image.Image) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("%s encoding failed: %w", format, err)
	}
	return file.Close()
}
