package pixel

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// CanvasSize is the square edge every uploaded image is normalised to.
const CanvasSize = 256

// Decode reads any registered image format from r and returns its RGB
// samples. When size is positive the image is resampled to size x size
// with bilinear interpolation; otherwise native dimensions are kept.
func Decode(r io.Reader, size int) (*Array, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty %s image", ErrInvalidDimensions, format)
	}
	if size > 0 {
		img = resize(img, size, size)
	}
	return FromImage(img), nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte, size int) (*Array, error) {
	return Decode(bytes.NewReader(data), size)
}

// Load opens and decodes the image at path.
func Load(path string, size int) (*Array, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file, size)
}

// EncodePNG writes a as a lossless PNG.
func EncodePNG(w io.Writer, a *Array) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return png.Encode(w, a.Image())
}

// Save writes a to path as PNG.
func Save(path string, a *Array) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(file, a); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// DataURL renders a as a base64 PNG data URL suitable for an <img> src.
func DataURL(a *Array) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, a); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func resize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
