// Package pixel holds the dense row/column/channel sample arrays that the
// cipher and the metrics operate on, plus the codec that moves them in and
// out of ordinary image files.
package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of samples per pixel handled by this module (RGB).
const Channels = 3

var (
	// ErrInvalidDimensions is returned for arrays with a zero-sized axis or a
	// sample buffer that does not match the declared shape.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrShapeMismatch is returned when two arrays that must share a shape do not.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Array is an H x W x C block of 8-bit samples stored row-major, with the
// channels of one pixel adjacent: Pix[(row*W+col)*C+ch].
type Array struct {
	H, W, C int
	Pix     []uint8
}

// New allocates a zeroed array of the given shape.
func New(h, w, c int) *Array {
	if h < 0 || w < 0 || c < 0 {
		h, w, c = 0, 0, 0
	}
	return &Array{H: h, W: w, C: c, Pix: make([]uint8, h*w*c)}
}

// Filled allocates an array with every sample set to v.
func Filled(h, w, c int, v uint8) *Array {
	a := New(h, w, c)
	for i := range a.Pix {
		a.Pix[i] = v
	}
	return a
}

// Len is the number of samples, H*W*C.
func (a *Array) Len() int {
	return a.H * a.W * a.C
}

// Validate reports ErrInvalidDimensions for empty shapes or inconsistent buffers.
func (a *Array) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil array", ErrInvalidDimensions)
	}
	if a.H <= 0 || a.W <= 0 || a.C <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, a.H, a.W, a.C)
	}
	if len(a.Pix) != a.Len() {
		return fmt.Errorf("%w: buffer holds %d samples, shape %dx%dx%d needs %d",
			ErrInvalidDimensions, len(a.Pix), a.H, a.W, a.C, a.Len())
	}
	return nil
}

// SameShape reports whether a and b have identical (H, W, C).
func (a *Array) SameShape(b *Array) bool {
	return a.H == b.H && a.W == b.W && a.C == b.C
}

// CheckShape returns ErrShapeMismatch when a and b differ in shape.
func CheckShape(a, b *Array) error {
	if !a.SameShape(b) {
		return fmt.Errorf("%w: %dx%dx%d vs %dx%dx%d", ErrShapeMismatch, a.H, a.W, a.C, b.H, b.W, b.C)
	}
	return nil
}

// Offset returns the index of (row, col, 0) in Pix.
func (a *Array) Offset(row, col int) int {
	return (row*a.W + col) * a.C
}

// At returns the sample at (row, col, ch).
func (a *Array) At(row, col, ch int) uint8 {
	return a.Pix[a.Offset(row, col)+ch]
}

// Set stores v at (row, col, ch).
func (a *Array) Set(row, col, ch int, v uint8) {
	a.Pix[a.Offset(row, col)+ch] = v
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	out := &Array{H: a.H, W: a.W, C: a.C, Pix: make([]uint8, len(a.Pix))}
	copy(out.Pix, a.Pix)
	return out
}

// Equal reports whether a and b have the same shape and samples.
func (a *Array) Equal(b *Array) bool {
	if !a.SameShape(b) || len(a.Pix) != len(b.Pix) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

// FromImage copies the RGB channels of img into a new H x W x 3 array.
// Alpha is discarded; colors are read through the NRGBA model.
func FromImage(img image.Image) *Array {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := New(height, width, Channels)

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				src := nrgba.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				dst := out.Offset(y, x)
				copy(out.Pix[dst:dst+Channels], nrgba.Pix[src:src+Channels])
			}
		}
		return out
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			dst := out.Offset(y, x)
			out.Pix[dst] = c.R
			out.Pix[dst+1] = c.G
			out.Pix[dst+2] = c.B
		}
	}
	return out
}

// Image converts a 1-, 3- or 4-channel array to an opaque NRGBA image.
// Single-channel arrays become gray; a fourth channel is used as alpha.
func (a *Array) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, a.W, a.H))
	for y := 0; y < a.H; y++ {
		for x := 0; x < a.W; x++ {
			src := a.Offset(y, x)
			dst := img.PixOffset(x, y)
			switch {
			case a.C >= 3:
				img.Pix[dst] = a.Pix[src]
				img.Pix[dst+1] = a.Pix[src+1]
				img.Pix[dst+2] = a.Pix[src+2]
			case a.C > 0:
				v := a.Pix[src]
				img.Pix[dst], img.Pix[dst+1], img.Pix[dst+2] = v, v, v
			}
			img.Pix[dst+3] = 255
			if a.C >= 4 {
				img.Pix[dst+3] = a.Pix[src+3]
			}
		}
	}
	return img
}
