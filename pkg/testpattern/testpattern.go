// Package testpattern draws a synthetic 256x256 image with flat regions,
// hard edges, a gradient and text, which makes the effect of the cipher
// easy to see.
package testpattern

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Size is the edge length of the pattern.
const Size = 256

var (
	black   = color.NRGBA{A: 255}
	white   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red     = color.NRGBA{R: 255, A: 255}
	green   = color.NRGBA{G: 255, A: 255}
	blue    = color.NRGBA{B: 255, A: 255}
	yellow  = color.NRGBA{R: 255, G: 255, A: 255}
	magenta = color.NRGBA{R: 255, B: 255, A: 255}
	cyan    = color.NRGBA{G: 255, B: 255, A: 255}
)

// Image renders the pattern.
func Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	// 32px grid
	for i := 0; i < Size; i += 32 {
		fillRect(img, i, 0, i, Size-1, black)
		fillRect(img, 0, i, Size-1, i, black)
	}

	// corner squares
	fillRect(img, 10, 10, 50, 50, red)
	fillRect(img, 206, 10, 246, 50, green)
	fillRect(img, 10, 206, 50, 246, blue)
	fillRect(img, 206, 206, 246, 246, yellow)

	// gradient band
	for y := 100; y < 156; y++ {
		step := uint8(y - 100)
		fillRect(img, 50, y, 205, y, color.NRGBA{R: step, B: 255 - step, A: 255})
	}

	drawText(img, 70, 80, "Test Pattern")
	drawText(img, 80, 180, "EndCrypt")

	fillDisc(img, 128, 128, 25, magenta)
	fillDisc(img, 128, 128, 15, cyan)

	return img
}

// Generate returns the pattern as an RGB sample array.
func Generate() *pixel.Array {
	return pixel.FromImage(Image())
}

// fillRect paints the inclusive rectangle (x0,y0)-(x1,y1).
func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(img.Bounds())
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func fillDisc(img *image.NRGBA, cx, cy, radius int, c color.NRGBA) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius && (image.Point{X: x, Y: y}).In(img.Bounds()) {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

// drawText writes s with its baseline starting at (x, y).
func drawText(img *image.NRGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
