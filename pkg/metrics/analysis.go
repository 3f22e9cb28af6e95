package metrics

import (
	"image"
	"image/color"
	"math"

	"github.com/andresmejia3/endcrypt/pkg/pixel"
)

// Comparison holds per-sample difference statistics between two arrays.
type Comparison struct {
	MSE     float64
	PSNR    float64 // Lossless when the arrays are identical
	Changed int     // pixels with at least one differing channel
	Heatmap *image.NRGBA
}

// Compare measures how far b is from a and renders a difference heatmap:
// black where a pixel is unchanged, shading from green to red as the summed
// absolute channel difference grows.
func Compare(a, b *pixel.Array) (*Comparison, error) {
	if err := pixel.CheckShape(a, b); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	heatmap := image.NewNRGBA(image.Rect(0, 0, a.W, a.H))
	var sumSquaredError float64
	changed := 0

	for row := 0; row < a.H; row++ {
		for col := 0; col < a.W; col++ {
			off := a.Offset(row, col)

			var diffSum float64
			isModified := false
			for ch := 0; ch < a.C; ch++ {
				diff := float64(a.Pix[off+ch]) - float64(b.Pix[off+ch])
				sumSquaredError += diff * diff
				diffSum += math.Abs(diff)
				if diff != 0 {
					isModified = true
				}
			}

			if isModified {
				changed++
				// A difference of 1 becomes 50 brightness.
				intensity := uint8(math.Min(255, diffSum*50))
				heatmap.SetNRGBA(col, row, color.NRGBA{R: intensity, G: 255 - intensity, B: 0, A: 255})
			} else {
				heatmap.SetNRGBA(col, row, color.NRGBA{A: 255})
			}
		}
	}

	mse := sumSquaredError / float64(a.Len())
	return &Comparison{
		MSE:     mse,
		PSNR:    psnrFromMSE(mse),
		Changed: changed,
		Heatmap: heatmap,
	}, nil
}
