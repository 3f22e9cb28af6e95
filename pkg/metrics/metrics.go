// Package metrics scores cipher quality: histogram entropy, peak
// signal-to-noise ratio and a coarse three-bucket value distribution.
package metrics

import (
	"math"

	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"gonum.org/v1/gonum/stat"
)

// Lossless is the PSNR of two identical arrays. It is +Inf and must be
// translated (see Report) before crossing a serialisation boundary.
var Lossless = math.Inf(1)

// IsLossless reports whether v is the identical-arrays PSNR sentinel.
func IsLossless(v float64) bool {
	return math.IsInf(v, 1)
}

// Entropy is the Shannon entropy, in bits per sample, of the histogram of
// every sample in a (all rows, columns and channels pooled).
func Entropy(a *pixel.Array) float64 {
	return entropyOf(a.Pix, 0, 1)
}

// ChannelEntropy returns the entropy of each channel on its own.
func ChannelEntropy(a *pixel.Array) []float64 {
	out := make([]float64, a.C)
	for ch := range out {
		out[ch] = entropyOf(a.Pix, ch, a.C)
	}
	return out
}

func entropyOf(samples []uint8, start, stride int) float64 {
	var hist [256]int
	total := 0
	for i := start; i < len(samples); i += stride {
		hist[samples[i]]++
		total++
	}
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, count := range hist {
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// MSE is the mean squared difference over every sample of a and b.
func MSE(a, b *pixel.Array) (float64, error) {
	if err := pixel.CheckShape(a, b); err != nil {
		return 0, err
	}
	if len(a.Pix) == 0 {
		return 0, nil
	}
	sq := make([]float64, len(a.Pix))
	for i := range a.Pix {
		d := float64(a.Pix[i]) - float64(b.Pix[i])
		sq[i] = d * d
	}
	return stat.Mean(sq, nil), nil
}

// PSNR returns 20*log10(255/sqrt(MSE)) in dB, or Lossless when a and b are
// identical.
func PSNR(a, b *pixel.Array) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	return psnrFromMSE(mse), nil
}

func psnrFromMSE(mse float64) float64 {
	if mse == 0 {
		return Lossless
	}
	return 20 * math.Log10(255/math.Sqrt(mse))
}

// Distribution is the share of samples in each third of the value range,
// as truncated integer percentages. The three need not sum to 100.
type Distribution struct {
	Low  int `json:"low"`  // 0..85
	Mid  int `json:"mid"`  // 86..170
	High int `json:"high"` // 171..255
}

// Sum is Low+Mid+High.
func (d Distribution) Sum() int {
	return d.Low + d.Mid + d.High
}

// PixelDistribution buckets every sample of a into low, mid and high ranges.
func PixelDistribution(a *pixel.Array) Distribution {
	var low, mid, high int
	for _, v := range a.Pix {
		switch {
		case v <= 85:
			low++
		case v <= 170:
			mid++
		default:
			high++
		}
	}
	total := float64(len(a.Pix))
	if total == 0 {
		return Distribution{}
	}
	return Distribution{
		Low:  percent(low, total),
		Mid:  percent(mid, total),
		High: percent(high, total),
	}
}

func percent(count int, total float64) int {
	return int(float64(count) / total * 100)
}
