package metrics

import (
	"math"

	"github.com/andresmejia3/endcrypt/pkg/pixel"
)

// Report is the serialisable summary of one encrypt/decrypt run. Floats are
// rounded to two decimals; a lossless PSNR is reported as null.
type Report struct {
	OriginalEntropy   float64      `json:"originalEntropy"`
	EncryptedEntropy  float64      `json:"encryptedEntropy"`
	DecryptedEntropy  float64      `json:"decryptedEntropy"`
	EncryptedPSNR     *float64     `json:"encryptedPSNR"`
	DecryptedPSNR     *float64     `json:"decryptedPSNR"`
	PixelDistribution Distribution `json:"pixelDistribution"`
}

// NewReport scores a run. The distribution is taken from the encrypted array
// and both PSNR values are measured against the original.
func NewReport(original, encrypted, decrypted *pixel.Array) (*Report, error) {
	encPSNR, err := PSNR(original, encrypted)
	if err != nil {
		return nil, err
	}
	decPSNR, err := PSNR(original, decrypted)
	if err != nil {
		return nil, err
	}

	return &Report{
		OriginalEntropy:   Round2(Entropy(original)),
		EncryptedEntropy:  Round2(Entropy(encrypted)),
		DecryptedEntropy:  Round2(Entropy(decrypted)),
		EncryptedPSNR:     Finite(encPSNR),
		DecryptedPSNR:     Finite(decPSNR),
		PixelDistribution: PixelDistribution(encrypted),
	}, nil
}

// Round2 rounds v to two decimal places. Halves of the scaled value round
// away from zero, so ties can differ from a round-half-to-even formatter.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Finite returns a pointer to v rounded to two decimals, or nil when v is
// infinite or NaN.
func Finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	r := Round2(v)
	return &r
}
