package endcrypt

import (
	"fmt"

	"github.com/andresmejia3/endcrypt/pkg/metrics"
	"github.com/andresmejia3/endcrypt/pkg/pixel"
)

// Result is one full demo run: the three arrays and their scores.
type Result struct {
	Level      int
	Iterations int
	Key        float64
	Original   *pixel.Array
	Encrypted  *pixel.Array
	Decrypted  *pixel.Array
	Metrics    *metrics.Report
}

// Process encrypts img at the given security level, decrypts the result
// again and scores all three arrays.
func Process(img *pixel.Array, key float64, level int, opts Options) (*Result, error) {
	if level < 0 {
		return nil, fmt.Errorf("%w: level must be non-negative, got %d", ErrInvalidParameter, level)
	}
	iterations := Iterations(level)

	encrypted, err := Encrypt(img, key, iterations, opts)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}
	decrypted, err := Decrypt(encrypted, key, iterations, opts)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	report, err := metrics.NewReport(img, encrypted, decrypted)
	if err != nil {
		return nil, fmt.Errorf("%w: metrics: %v", ErrInternal, err)
	}

	return &Result{
		Level:      level,
		Iterations: iterations,
		Key:        key,
		Original:   img,
		Encrypted:  encrypted,
		Decrypted:  decrypted,
		Metrics:    report,
	}, nil
}
