//go:build !cgo

package chaos

import "math"

// LibmSine reports whether Sine is evaluated through the C library.
const LibmSine = false

func sin(x float64) float64 {
	return math.Sin(x)
}
