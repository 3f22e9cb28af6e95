//go:build cgo

package chaos

// #cgo LDFLAGS: -lm
// #include <math.h>
import "C"

// LibmSine reports whether Sine is evaluated through the C library.
const LibmSine = true

func sin(x float64) float64 {
	return float64(C.sin(C.double(x)))
}
