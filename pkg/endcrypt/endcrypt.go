// Package endcrypt is a confusion-diffusion image cipher: pixel positions
// are shuffled with a tiered cat map and the result is XORed with a
// keystream built from the logistic and sine maps.
//
// The construction is a teaching aid. It offers no cryptographic guarantees.
package endcrypt

import (
	"errors"
	"fmt"
	"math"

	"github.com/andresmejia3/endcrypt/pkg/catmap"
	"github.com/andresmejia3/endcrypt/pkg/chaos"
	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultLevel is the security level used when none is given.
	DefaultLevel = 2
	// DefaultKey is the chaotic seed used when none is given.
	DefaultKey = 0.67
)

// Options controls execution only; it never changes the output.
type Options struct {
	// Workers bounds the goroutines used per permutation round (0 = NumCPU).
	Workers int
	// OnRound is called after each permutation round with (done, total).
	OnRound func(done, total int)
}

func (o Options) permuteOptions() catmap.Options {
	return catmap.Options{Workers: o.Workers, OnRound: o.OnRound}
}

// Iterations is the permutation round count for a security level.
func Iterations(level int) int {
	return level * 2
}

// SecurityLevel derives the chaotic-map level from an iteration count.
func SecurityLevel(iterations int) int {
	return (iterations + 1) / 2
}

// Keystream returns the H*W*C mask bytes for key and iterations.
func Keystream(length int, key float64, iterations int) []uint8 {
	return chaos.Mask(length, key, SecurityLevel(iterations))
}

// Encrypt scrambles img's pixel positions, then XORs every sample with the
// keystream. img is not modified. Decrypt with the same key and iterations
// recovers it exactly.
func Encrypt(img *pixel.Array, key float64, iterations int, opts Options) (*pixel.Array, error) {
	if err := checkParams(img, key, iterations); err != nil {
		return nil, err
	}

	scrambled, err := catmap.Permute(img, iterations, catmap.Forward, opts.permuteOptions())
	if err != nil {
		return nil, wrapPermute(err)
	}

	xorInPlace(scrambled, Keystream(scrambled.Len(), key, iterations))
	return scrambled, nil
}

// Decrypt undoes Encrypt. A different key or iteration count yields noise,
// not an error.
func Decrypt(encrypted *pixel.Array, key float64, iterations int, opts Options) (*pixel.Array, error) {
	if err := checkParams(encrypted, key, iterations); err != nil {
		return nil, err
	}

	scrambled := encrypted.Clone()
	xorInPlace(scrambled, Keystream(scrambled.Len(), key, iterations))

	out, err := catmap.Permute(scrambled, iterations, catmap.Inverse, opts.permuteOptions())
	if err != nil {
		return nil, wrapPermute(err)
	}
	return out, nil
}

func checkParams(img *pixel.Array, key float64, iterations int) error {
	if err := img.Validate(); err != nil {
		return err
	}
	if iterations < 0 {
		return fmt.Errorf("%w: iterations must be non-negative, got %d", ErrInvalidParameter, iterations)
	}
	if math.IsNaN(key) || math.IsInf(key, 0) {
		return fmt.Errorf("%w: key must be finite, got %v", ErrInvalidParameter, key)
	}
	if key <= 0 || key >= 1 {
		log.Debug().Float64("key", key).Msg("Key outside (0,1); chaotic orbit may degenerate")
	}
	log.Debug().
		Int("height", img.H).
		Int("width", img.W).
		Int("channels", img.C).
		Int("iterations", iterations).
		Int("level", SecurityLevel(iterations)).
		Msg("Cipher parameters")
	return nil
}

func xorInPlace(a *pixel.Array, mask []uint8) {
	for i := range a.Pix {
		a.Pix[i] ^= mask[i]
	}
}

func wrapPermute(err error) error {
	if errors.Is(err, ErrInvalidDimensions) || errors.Is(err, ErrNotBijective) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
