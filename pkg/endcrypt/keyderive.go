package endcrypt

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

// DefaultSalt is mixed into passphrase derivation when no salt is given.
const DefaultSalt = "endcrypt"

const pbkdf2Rounds = 100000

// KeyFromPassphrase stretches a passphrase with PBKDF2-SHA256 into a chaotic
// seed strictly inside (0,1). The same passphrase and salt always give the
// same key.
func KeyFromPassphrase(passphrase, salt string) (float64, error) {
	if passphrase == "" {
		return 0, errors.New("passphrase must not be empty")
	}
	if salt == "" {
		salt = DefaultSalt
	}
	sum := pbkdf2.Key([]byte(passphrase), []byte(salt), pbkdf2Rounds, 8, sha256.New)

	// Top 52 bits, centred in their bucket so neither 0 nor 1 is reachable.
	mantissa := binary.BigEndian.Uint64(sum) >> 12
	return (float64(mantissa) + 0.5) / (1 << 52), nil
}
