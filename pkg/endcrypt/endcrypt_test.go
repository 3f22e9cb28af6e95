package endcrypt

import (
	"errors"
	"math"
	"testing"

	"github.com/andresmejia3/endcrypt/pkg/metrics"
	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"github.com/andresmejia3/endcrypt/pkg/testpattern"
)

func TestSecurityLevel(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 4: 2, 6: 3, 8: 4, 9: 5}
	for iterations, want := range cases {
		if got := SecurityLevel(iterations); got != want {
			t.Errorf("SecurityLevel(%d) = %d; want %d", iterations, got, want)
		}
	}
	if got := Iterations(DefaultLevel); got != 4 {
		t.Errorf("Iterations(%d) = %d; want 4", DefaultLevel, got)
	}
}

func TestRoundTrip(t *testing.T) {
	img := testpattern.Generate()
	for _, iterations := range []int{2, 4, 6, 8} {
		for _, key := range []float64{0.1, 0.5, 0.67, 0.9} {
			encrypted, err := Encrypt(img, key, iterations, Options{})
			if err != nil {
				t.Fatalf("Encrypt(key=%v, iterations=%d) failed: %v", key, iterations, err)
			}
			decrypted, err := Decrypt(encrypted, key, iterations, Options{})
			if err != nil {
				t.Fatalf("Decrypt(key=%v, iterations=%d) failed: %v", key, iterations, err)
			}
			if !decrypted.Equal(img) {
				t.Errorf("key=%v iterations=%d: decrypted image differs from original", key, iterations)
			}
		}
	}
}

func TestRoundTripOddAndZeroIterations(t *testing.T) {
	img := testpattern.Generate()
	for _, iterations := range []int{0, 1, 3, 11} {
		encrypted, err := Encrypt(img, 0.42, iterations, Options{Workers: 3})
		if err != nil {
			t.Fatalf("Encrypt(iterations=%d) failed: %v", iterations, err)
		}
		decrypted, err := Decrypt(encrypted, 0.42, iterations, Options{Workers: 5})
		if err != nil {
			t.Fatalf("Decrypt(iterations=%d) failed: %v", iterations, err)
		}
		if !decrypted.Equal(img) {
			t.Errorf("iterations=%d: round trip failed", iterations)
		}
	}
}

func TestEncryptIsDeterministic(t *testing.T) {
	img := testpattern.Generate()
	a, err := Encrypt(img, 0.67, 4, Options{})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	b, err := Encrypt(img, 0.67, 4, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if !a.Equal(b) {
		t.Error("two Encrypt calls with identical arguments differ")
	}
}

func TestEncryptDoesNotMutateInput(t *testing.T) {
	img := testpattern.Generate()
	before := img.Clone()
	encrypted, err := Encrypt(img, 0.67, 4, Options{})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if !img.Equal(before) {
		t.Error("Encrypt modified its input")
	}

	after := encrypted.Clone()
	if _, err := Decrypt(encrypted, 0.67, 4, Options{}); err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !encrypted.Equal(after) {
		t.Error("Decrypt modified its input")
	}
}

func TestEncryptSinglePixelKeystream(t *testing.T) {
	img := pixel.New(1, 1, 3)
	img.Pix = []uint8{10, 20, 30}

	// iterations 0 -> level 0 falls back to the level-4 tables.
	got, err := Encrypt(img, 0.67, 0, Options{})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if want := []uint8{10, 171, 206}; string(got.Pix) != string(want) {
		t.Errorf("Encrypt(iterations=0) = %v; want %v", got.Pix, want)
	}

	got, err = Encrypt(img, 0.67, 2, Options{})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if want := []uint8{10, 152, 31}; string(got.Pix) != string(want) {
		t.Errorf("Encrypt(iterations=2) = %v; want %v", got.Pix, want)
	}
}

func TestUniformGrayEndToEnd(t *testing.T) {
	gray := pixel.Filled(256, 256, 3, 128)

	res, err := Process(gray, DefaultKey, DefaultLevel, Options{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Iterations != 4 {
		t.Errorf("Iterations = %d; want 4", res.Iterations)
	}
	if got := metrics.Entropy(gray); got != 0 {
		t.Errorf("original entropy = %v; want 0", got)
	}
	if got := metrics.Entropy(res.Encrypted); got <= 7.0 {
		t.Errorf("encrypted entropy = %v; want > 7", got)
	}
	if !res.Decrypted.Equal(gray) {
		t.Error("decrypted image differs from original")
	}
	if res.Metrics.DecryptedPSNR != nil {
		t.Errorf("decrypted PSNR = %v; want null", *res.Metrics.DecryptedPSNR)
	}
	if res.Metrics.EncryptedPSNR == nil || math.IsInf(*res.Metrics.EncryptedPSNR, 0) {
		t.Error("encrypted PSNR should be a finite number")
	}
	if sum := res.Metrics.PixelDistribution.Sum(); sum < 97 || sum > 100 {
		t.Errorf("distribution sum = %d; want within [97, 100]", sum)
	}
}

func TestConstantImageEntropyRisesAtEveryLevel(t *testing.T) {
	gray := pixel.Filled(256, 256, 3, 128)
	for _, iterations := range []int{2, 4, 6, 8} {
		encrypted, err := Encrypt(gray, 0.5, iterations, Options{})
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		if got := metrics.Entropy(encrypted); got <= 6.0 {
			t.Errorf("iterations=%d: encrypted entropy %v; want > 6", iterations, got)
		}
	}
}

func TestWrongKeyDoesNotRecover(t *testing.T) {
	img := testpattern.Generate()
	encrypted, err := Encrypt(img, 0.67, 4, Options{})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	decrypted, err := Decrypt(encrypted, 0.6700001, 4, Options{})
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if decrypted.Equal(img) {
		t.Error("a different key recovered the original image")
	}
}

func TestInvalidInput(t *testing.T) {
	img := pixel.Filled(8, 8, 3, 1)

	if _, err := Encrypt(pixel.New(0, 8, 3), 0.5, 2, Options{}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("empty image: err = %v; want ErrInvalidDimensions", err)
	}
	if _, err := Encrypt(img, 0.5, -2, Options{}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative iterations: err = %v; want ErrInvalidParameter", err)
	}
	if _, err := Decrypt(img, math.NaN(), 2, Options{}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("NaN key: err = %v; want ErrInvalidParameter", err)
	}
	if _, err := Process(img, 0.5, -1, Options{}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative level: err = %v; want ErrInvalidParameter", err)
	}
	if _, err := Encrypt(pixel.New(4, 6, 3), 0.5, 2, Options{}); !errors.Is(err, ErrNotBijective) {
		t.Errorf("4x6 image: err = %v; want ErrNotBijective", err)
	}
}

func TestOutOfRangeKeyIsAccepted(t *testing.T) {
	img := testpattern.Generate()
	for _, key := range []float64{0, 1, 1.5, -0.25} {
		encrypted, err := Encrypt(img, key, 4, Options{})
		if err != nil {
			t.Fatalf("Encrypt(key=%v) failed: %v", key, err)
		}
		decrypted, err := Decrypt(encrypted, key, 4, Options{})
		if err != nil {
			t.Fatalf("Decrypt(key=%v) failed: %v", key, err)
		}
		if !decrypted.Equal(img) {
			t.Errorf("key=%v: round trip failed", key)
		}
	}
}

func TestKeyFromPassphrase(t *testing.T) {
	a, err := KeyFromPassphrase("correct-horse-battery-staple", "")
	if err != nil {
		t.Fatalf("KeyFromPassphrase failed: %v", err)
	}
	b, _ := KeyFromPassphrase("correct-horse-battery-staple", DefaultSalt)
	c, _ := KeyFromPassphrase("correct-horse-battery-staple", "other-salt")

	if a <= 0 || a >= 1 {
		t.Errorf("derived key %v outside (0,1)", a)
	}
	if a != b {
		t.Error("empty salt should fall back to the default salt")
	}
	if a == c {
		t.Error("different salts produced the same key")
	}
	if _, err := KeyFromPassphrase("", ""); err == nil {
		t.Error("expected an error for an empty passphrase")
	}
}
