//go:build cgo

package chaos

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

// canvasSamples is the mask length of a 256x256 RGB image.
const canvasSamples = 256 * 256 * 3

func TestSinMatchesLibm(t *testing.T) {
	// Fifth step of the sine orbit from 0.335 at level 2, where math.Sin
	// is one ulp below the C library.
	const x = 1.0382678091053061
	if got, want := sin(x), 0.8615260637462783; got != want {
		t.Errorf("sin(%v) = %v; want %v", x, got, want)
	}

	orbit := 0.9 * sin(x)
	if want := 0.7753734573716504; orbit != want {
		t.Errorf("orbit value = %v; want %v", orbit, want)
	}
}

func TestFullCanvasMaskDigest(t *testing.T) {
	cases := []struct {
		key    float64
		level  int
		digest string
	}{
		{0.67, 2, "e7392feb06f81bd4537883c3e3c3efdf66ded9575ed788bbd716db099f60d47a"},
		{0.1, 1, "1f8480cb7f9527ae68358a24d6f6af1595fc0a81a9c3dc91730a52360cbd3161"},
		{0.5, 3, "349b7b9cff4aef4efa367d7f75bd859c185af8aa12d61ac40a35db9833982cd9"},
		{0.9, 4, "70c0f5462cf52bb0b14b42ffc947bc0dc26fb0dfa43057fb2706195a0ded0015"},
	}
	for _, c := range cases {
		sum := sha256.Sum256(Mask(canvasSamples, c.key, c.level))
		if got := hex.EncodeToString(sum[:]); got != c.digest {
			t.Errorf("sha256(Mask(%d, %v, %d)) = %s; want %s", canvasSamples, c.key, c.level, got, c.digest)
		}
	}
}

func TestFullCanvasSineDigest(t *testing.T) {
	const want = "e553c76b51955a567677252be5377c9199acb3b094b0f3fabc71be8825313313"
	sum := sha256.Sum256(Sine(canvasSamples, 0.335, 2))
	if got := hex.EncodeToString(sum[:]); got != want {
		t.Errorf("sha256(Sine(%d, 0.335, 2)) = %s; want %s", canvasSamples, got, want)
	}
}

func TestMaskWindowPastFirstDivergence(t *testing.T) {
	// Bytes 32..47 for key 0.67, level 2 lie past the point where a
	// math.Sin stream first differs.
	want := []uint8{113, 2, 143, 139, 207, 254, 119, 13, 137, 205, 194, 45, 85, 4, 108, 70}
	got := Mask(48, 0.67, 2)[32:]
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Mask(48, 0.67, 2)[%d] = %d; want %d", 32+i, got[i], want[i])
		}
	}
}
