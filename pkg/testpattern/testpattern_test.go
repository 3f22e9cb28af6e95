package testpattern

import (
	"testing"

	"github.com/andresmejia3/endcrypt/pkg/pixel"
)

func rgb(a *pixel.Array, row, col int) [3]uint8 {
	return [3]uint8{a.At(row, col, 0), a.At(row, col, 1), a.At(row, col, 2)}
}

func TestGenerateLandmarks(t *testing.T) {
	a := Generate()
	if a.H != Size || a.W != Size || a.C != pixel.Channels {
		t.Fatalf("shape = %dx%dx%d; want 256x256x3", a.H, a.W, a.C)
	}

	cases := []struct {
		name     string
		row, col int
		want     [3]uint8
	}{
		{"grid origin", 0, 0, [3]uint8{0, 0, 0}},
		{"grid line", 64, 5, [3]uint8{0, 0, 0}},
		{"background", 20, 100, [3]uint8{255, 255, 255}},
		{"red square", 30, 30, [3]uint8{255, 0, 0}},
		{"green square", 30, 226, [3]uint8{0, 255, 0}},
		{"blue square", 226, 30, [3]uint8{0, 0, 255}},
		{"yellow square", 226, 226, [3]uint8{255, 255, 0}},
		{"gradient start", 100, 60, [3]uint8{0, 0, 255}},
		{"gradient end", 155, 60, [3]uint8{55, 0, 200}},
		{"magenta ring", 128, 108, [3]uint8{255, 0, 255}},
		{"cyan core", 128, 128, [3]uint8{0, 255, 255}},
	}
	for _, c := range cases {
		if got := rgb(a, c.row, c.col); got != c.want {
			t.Errorf("%s at (%d,%d) = %v; want %v", c.name, c.row, c.col, got, c.want)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	if !Generate().Equal(Generate()) {
		t.Error("two generated patterns differ")
	}
}
