package catmap

import "fmt"

// Matrix holds the integer coefficients of one coordinate map:
// newRow = M[0][0]*row + M[0][1]*col (mod H),
// newCol = M[1][0]*row + M[1][1]*col (mod W).
type Matrix [2][2]int

// Apply maps (row, col) on an h x w torus.
func (m Matrix) Apply(row, col, h, w int) (int, int) {
	return mod(m[0][0]*row+m[0][1]*col, h), mod(m[1][0]*row+m[1][1]*col, w)
}

// Det is the determinant; ±1 makes the map invertible on a square torus.
func (m Matrix) Det() int {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Tier is one coefficient set, chosen from the total iteration count of a
// call and reused for every round of that call.
type Tier struct {
	Level         int
	MaxIterations int // inclusive upper bound; 0 for the open-ended last tier
	Forward       Matrix
	Inverse       Matrix
}

func (t Tier) String() string {
	if t.MaxIterations == 0 {
		return fmt.Sprintf("tier %d (iterations > %d)", t.Level, tiers[len(tiers)-2].MaxIterations)
	}
	return fmt.Sprintf("tier %d (iterations <= %d)", t.Level, t.MaxIterations)
}

// The last two tiers have determinant -1, so their inverses carry the
// opposite sign of the plain adjugate.
var tiers = [...]Tier{
	{Level: 1, MaxIterations: 2, Forward: Matrix{{2, 1}, {1, 1}}, Inverse: Matrix{{1, -1}, {-1, 2}}},
	{Level: 2, MaxIterations: 4, Forward: Matrix{{2, 3}, {1, 2}}, Inverse: Matrix{{2, -3}, {-1, 2}}},
	{Level: 3, MaxIterations: 6, Forward: Matrix{{3, 2}, {2, 1}}, Inverse: Matrix{{-1, 2}, {2, -3}}},
	{Level: 4, MaxIterations: 0, Forward: Matrix{{3, 5}, {2, 3}}, Inverse: Matrix{{-3, 5}, {2, -3}}},
}

// Tiers returns all coefficient sets in selection order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers[:])
	return out
}

// TierFor selects the coefficient set for a call with the given total
// iteration count, using thresholds 2, 4 and 6.
func TierFor(iterations int) Tier {
	for _, t := range tiers {
		if t.MaxIterations != 0 && iterations <= t.MaxIterations {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
