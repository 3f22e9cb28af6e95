package catmap

// TierCheck is the outcome of checking one tier on a given grid.
type TierCheck struct {
	Tier Tier
	// Bijective is true when the forward map is a permutation of the grid.
	Bijective bool
	// InverseMatches is true when the tabulated inverse coefficients undo
	// the forward map at every position.
	InverseMatches bool
}

// Verify checks every tier on an h x w grid. Permute never relies on the
// tabulated inverse, but a mismatch means the coefficients are wrong for
// that shape.
func Verify(h, w int) []TierCheck {
	checks := make([]TierCheck, 0, len(tiers))
	for _, t := range tiers {
		check := TierCheck{Tier: t}
		if h > 0 && w > 0 {
			_, err := NewPlan(h, w, t.SampleIterations())
			check.Bijective = err == nil
			check.InverseMatches = inverseMatches(t, h, w)
		}
		checks = append(checks, check)
	}
	return checks
}

// SampleIterations returns an iteration count that selects t.
func (t Tier) SampleIterations() int {
	if t.MaxIterations == 0 {
		return tiers[len(tiers)-2].MaxIterations + 1
	}
	return t.MaxIterations
}

func inverseMatches(t Tier, h, w int) bool {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			nr, nc := t.Forward.Apply(row, col, h, w)
			br, bc := t.Inverse.Apply(nr, nc, h, w)
			if br != row || bc != col {
				return false
			}
		}
	}
	return true
}
