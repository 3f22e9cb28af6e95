package catmap

import (
	"slices"
	"testing"

	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patterned(h, w int) *pixel.Array {
	a := pixel.New(h, w, pixel.Channels)
	for i := range a.Pix {
		a.Pix[i] = uint8((i*7 + i/5) % 251)
	}
	return a
}

func TestTierFor(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 6: 3, 7: 4, 8: 4, 100: 4}
	for iterations, level := range cases {
		assert.Equal(t, level, TierFor(iterations).Level, "iterations=%d", iterations)
	}
}

func TestTierMatricesAreUnimodularInverses(t *testing.T) {
	for _, tier := range Tiers() {
		det := tier.Forward.Det()
		assert.Contains(t, []int{1, -1}, det, "%s determinant", tier)

		f, i := tier.Forward, tier.Inverse
		product := Matrix{
			{f[0][0]*i[0][0] + f[0][1]*i[1][0], f[0][0]*i[0][1] + f[0][1]*i[1][1]},
			{f[1][0]*i[0][0] + f[1][1]*i[1][0], f[1][0]*i[0][1] + f[1][1]*i[1][1]},
		}
		assert.Equal(t, Matrix{{1, 0}, {0, 1}}, product, "%s forward*inverse", tier)
	}
}

func TestVerifySquareCanvas(t *testing.T) {
	for _, size := range []int{1, 7, 64, 256} {
		for _, check := range Verify(size, size) {
			assert.True(t, check.Bijective, "%s on %dx%d should be bijective", check.Tier, size, size)
			assert.True(t, check.InverseMatches, "%s on %dx%d inverse should match", check.Tier, size, size)
		}
	}
}

func TestNewPlanRejectsCollisions(t *testing.T) {
	_, err := NewPlan(4, 6, 2)
	require.ErrorIs(t, err, ErrNotBijective)

	_, err = Permute(patterned(4, 6), 2, Forward, Options{})
	require.ErrorIs(t, err, ErrNotBijective)
}

func TestNewPlanRejectsEmptyGrid(t *testing.T) {
	_, err := NewPlan(0, 6, 2)
	require.ErrorIs(t, err, pixel.ErrInvalidDimensions)

	_, err = Permute(pixel.New(3, 0, 3), 2, Forward, Options{})
	require.ErrorIs(t, err, pixel.ErrInvalidDimensions)
}

func TestPlanDestFollowsTierOne(t *testing.T) {
	plan, err := NewPlan(3, 3, 1)
	require.NoError(t, err)

	// (2x+y) mod 3, (x+y) mod 3
	row, col := plan.Dest(1, 0)
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)

	row, col = plan.Invert().Dest(2, 1)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)
}

func TestPermuteRoundTrip(t *testing.T) {
	img := patterned(17, 17)
	for iterations := 0; iterations <= 9; iterations++ {
		scrambled, err := Permute(img, iterations, Forward, Options{})
		require.NoError(t, err)

		restored, err := Permute(scrambled, iterations, Inverse, Options{})
		require.NoError(t, err)
		assert.True(t, restored.Equal(img), "iterations=%d did not round trip", iterations)
	}
}

func TestPermuteRoundTripWhereTabulatedInverseFails(t *testing.T) {
	// On a 1x5 strip tier 1 is a bijection but its tabulated inverse is not.
	checks := Verify(1, 5)
	require.True(t, checks[0].Bijective)
	require.False(t, checks[0].InverseMatches)

	img := patterned(1, 5)
	scrambled, err := Permute(img, 2, Forward, Options{})
	require.NoError(t, err)
	restored, err := Permute(scrambled, 2, Inverse, Options{})
	require.NoError(t, err)
	assert.True(t, restored.Equal(img))
}

func TestPermutePreservesValueMultiset(t *testing.T) {
	img := patterned(32, 32)
	for _, iterations := range []int{1, 2, 4, 6, 8} {
		scrambled, err := Permute(img, iterations, Forward, Options{})
		require.NoError(t, err)

		want := slices.Clone(img.Pix)
		got := slices.Clone(scrambled.Pix)
		slices.Sort(want)
		slices.Sort(got)
		assert.Equal(t, want, got, "iterations=%d", iterations)
	}
}

func TestPermuteMovesWholePixels(t *testing.T) {
	img := patterned(9, 9)
	plan, err := NewPlan(9, 9, 1)
	require.NoError(t, err)

	out, err := Permute(img, 1, Forward, Options{})
	require.NoError(t, err)
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			nr, nc := plan.Dest(row, col)
			for ch := 0; ch < pixel.Channels; ch++ {
				require.Equal(t, img.At(row, col, ch), out.At(nr, nc, ch))
			}
		}
	}
}

func TestPermuteIsIndependentOfWorkerCount(t *testing.T) {
	img := patterned(64, 64)
	serial, err := Permute(img, 8, Forward, Options{Workers: 1})
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 7, 64, 500} {
		parallel, err := Permute(img, 8, Forward, Options{Workers: workers})
		require.NoError(t, err)
		assert.True(t, parallel.Equal(serial), "workers=%d", workers)
	}
}

func TestPermuteDoesNotMutateInput(t *testing.T) {
	img := patterned(16, 16)
	before := img.Clone()

	out, err := Permute(img, 5, Forward, Options{})
	require.NoError(t, err)
	assert.True(t, img.Equal(before))
	assert.False(t, out.Equal(img))

	same, err := Permute(img, 0, Forward, Options{})
	require.NoError(t, err)
	assert.True(t, same.Equal(img))
	assert.NotSame(t, img, same)
}

func TestPermuteReportsRounds(t *testing.T) {
	var calls []int
	_, err := Permute(patterned(8, 8), 4, Forward, Options{OnRound: func(done, total int) {
		assert.Equal(t, 4, total)
		calls = append(calls, done)
	}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, calls)
}

func TestPermuteRejectsNegativeIterations(t *testing.T) {
	_, err := Permute(patterned(4, 4), -1, Forward, Options{})
	assert.Error(t, err)
}
