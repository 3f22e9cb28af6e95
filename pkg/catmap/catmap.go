// Package catmap shuffles pixel positions with a tiered generalisation of
// the Arnold cat map. Sample values are carried along unchanged; only their
// (row, col) positions move.
package catmap

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrNotBijective is returned when a tier's coordinate map sends two
// positions to the same place for the requested dimensions.
var ErrNotBijective = errors.New("coordinate map is not a bijection")

// Direction selects scrambling or unscrambling.
type Direction int

const (
	Forward Direction = iota
	Inverse
)

func (d Direction) String() string {
	if d == Inverse {
		return "inverse"
	}
	return "forward"
}

// Options tunes how rounds are executed. The zero value uses one worker
// per CPU and no progress callback.
type Options struct {
	Workers int
	// OnRound is called after each completed round with (done, total).
	OnRound func(done, total int)
}

// Plan is the per-call destination table of a tier on an H x W grid:
// the pixel at linear position p moves to dest[p] in every round.
type Plan struct {
	H, W int
	Tier Tier
	dest []int
}

// NewPlan tabulates the forward map of the tier selected by iterations and
// checks that it is a bijection.
func NewPlan(h, w, iterations int) (*Plan, error) {
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", pixel.ErrInvalidDimensions, h, w)
	}
	tier := TierFor(iterations)
	dest := make([]int, h*w)
	seen := make([]bool, h*w)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			nr, nc := tier.Forward.Apply(row, col, h, w)
			p := nr*w + nc
			if seen[p] {
				return nil, fmt.Errorf("%w: %s on %dx%d maps two pixels to (%d,%d)",
					ErrNotBijective, tier, h, w, nr, nc)
			}
			seen[p] = true
			dest[row*w+col] = p
		}
	}
	return &Plan{H: h, W: w, Tier: tier, dest: dest}, nil
}

// Invert returns the plan that undoes p.
func (p *Plan) Invert() *Plan {
	inv := make([]int, len(p.dest))
	for src, dst := range p.dest {
		inv[dst] = src
	}
	return &Plan{H: p.H, W: p.W, Tier: p.Tier, dest: inv}
}

// Dest returns where the pixel at (row, col) lands after one round.
func (p *Plan) Dest(row, col int) (int, int) {
	d := p.dest[row*p.W+col]
	return d / p.W, d % p.W
}

// Permute applies the tier selected by iterations to img, iterations times.
// Inverse undoes a Forward call made with the same iteration count. img is
// never modified.
func Permute(img *pixel.Array, iterations int, dir Direction, opts Options) (*pixel.Array, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if iterations < 0 {
		return nil, fmt.Errorf("negative iteration count %d", iterations)
	}
	if iterations == 0 {
		return img.Clone(), nil
	}

	plan, err := NewPlan(img.H, img.W, iterations)
	if err != nil {
		return nil, err
	}
	if dir == Inverse {
		plan = plan.Invert()
	}

	log.Debug().
		Int("height", img.H).
		Int("width", img.W).
		Int("iterations", iterations).
		Stringer("tier", plan.Tier).
		Stringer("direction", dir).
		Msg("Permuting pixel positions")

	cur := img.Clone()
	for round := 0; round < iterations; round++ {
		next, err := plan.round(cur, opts.Workers)
		if err != nil {
			return nil, err
		}
		cur = next
		if opts.OnRound != nil {
			opts.OnRound(round+1, iterations)
		}
	}
	return cur, nil
}

// round scatters every pixel of src into a fresh array. Rows are split into
// bands handled concurrently; the plan is a bijection, so bands never write
// the same destination.
func (p *Plan) round(src *pixel.Array, workers int) (*pixel.Array, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, p.H)
	dst := pixel.New(src.H, src.W, src.C)
	c := src.C

	var g errgroup.Group
	band := (p.H + workers - 1) / workers
	for start := 0; start < p.H; start += band {
		end := min(start+band, p.H)
		g.Go(func() error {
			for pos := start * p.W; pos < end*p.W; pos++ {
				from := pos * c
				to := p.dest[pos] * c
				copy(dst.Pix[to:to+c], src.Pix[from:from+c])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}
