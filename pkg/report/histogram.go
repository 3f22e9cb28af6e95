package report

import (
	"fmt"
	"image/color"

	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Series is one array to include in a histogram plot.
type Series struct {
	Name  string
	Array *pixel.Array
}

var palette = []color.NRGBA{
	{R: 54, G: 162, B: 235, A: 140},
	{R: 255, G: 99, B: 132, A: 140},
	{R: 255, G: 206, B: 86, A: 140},
}

// Histogram plots the 256-bin sample value histogram of each series,
// overlaid on one axis.
func Histogram(title string, series ...Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Sample value"
	p.Y.Label.Text = "Count"
	p.X.Min, p.X.Max = 0, 256
	p.Legend.Top = true

	for i, s := range series {
		if err := s.Array.Validate(); err != nil {
			return nil, fmt.Errorf("histogram %q: %w", s.Name, err)
		}
		h := &plotter.Histogram{
			Bins:      valueBins(s.Array.Pix),
			Width:     1,
			FillColor: palette[i%len(palette)],
			LineStyle: plotter.DefaultLineStyle,
		}
		h.LineStyle.Width = 0
		p.Add(h)
		p.Legend.Add(s.Name, h)
	}
	return p, nil
}

// valueBins uses one unit-wide bin per byte value, so constant arrays plot
// as a single spike instead of an auto-ranged degenerate axis.
func valueBins(samples []uint8) []plotter.HistogramBin {
	var counts [256]float64
	for _, v := range samples {
		counts[v]++
	}
	bins := make([]plotter.HistogramBin, len(counts))
	for v, n := range counts {
		bins[v] = plotter.HistogramBin{Min: float64(v), Max: float64(v + 1), Weight: n}
	}
	return bins
}

// SaveHistogram writes Histogram to path; the extension picks the format
// (png, svg, pdf, ...).
func SaveHistogram(path, title string, series ...Series) error {
	p, err := Histogram(title, series...)
	if err != nil {
		return err
	}
	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}
