// Package report renders cipher metrics as charts: an HTML dashboard for
// browsers and static histogram images for files.
package report

import (
	"fmt"
	"io"

	"github.com/andresmejia3/endcrypt/pkg/metrics"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var stages = []string{"Original Image", "Encrypted Image", "Decrypted Image"}

// missing is how echarts expects a gap in a bar series.
const missing = "-"

// Dashboard builds a page with an entropy/PSNR bar chart and a pie chart of
// the encrypted image's value distribution.
func Dashboard(rep *metrics.Report, subtitle string) *components.Page {
	page := components.NewPage()
	page.AddCharts(metricsBar(rep, subtitle), distributionPie(rep.PixelDistribution))
	return page
}

// WriteDashboard renders Dashboard as a standalone HTML document.
func WriteDashboard(w io.Writer, rep *metrics.Report, subtitle string) error {
	if err := Dashboard(rep, subtitle).Render(w); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

func metricsBar(rep *metrics.Report, subtitle string) *charts.Bar {
	entropy := []opts.BarData{
		{Value: rep.OriginalEntropy},
		{Value: rep.EncryptedEntropy},
		{Value: rep.DecryptedEntropy},
	}
	psnr := []opts.BarData{
		{Value: missing},
		{Value: psnrValue(rep.EncryptedPSNR)},
		{Value: psnrValue(rep.DecryptedPSNR)},
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Entropy and PSNR", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	bar.SetXAxis(stages).
		AddSeries("Entropy (bits/pixel)", entropy).
		AddSeries("PSNR (dB)", psnr,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

func distributionPie(d metrics.Distribution) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Encrypted pixel distribution (%)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("distribution", []opts.PieData{
		{Name: "Low Values (0-85)", Value: d.Low},
		{Name: "Mid Values (86-170)", Value: d.Mid},
		{Name: "High Values (171-255)", Value: d.High},
	})
	return pie
}

// psnrValue maps the lossless (null) PSNR to a gap instead of a bar.
func psnrValue(v *float64) any {
	if v == nil {
		return missing
	}
	return *v
}
