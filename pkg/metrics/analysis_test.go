package metrics

import (
	"math"
	"testing"

	"github.com/andresmejia3/endcrypt/pkg/pixel"
)

func TestCompareMetrics(t *testing.T) {
	// Case 1: identical arrays
	a := pixel.New(10, 10, 3)
	result, err := Compare(a, a.Clone())
	if err != nil {
		t.Fatalf("Compare failed for identical arrays: %v", err)
	}
	if result.MSE != 0 {
		t.Errorf("Expected MSE 0 for identical arrays, got %f", result.MSE)
	}
	if !math.IsInf(result.PSNR, 1) {
		t.Errorf("Expected PSNR +Inf for identical arrays, got %f", result.PSNR)
	}
	if result.Changed != 0 {
		t.Errorf("Expected no changed pixels, got %d", result.Changed)
	}

	// Case 2: one channel of one pixel changed by 10
	b := a.Clone()
	b.Set(0, 0, 0, 10)
	result, err = Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed for modified array: %v", err)
	}

	expectedMSE := 100.0 / 300.0
	if math.Abs(result.MSE-expectedMSE) > 0.0001 {
		t.Errorf("MSE calculation incorrect. Got %f, want %f", result.MSE, expectedMSE)
	}
	expectedPSNR := 20 * math.Log10(255/math.Sqrt(expectedMSE))
	if math.Abs(result.PSNR-expectedPSNR) > 0.0001 {
		t.Errorf("PSNR calculation incorrect. Got %f, want %f", result.PSNR, expectedPSNR)
	}
	if result.Changed != 1 {
		t.Errorf("Expected 1 changed pixel, got %d", result.Changed)
	}

	if c := result.Heatmap.NRGBAAt(0, 0); c.R != 255 || c.G != 0 {
		t.Errorf("Heatmap at changed pixel = %+v; want saturated red", c)
	}
	if c := result.Heatmap.NRGBAAt(1, 0); c.R != 0 || c.G != 0 || c.A != 255 {
		t.Errorf("Heatmap at unchanged pixel = %+v; want opaque black", c)
	}
}

func TestCompareShapeMismatch(t *testing.T) {
	if _, err := Compare(pixel.New(2, 2, 3), pixel.New(2, 2, 1)); err == nil {
		t.Error("Expected an error comparing differently shaped arrays")
	}
}
