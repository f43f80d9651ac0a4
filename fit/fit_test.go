package fit

import (
	"errors"
	"math"
	"testing"
)

func synth(c Curve, par []float64, xs []float64) []Point {
	pts := make([]Point, len(xs))
	for i, x := range xs {
		pts[i] = Point{X: x, Y: c.F(par, x)}
	}
	return pts
}

func seq(x0, x1 float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = x0 + (x1-x0)*float64(i)/float64(n-1)
	}
	return xs
}

func TestFitFuRecovery(t *testing.T) {
	const w = 2.6
	pts := synth(Fu(), []float64{w}, seq(.2, 3., 24))

	res, err := Fit(pts, Fu(), []float64{1.8}, Options{Bounds: [][2]float64{{1.01, 8.}}})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !res.Converged {
		t.Fatal("expected convergence")
	}
	if math.Abs(res.Par[0]-w) > .1 {
		t.Errorf("recovered w = %f, want %f", res.Par[0], w)
	}
	if res.R2 < .999 {
		t.Errorf("R² = %f, want ≈1", res.R2)
	}
}

func TestFitTwoBranchRecovery(t *testing.T) {
	par := []float64{.4, 2.}
	pts := synth(TwoBranchExp(), par, seq(.05, 3., 30))

	res, err := Fit(pts, TwoBranchExp(), []float64{.5, 1.}, Options{Bounds: [][2]float64{{0., 1.}, {.1, 10.}}})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if math.Abs(res.Par[0]-par[0]) > .2 || math.Abs(res.Par[1]-par[1]) > .5 {
		t.Errorf("recovered (%f, %f), want (%f, %f)", res.Par[0], res.Par[1], par[0], par[1])
	}
	if res.R2 < .99 {
		t.Errorf("R² = %f, want ≈1", res.R2)
	}
}

func TestFitPerfectR2(t *testing.T) {
	// the guess reproduces the data exactly; R² must be exactly 1
	pts := synth(Fu(), []float64{2.}, seq(.2, 3., 12))
	res, err := Fit(pts, Fu(), []float64{2.}, Options{Bounds: [][2]float64{{1.01, 8.}}})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if res.SSE != 0. {
		t.Errorf("SSE = %g, want 0", res.SSE)
	}
	if res.R2 != 1. {
		t.Errorf("R² = %v, want exactly 1", res.R2)
	}
}

func TestFitOneToOneLine(t *testing.T) {
	// supply-limited samples: AET/P = PET/P; the Fu curve approaches the
	// 1:1 line as w grows
	xs := seq(.1, .9, 9)
	pts := make([]Point, len(xs))
	for i, x := range xs {
		pts[i] = Point{X: x, Y: x}
	}
	res, err := Fit(pts, Fu(), []float64{10.}, Options{Bounds: [][2]float64{{1.01, 80.}}})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if res.R2 < .999 {
		t.Errorf("R² = %f, want ≈1", res.R2)
	}
	for _, p := range pts {
		if d := math.Abs(Fu().F(res.Par, p.X) - p.Y); d > .05 {
			t.Errorf("predicted off the 1:1 line by %f at x=%f", d, p.X)
		}
	}
}

func TestFitBudgetExhausted(t *testing.T) {
	pts := synth(Fu(), []float64{2.6}, seq(.2, 3., 24))
	res, err := Fit(pts, Fu(), []float64{1.8}, Options{Bounds: [][2]float64{{1.01, 8.}}, MaxEval: 2})
	if !errors.Is(err, ErrDidNotConverge) {
		t.Fatalf("expected ErrDidNotConverge, got %v", err)
	}
	if res.Converged {
		t.Error("result must not claim convergence")
	}
}

func TestFitInsufficientData(t *testing.T) {
	pts := []Point{{X: 1., Y: .5}, {X: math.NaN(), Y: .2}}
	if _, err := Fit(pts, Fu(), []float64{2.}, Options{}); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestFitGuessLengthChecked(t *testing.T) {
	pts := synth(Fu(), []float64{2.}, seq(.2, 3., 5))
	if _, err := Fit(pts, Fu(), []float64{2., 3.}, Options{}); err == nil {
		t.Fatal("expected an error for a mis-sized guess")
	}
}
