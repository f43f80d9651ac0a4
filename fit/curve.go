package fit

import "math"

// Point is one (x, y) sample, eg (PET/P, AET/P).
type Point struct{ X, Y float64 }

// Curve is a parametric model family y = F(par, x).
type Curve struct {
	Nam string
	Np  int
	F   func(par []float64, x float64) float64
}

// Fu returns the one-parameter Budyko curve of Fu (1981):
//
//	E/P = 1 + PET/P - (1 + (PET/P)^w)^(1/w)
//
// par[0] = w, valid for w > 1.
func Fu() Curve {
	return Curve{
		Nam: "fu",
		Np:  1,
		F: func(par []float64, x float64) float64 {
			w := par[0]
			if w <= 1. || x < 0. {
				return math.NaN()
			}
			return 1. + x - math.Pow(1.+math.Pow(x, w), 1./w)
		},
	}
}

// TwoBranchExp returns a two-branch evaporative-fraction curve: supply
// limited (1:1) below the breakpoint x0, exponential approach to the
// demand limit above it. par = [x0, k], 0 <= x0 <= 1, k > 0. The branches
// meet at (x0, x0).
func TwoBranchExp() Curve {
	return Curve{
		Nam: "twobranch",
		Np:  2,
		F: func(par []float64, x float64) float64 {
			x0, k := par[0], par[1]
			if x0 < 0. || x0 > 1. || k <= 0. || x < 0. {
				return math.NaN()
			}
			if x <= x0 {
				return x
			}
			return 1. - (1.-x0)*math.Exp(-k*(x-x0))
		},
	}
}
