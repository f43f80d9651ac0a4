// Package fit estimates parametric curve parameters from (x, y) samples by
// nonlinear least squares, using a Latin hypercube screen and the
// shuffled-complex-evolution global search over the unit hypercube.
package fit

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// ErrDidNotConverge reports a fit that exhausted its evaluation budget (or
// produced a non-finite optimum) before settling.
var ErrDidNotConverge = errors.New("fit did not converge")

// ErrInsufficientData reports too few finite samples to constrain the curve.
var ErrInsufficientData = errors.New("insufficient data")

// Options tune the solver. Zero values take defaults.
type Options struct {
	Bounds    [][2]float64 // per-parameter [low, high]; nil derives from the guess
	MaxEval   int          // model-evaluation budget (default 100000)
	Nstart    int          // LHC screening samples (default 200)
	Complexes int          // SCE complexes (default GOMAXPROCS)
	Seed      int64        // rng seed (default 1)
}

// Result is an immutable fit outcome.
type Result struct {
	Par       []float64
	SSE       float64
	R2        float64 // squared pairwise-complete Pearson correlation
	Neval     int
	Converged bool
}

// Fit estimates c's parameters from pts by minimizing the sum of squared
// residuals. The initial guess is required and is always a candidate: the
// returned parameters are never worse than it. When the evaluation budget
// runs out before the search completes, ErrDidNotConverge is returned
// instead of a partial result.
func Fit(pts []Point, c Curve, guess []float64, o Options) (Result, error) {
	if len(guess) != c.Np {
		return Result{}, fmt.Errorf("fit.Fit %s: guess has %d parameters, need %d", c.Nam, len(guess), c.Np)
	}
	var xs, ys []float64
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	if len(xs) < c.Np+1 {
		return Result{}, fmt.Errorf("fit.Fit %s: %w: %d finite samples for %d parameters", c.Nam, ErrInsufficientData, len(xs), c.Np)
	}

	maxeval, nstart, ncmplx, seed := o.MaxEval, o.Nstart, o.Complexes, o.Seed
	if maxeval <= 0 {
		maxeval = 100000
	}
	if nstart <= 0 {
		nstart = 200
	}
	if ncmplx <= 0 {
		ncmplx = runtime.GOMAXPROCS(0)
	}
	if seed == 0 {
		seed = 1
	}
	bnd := o.Bounds
	if bnd == nil {
		bnd = make([][2]float64, c.Np)
		for i, g := range guess {
			s := math.Max(math.Abs(g), 1.)
			bnd[i] = [2]float64{g - 2.*s, g + 2.*s}
		}
	} else if len(bnd) != c.Np {
		return Result{}, fmt.Errorf("fit.Fit %s: %d bounds for %d parameters", c.Nam, len(bnd), c.Np)
	}

	sse := func(par []float64) float64 {
		s := 0.
		for i, x := range xs {
			r := c.F(par, x) - ys[i]
			s += r * r
		}
		return s
	}

	// objective on the budget: once spent, everything looks infinitely bad
	// and the search starves to a stop.
	var mu sync.Mutex
	neval, spent := 0, false
	gen := func(par []float64) float64 {
		mu.Lock()
		if neval >= maxeval {
			spent = true
			mu.Unlock()
			return math.Inf(1)
		}
		neval++
		mu.Unlock()
		if s := sse(par); !math.IsNaN(s) && !math.IsInf(s, 0) {
			return s
		}
		return math.Inf(1)
	}
	xform := func(u []float64) []float64 {
		par := make([]float64, c.Np)
		for i, ui := range u {
			par[i] = mmaths.LinearTransform(bnd[i][0], bnd[i][1], ui)
		}
		return par
	}

	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)

	best, bsse := append([]float64{}, guess...), gen(guess)

	// LHC screen
	sp := smpln.NewLHC(rng, nstart, c.Np, false)
	for k := 0; k < nstart; k++ {
		ut := make([]float64, c.Np)
		for j := 0; j < c.Np; j++ {
			ut[j] = sp.U[j][k]
		}
		par := xform(ut)
		if s := gen(par); s < bsse {
			best, bsse = par, s
		}
	}

	// global search
	uFinal, _ := glbopt.SCE(ncmplx, c.Np, rng, func(u []float64) float64 { return gen(xform(u)) }, true)
	if par := xform(uFinal); sse(par) < bsse {
		best, bsse = par, sse(par)
	}

	res := Result{Par: best, SSE: bsse, Neval: neval}
	if spent || math.IsNaN(bsse) || math.IsInf(bsse, 0) {
		return res, fmt.Errorf("fit.Fit %s: %w after %d evaluations", c.Nam, ErrDidNotConverge, neval)
	}
	res.Converged = true
	res.R2 = rsq(xs, ys, c, best)
	return res, nil
}

// rsq is the squared pairwise-complete Pearson correlation between observed
// and predicted; exactly 1 for a zero-residual fit.
func rsq(xs, ys []float64, c Curve, par []float64) float64 {
	var o, s []float64
	perfect := true
	for i, x := range xs {
		p := c.F(par, x)
		if math.IsNaN(p) || math.IsNaN(ys[i]) {
			continue
		}
		if p != ys[i] {
			perfect = false
		}
		o = append(o, ys[i])
		s = append(s, p)
	}
	if perfect && len(o) > 0 {
		return 1.
	}
	n := float64(len(o))
	if n < 2. {
		return math.NaN()
	}
	mo, ms := 0., 0.
	for i := range o {
		mo += o[i]
		ms += s[i]
	}
	mo /= n
	ms /= n
	var cov, vo, vs float64
	for i := range o {
		cov += (o[i] - mo) * (s[i] - ms)
		vo += (o[i] - mo) * (o[i] - mo)
		vs += (s[i] - ms) * (s[i] - ms)
	}
	if vo == 0. || vs == 0. {
		return 0.
	}
	return cov * cov / vo / vs
}
