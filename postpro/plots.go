package postpro

import (
	"math"
	"sort"

	mmplt "github.com/maseology/mmPlot"
	"github.com/stineb/fluxeval"
	"github.com/stineb/fluxeval/fit"
)

// PlotObsSim draws a joined table's observed and simulated daily series to
// png, hydrograph style.
func PlotObsSim(fp string, j *fluxeval.Table, obsCol, simCol string) {
	mmplt.ObsSim(fp, j.Col(obsCol), j.Col(simCol))
}

// PlotScatter draws the observed-vs-simulated 1:1 scatter.
func PlotScatter(fp string, obs, sim []float64) {
	mmplt.Scatter11(fp, obs, sim)
}

// PlotTemporal draws the named columns of a table against its dates.
func PlotTemporal(fp string, t *fluxeval.Table, cols ...string) {
	m := make(map[string][]float64, len(cols))
	for _, c := range cols {
		if v := t.Col(c); v != nil {
			m[c] = v
		}
	}
	mmplt.Temporal(fp, t.T, m, 48.)
}

// PlotBudyko draws the fitted curve over the aridity range of the sample
// points, with the points' evaporative fractions resampled onto the same
// axis by nearest aridity. Two files: the curve line and the predicted-vs-
// observed scatter.
func PlotBudyko(linefp, scatterfp string, pts []fit.Point, c fit.Curve, par []float64) {
	if len(pts) == 0 {
		return
	}
	xn, xx := math.Inf(1), math.Inf(-1)
	obs, prd := make([]float64, 0, len(pts)), make([]float64, 0, len(pts))
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		xn = math.Min(xn, p.X)
		xx = math.Max(xx, p.X)
		obs = append(obs, p.Y)
		prd = append(prd, c.F(par, p.X))
	}
	mmplt.Scatter11(scatterfp, obs, prd)

	const n = 256
	xs, ys := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = xn + (xx-xn)*float64(i)/float64(n-1)
		ys[i] = c.F(par, xs[i])
	}
	mmplt.Line(linefp, xs, map[string][]float64{c.Nam: ys, "points": nearest(xs, pts)}, 36., 8.)
}

// nearest maps each grid aridity to the closest sample's evaporative
// fraction so the scatter can share the curve's x axis.
func nearest(xs []float64, pts []fit.Point) []float64 {
	sp := append([]fit.Point{}, pts...)
	sort.Slice(sp, func(i, j int) bool { return sp[i].X < sp[j].X })
	out := make([]float64, len(xs))
	for i, x := range xs {
		k := sort.Search(len(sp), func(k int) bool { return sp[k].X >= x })
		switch {
		case k == 0:
			out[i] = nanIfFar(x, sp[0])
		case k == len(sp):
			out[i] = nanIfFar(x, sp[len(sp)-1])
		case x-sp[k-1].X < sp[k].X-x:
			out[i] = nanIfFar(x, sp[k-1])
		default:
			out[i] = nanIfFar(x, sp[k])
		}
	}
	return out
}

func nanIfFar(x float64, p fit.Point) float64 {
	if math.Abs(x-p.X) > .02 {
		return math.NaN()
	}
	return p.Y
}
