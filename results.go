package fluxeval

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/maseology/mmio"
	"github.com/maseology/objfunc"
)

// Skill holds daily goodness-of-fit metrics for one obs/sim column pair,
// plus the Krause weighted R² on monthly sums.
type Skill struct {
	KGE, NSE, RMSE, Bias, MonWR2 float64
	N                            int // pairwise-complete days
}

// SiteResult is the outcome of evaluating one site; Err is set (and the
// rest left partial) when the site failed, without affecting other sites.
type SiteResult struct {
	Site  string
	Ann   []AnnualSummary
	Skill map[string]Skill // [column]
	Err   error
}

func (r *SiteResult) print() {
	if r.Err != nil {
		fmt.Printf(" %s: %v\n", r.Site, r.Err)
		return
	}
	for _, c := range sortedKeys(r.Skill) {
		s := r.Skill[c]
		fmt.Printf(" %s %-6s KGE: %.3f  NSE: %.3f  RMSE: %.3f  mon-wR²: %.3f  Bias: %.3f  (n=%d)\n",
			r.Site, c, s.KGE, s.NSE, s.RMSE, s.MonWR2, s.Bias, s.N)
	}
}

// skill computes daily metrics over pairwise-complete values.
func skill(dt []time.Time, o, s []float64) Skill {
	oo, ss := make([]float64, 0, len(o)), make([]float64, 0, len(s))
	dd := make([]time.Time, 0, len(dt))
	for i := range o {
		if math.IsNaN(o[i]) || math.IsNaN(s[i]) {
			continue
		}
		oo = append(oo, o[i])
		ss = append(ss, s[i])
		dd = append(dd, dt[i])
	}
	if len(oo) == 0 {
		return Skill{KGE: math.NaN(), NSE: math.NaN(), RMSE: math.NaN(), Bias: math.NaN(), MonWR2: math.NaN()}
	}
	return Skill{
		KGE:    objfunc.KGE(oo, ss),
		NSE:    objfunc.NSE(oo, ss),
		RMSE:   objfunc.RMSE(oo, ss),
		Bias:   objfunc.Bias(oo, ss),
		MonWR2: objfunc.Krause(computeMonthly(dd, oo, ss)),
		N:      len(oo),
	}
}

// computeMonthly joins two daily series on monthly sums.
func computeMonthly(dt []time.Time, o, s []float64) ([]float64, []float64) {
	tso, tss := make(mmio.TimeSeries, len(dt)), make(mmio.TimeSeries, len(dt))
	for i, d := range dt {
		if math.IsNaN(o[i]) || math.IsNaN(s[i]) {
			continue
		}
		tso[d] = o[i]
		tss[d] = s[i]
	}
	if len(tso) == 0 {
		return nil, nil
	}
	os, _ := mmio.MonthlySumCount(tso)
	ss, _ := mmio.MonthlySumCount(tss)
	dn, dx := mmio.MinMaxTimeseries(tso)
	osi, ssi := []float64{}, []float64{}
	for y := mmio.Yr(dn.Year()); y <= mmio.Yr(dx.Year()); y++ {
		for m := mmio.Mo(1); m <= 12; m++ {
			if v, ok := os[y][m]; ok {
				if math.IsNaN(v) || math.IsNaN(ss[y][m]) {
					continue
				}
				osi = append(osi, v)
				ssi = append(ssi, ss[y][m])
			}
		}
	}
	return osi, ssi
}

func sortedKeys(m map[string]Skill) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
