package postpro

import (
	"fmt"
	"strings"

	"github.com/maseology/mmio"
	"github.com/stineb/fluxeval"
	"github.com/stineb/fluxeval/fit"
)

// WriteAnnualCSV writes one row per retained (site, year) with the reduced
// value and valid-day count of every requested column.
func WriteAnnualCSV(fp string, res []fluxeval.SiteResult, cols []string) error {
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	h := "site,year"
	for _, c := range cols {
		h += fmt.Sprintf(",%s,n_%s", c, c)
	}
	if err := csvw.WriteHead(h); err != nil {
		return fmt.Errorf("postpro.WriteAnnualCSV %s: %v", fp, err)
	}
	for _, r := range res {
		if r.Err != nil {
			continue
		}
		for _, a := range r.Ann {
			ln := make([]interface{}, 0, 2+2*len(cols))
			ln = append(ln, a.Site, a.Year)
			for _, c := range cols {
				ln = append(ln, a.V[c], a.N[c])
			}
			csvw.WriteLine(ln...)
		}
	}
	return nil
}

// WriteSkillCSV writes per-site daily skill metrics, one row per (site,
// column); failed sites get their error text instead.
func WriteSkillCSV(fp string, res []fluxeval.SiteResult, cols []string) error {
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	if err := csvw.WriteHead("site,column,kge,nse,rmse,bias,monwr2,n,err"); err != nil {
		return fmt.Errorf("postpro.WriteSkillCSV %s: %v", fp, err)
	}
	for _, r := range res {
		if r.Err != nil {
			csvw.WriteLine(r.Site, "", "", "", "", "", "", 0, strings.ReplaceAll(r.Err.Error(), ",", ";"))
			continue
		}
		for _, c := range cols {
			s, ok := r.Skill[c]
			if !ok {
				continue
			}
			csvw.WriteLine(r.Site, c, s.KGE, s.NSE, s.RMSE, s.Bias, s.MonWR2, s.N, "")
		}
	}
	return nil
}

// WriteFitCSV writes fitted-curve parameters and statistics.
func WriteFitCSV(fp string, fits map[string]fit.Result) {
	lns := make([]string, 0, len(fits)+1)
	lns = append(lns, "curve,par,sse,r2,neval,converged")
	for nam, f := range fits {
		ps := make([]string, len(f.Par))
		for i, p := range f.Par {
			ps[i] = fmt.Sprintf("%f", p)
		}
		lns = append(lns, fmt.Sprintf("%s,%s,%f,%f,%d,%t", nam, strings.Join(ps, " "), f.SSE, f.R2, f.Neval, f.Converged))
	}
	mmio.WriteLines(fp, lns)
}
