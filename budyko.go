package fluxeval

import (
	"math"

	"github.com/stineb/fluxeval/fit"
)

// DefaultMinPrecip is a small annual-precipitation floor (mm); ratios
// blow up on near-zero totals.
const DefaultMinPrecip = 1.

// BudykoPoints derives one (PET/P, AET/P) point per annual summary using
// the named (annual-total) columns. Years with NaN precipitation, or with
// totals below minPrecip, are skipped; pass 0 to keep every finite year.
func BudykoPoints(ann []AnnualSummary, precipCol, aetCol, petCol string, minPrecip float64) []fit.Point {
	var pts []fit.Point
	for _, a := range ann {
		p, aet, pet := a.V[precipCol], a.V[aetCol], a.V[petCol]
		if math.IsNaN(p) || math.IsNaN(aet) || math.IsNaN(pet) || p < minPrecip || p == 0. {
			continue
		}
		pts = append(pts, fit.Point{X: pet / p, Y: aet / p})
	}
	return pts
}

// BudykoPointsBySite collapses annual summaries to one multi-year mean
// point per site, the form the Budyko framework is usually fit in. The
// minPrecip floor applies to the site's mean annual total.
func BudykoPointsBySite(ann []AnnualSummary, precipCol, aetCol, petCol string, minPrecip float64) map[string]fit.Point {
	sums := make(map[string][4]float64) // p, aet, pet, n
	for _, a := range ann {
		p, aet, pet := a.V[precipCol], a.V[aetCol], a.V[petCol]
		if math.IsNaN(p) || math.IsNaN(aet) || math.IsNaN(pet) {
			continue
		}
		s := sums[a.Site]
		sums[a.Site] = [4]float64{s[0] + p, s[1] + aet, s[2] + pet, s[3] + 1.}
	}
	pts := make(map[string]fit.Point, len(sums))
	for site, s := range sums {
		if s[3] == 0. || s[0] == 0. || s[0]/s[3] < minPrecip {
			continue
		}
		pts[site] = fit.Point{X: s[2] / s[0], Y: s[1] / s[0]}
	}
	return pts
}
