package forcing

import (
	"fmt"
	"math"

	"github.com/maseology/goHydro/pet"
	"github.com/maseology/goHydro/solirrad"
	"github.com/stineb/fluxeval"
)

const (
	lvap = 2.45e6 // latent heat of vaporization [J/kg]

	// Prescott coefficients, extraterrestrial to global radiation
	// (Novák, 2012, pg.232)
	prescottA = .27
	prescottB = .52
)

// AETFromLE converts latent heat flux [W/m²] to evaporation [mm/d].
func AETFromLE(le float64) float64 {
	return le * 86400. / lvap
}

// SupplementPET fills the pet column wherever it is missing, from air
// temperature and computed daily solar irradiance (Makkink). Cloudiness is
// crudely taken from rain occurrence as in daily snow/yield prep. The
// column is created if absent; tair (and precip, when present) drive it.
func SupplementPET(t *fluxeval.Table, latDeg float64) error {
	tair := t.Col(Ctair)
	if tair == nil {
		return fmt.Errorf("forcing.SupplementPET %s: %w: no %q column", t.Site, fluxeval.ErrInsufficientData, Ctair)
	}
	if t.Col(Cpet) == nil {
		t.V[Cpet] = make([]float64, t.Len())
		for i := range t.V[Cpet] {
			t.V[Cpet][i] = math.NaN()
		}
	}

	si := solirrad.New(latDeg, 0., 0.)
	pcp := t.Col(Cprecip)
	ep := t.V[Cpet]
	for i, d := range t.T {
		if !math.IsNaN(ep[i]) {
			continue
		}
		tm := tair[i]
		if math.IsNaN(tm) {
			continue
		}
		nN := 1. // sunshine-hour fraction proxy
		if pcp != nil && !math.IsNaN(pcp[i]) && pcp[i] > .001 {
			nN = 0.
		}
		Kg := si.PSIdaily(d.YearDay()) * (prescottA + prescottB*nN)
		ep[i] = pet.Makkink(Kg, tm, 101300., .61, -1.2e-4) * 1000. // [m/d] to [mm/d]; alpha/beta are the former upstream defaults
	}
	return nil
}
