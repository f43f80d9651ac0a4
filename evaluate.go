package fluxeval

import (
	"fmt"
	"sync"

	"github.com/gosuri/uiprogress"
)

// Evaluator pairs simulated against observed tables site by site: daily
// join, skill metrics per shared column, annual aggregation.
type Evaluator struct {
	Rd             Reducer
	Pol            Policy
	Cols           []string // columns shared by both sources to score; nil scores all shared
	ObsNam, SimNam string   // source labels; default "obs"/"sim"
}

func (ev *Evaluator) labels() (string, string) {
	o, s := ev.ObsNam, ev.SimNam
	if o == "" {
		o = "obs"
	}
	if s == "" {
		s = "sim"
	}
	return o, s
}

// EvaluateSerial runs the sites one at a time with a progress bar, printing
// each site's skill report. Site failures are reported, not fatal.
func (ev *Evaluator) EvaluateSerial(c *Collection) []SiteResult {
	sites := c.Sites()
	uiprogress.Start()
	cur := ""
	var mu sync.Mutex
	bar := uiprogress.AddBar(len(sites)).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		mu.Lock()
		defer mu.Unlock()
		return cur
	})

	out := make([]SiteResult, len(sites))
	for i, s := range sites {
		mu.Lock()
		cur = s
		mu.Unlock()
		out[i] = ev.evalSite(c, s)
		bar.Incr()
	}
	uiprogress.Stop()
	for i := range out {
		out[i].print()
	}
	return out
}

// evalSite evaluates one site; any failure is folded into the result.
func (ev *Evaluator) evalSite(c *Collection, site string) SiteResult {
	onam, snam := ev.labels()
	obs, sim := c.Get(site, onam), c.Get(site, snam)
	if obs == nil || sim == nil {
		return SiteResult{Site: site, Err: fmt.Errorf("evalSite %s: %w: missing %q or %q table", site, ErrInsufficientData, onam, snam)}
	}

	j, err := Align(obs, sim)
	if err != nil {
		return SiteResult{Site: site, Err: err}
	}
	if j.Len() == 0 {
		return SiteResult{Site: site, Err: fmt.Errorf("evalSite %s: %w: no overlapping dates", site, ErrInsufficientData)}
	}

	cols := ev.Cols
	if cols == nil {
		for _, cc := range obs.Cols() {
			if _, ok := sim.V[cc]; ok {
				cols = append(cols, cc)
			}
		}
	}

	rd := ev.Rd
	if rd == nil {
		rd = Mean
	}
	pol := ev.Pol
	if pol.Cols == nil { // completeness checked on the scored columns only
		for _, cc := range cols {
			pol.Cols = append(pol.Cols, onam+"."+cc, snam+"."+cc)
		}
	}

	r := SiteResult{Site: site, Skill: make(map[string]Skill, len(cols))}
	for _, cc := range cols {
		o, s := j.Col(onam+"."+cc), j.Col(snam+"."+cc)
		if o == nil || s == nil {
			r.Err = fmt.Errorf("evalSite %s: %w: column %q absent from both sources", site, ErrInsufficientData, cc)
			return r
		}
		r.Skill[cc] = skill(j.T, o, s)
	}

	r.Ann, r.Err = Aggregate(j, rd, pol)
	return r
}
