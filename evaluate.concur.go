package fluxeval

import "sync"

// Evaluate runs every site concurrently, one goroutine per site. Sites
// share nothing, so no ordering is imposed beyond the sorted result slice.
func (ev *Evaluator) Evaluate(c *Collection) []SiteResult {
	sites := c.Sites()
	out := make([]SiteResult, len(sites))
	var wg sync.WaitGroup
	wg.Add(len(sites))
	for i, s := range sites {
		go func(i int, s string) {
			defer wg.Done()
			out[i] = ev.evalSite(c, s)
		}(i, s)
	}
	wg.Wait()
	return out
}
