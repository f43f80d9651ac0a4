package forcing

import (
	"fmt"
	"math"

	"github.com/stineb/fluxeval"
)

// Check validates a loaded table: nonempty, strictly ascending calendar
// dates (so no duplicates), rectangular columns, and at least one finite
// value somewhere. Loaders run this before handing tables to the core.
func Check(t *fluxeval.Table) error {
	if t == nil || t.Len() == 0 {
		return fmt.Errorf("forcing.Check: %w: empty table", fluxeval.ErrInsufficientData)
	}
	for i := 1; i < len(t.T); i++ {
		if !t.T[i-1].Before(t.T[i]) {
			return fmt.Errorf("forcing.Check %s/%s: dates out of order at %v", t.Site, t.Nam, t.T[i])
		}
	}
	nv := 0
	for c, v := range t.V {
		if len(v) != t.Len() {
			return fmt.Errorf("forcing.Check %s/%s: column %q has %d rows, want %d", t.Site, t.Nam, c, len(v), t.Len())
		}
		for _, x := range v {
			if !math.IsNaN(x) {
				nv++
			}
		}
	}
	if nv == 0 {
		return fmt.Errorf("forcing.Check %s/%s: %w: all values missing", t.Site, t.Nam, fluxeval.ErrInsufficientData)
	}
	return nil
}

// CheckAndPrint prints a one-line summary per table.
func CheckAndPrint(c *fluxeval.Collection) {
	fmt.Println("Collection summary:")
	for _, s := range c.Sites() {
		for nam, t := range c.XR[s] {
			if t.Len() == 0 {
				fmt.Printf(" %s/%s: empty\n", s, nam)
				continue
			}
			fmt.Printf(" %s/%s: %v to %v (%d days, %d columns)\n", s, nam,
				t.T[0].Format("2006-01-02"), t.T[t.Len()-1].Format("2006-01-02"), t.Len(), len(t.V))
		}
	}
}
