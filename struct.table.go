package fluxeval

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/maseology/mmio"
)

// Table holds one site's daily records as a set of date-ordered columns.
// Missing values are explicit NaNs, never zero.
type Table struct {
	Site string               // site identifier, eg "ES-Amo"
	Nam  string               // source label, eg "obs", "sim"
	T    []time.Time          // [date ID]
	V    map[string][]float64 // [column][date ID]
}

// NewTable initializes an empty table for one site and source.
func NewTable(site, nam string, cols ...string) *Table {
	v := make(map[string][]float64, len(cols))
	for _, c := range cols {
		v[c] = []float64{}
	}
	return &Table{Site: site, Nam: nam, V: v}
}

func (t *Table) Len() int { return len(t.T) }

// Cols returns the column names in sorted order.
func (t *Table) Cols() []string {
	cs := make([]string, 0, len(t.V))
	for c := range t.V {
		cs = append(cs, c)
	}
	sort.Strings(cs)
	return cs
}

// AddRecord appends one day of values; columns absent from vals are set NaN.
// Dates are truncated to the day.
func (t *Table) AddRecord(dt time.Time, vals map[string]float64) error {
	d := dayDate(dt)
	if n := len(t.T); n > 0 && !t.T[n-1].Before(d) {
		return fmt.Errorf("Table.AddRecord %s/%s: %v out of order", t.Site, t.Nam, d)
	}
	t.T = append(t.T, d)
	for c := range t.V {
		if v, ok := vals[c]; ok {
			t.V[c] = append(t.V[c], v)
		} else {
			t.V[c] = append(t.V[c], math.NaN())
		}
	}
	return nil
}

// Col returns a column's values, nil if not present.
func (t *Table) Col(nam string) []float64 { return t.V[nam] }

// Index maps day-date to row position.
func (t *Table) Index() map[time.Time]int {
	xr := make(map[time.Time]int, len(t.T))
	for i, d := range t.T {
		xr[dayDate(d)] = i
	}
	return xr
}

// TimeSeries exports one column as an mmio.TimeSeries, skipping NaNs.
func (t *Table) TimeSeries(col string) mmio.TimeSeries {
	ts := make(mmio.TimeSeries, len(t.T))
	v, ok := t.V[col]
	if !ok {
		return ts
	}
	for i, d := range t.T {
		if math.IsNaN(v[i]) {
			continue
		}
		ts[d] = v[i]
	}
	return ts
}
