package fluxeval

import (
	"fmt"
	"math"
	"sort"
)

// Reducer collapses one year of valid (non-NaN) daily values to a scalar.
type Reducer func([]float64) float64

// Sum of valid values.
func Sum(v []float64) float64 {
	s := 0.
	for _, x := range v {
		s += x
	}
	return s
}

// Mean of valid values.
func Mean(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}
	return Sum(v) / float64(len(v))
}

// TrimmedMean returns a reducer averaging values between the q and 1-q
// sample quantiles. q is clamped to [0, 0.5]; at 0.5 an even-length
// sample trims away entirely and reduces to NaN.
func TrimmedMean(q float64) Reducer {
	if q < 0. {
		q = 0.
	} else if q > .5 {
		q = .5
	}
	return func(v []float64) float64 {
		if len(v) == 0 {
			return math.NaN()
		}
		s := append([]float64{}, v...)
		sort.Float64s(s)
		nt := int(q * float64(len(s)))
		s = s[nt : len(s)-nt]
		return Mean(s)
	}
}

// Policy controls which years an aggregation retains.
type Policy struct {
	MinDays int      // minimum valid days per checked column; 0 keeps every year with data
	Years   [2]int   // inclusive year range; zero value means unrestricted
	Cols    []string // columns the MinDays rule checks; nil checks all
}

// AnnualSummary is one (site, year) row of reduced metrics.
type AnnualSummary struct {
	Site string
	Year int
	N    map[string]int     // valid-day count per column
	V    map[string]float64 // reduced value per column
}

// Aggregate groups a table's records by calendar year and applies the
// reducer per column over valid values. A year is dropped when any column
// has fewer than p.MinDays valid days. Returns ErrInsufficientData when no
// year is retained.
func Aggregate(t *Table, rd Reducer, p Policy) ([]AnnualSummary, error) {
	if t == nil || t.Len() == 0 {
		return nil, fmt.Errorf("Aggregate: %w: empty table", ErrInsufficientData)
	}

	cols := t.Cols()
	vals := make(map[int]map[string][]float64) // [year][column]
	for i, d := range t.T {
		y := d.Year()
		if p.Years != [2]int{} && (y < p.Years[0] || y > p.Years[1]) {
			continue
		}
		if _, ok := vals[y]; !ok {
			vals[y] = make(map[string][]float64, len(cols))
		}
		for _, c := range cols {
			if v := t.V[c][i]; !math.IsNaN(v) {
				vals[y][c] = append(vals[y][c], v)
			}
		}
	}

	yrs := make([]int, 0, len(vals))
	for y := range vals {
		yrs = append(yrs, y)
	}
	sort.Ints(yrs)

	ccheck := p.Cols
	if ccheck == nil {
		ccheck = cols
	}

	var out []AnnualSummary
	for _, y := range yrs {
		nvalid := 0
		for _, c := range cols {
			nvalid += len(vals[y][c])
		}
		keep := true
		for _, c := range ccheck {
			if _, ok := t.V[c]; !ok {
				continue
			}
			if len(vals[y][c]) < p.MinDays {
				keep = false
				break
			}
		}
		if !keep || nvalid == 0 {
			continue
		}
		a := AnnualSummary{Site: t.Site, Year: y, N: make(map[string]int, len(cols)), V: make(map[string]float64, len(cols))}
		for _, c := range cols {
			a.N[c] = len(vals[y][c])
			if a.N[c] == 0 {
				a.V[c] = math.NaN()
			} else {
				a.V[c] = rd(vals[y][c])
			}
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("Aggregate %s: %w: no year satisfies MinDays=%d", t.Site, ErrInsufficientData, p.MinDays)
	}
	return out, nil
}
