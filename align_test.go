package fluxeval

import (
	"errors"
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func buildTable(t *testing.T, site, nam string, d0 time.Time, vals map[string][]float64) *Table {
	t.Helper()
	var n int
	for _, v := range vals {
		n = len(v)
		break
	}
	cols := make([]string, 0, len(vals))
	for c := range vals {
		cols = append(cols, c)
	}
	tb := NewTable(site, nam, cols...)
	for i := 0; i < n; i++ {
		rec := make(map[string]float64, len(vals))
		for c, v := range vals {
			rec[c] = v[i]
		}
		if err := tb.AddRecord(d0.AddDate(0, 0, i), rec); err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
	}
	return tb
}

func TestAlignJoin(t *testing.T) {
	nan := math.NaN()
	obs := buildTable(t, "ES-Amo", "obs", day(2015, 1, 1), map[string][]float64{"gpp": {1, 2, 3, 4, 5}})
	sim := buildTable(t, "ES-Amo", "sim", day(2015, 1, 3), map[string][]float64{"gpp": {30, 40, 50, 60, nan}})

	j, err := Align(obs, sim)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if j.Len() != 3 {
		t.Fatalf("expected 3 joined days, got %d", j.Len())
	}

	// every output date must appear in both inputs
	oxr, sxr := obs.Index(), sim.Index()
	for _, d := range j.T {
		if _, ok := oxr[d]; !ok {
			t.Errorf("date %v not in observed input", d)
		}
		if _, ok := sxr[d]; !ok {
			t.Errorf("date %v not in simulated input", d)
		}
	}

	og, sg := j.Col("obs.gpp"), j.Col("sim.gpp")
	if og == nil || sg == nil {
		t.Fatalf("expected prefixed gpp columns, have %v", j.Cols())
	}
	want := [][2]float64{{3, 30}, {4, 40}, {5, 50}}
	for i, w := range want {
		if og[i] != w[0] || sg[i] != w[1] {
			t.Errorf("row %d: got (%f, %f), want (%f, %f)", i, og[i], sg[i], w[0], w[1])
		}
	}
}

func TestAlignKeyMismatch(t *testing.T) {
	a := buildTable(t, "ES-Amo", "obs", day(2015, 1, 1), map[string][]float64{"gpp": {1}})
	b := buildTable(t, "FR-Pue", "sim", day(2015, 1, 1), map[string][]float64{"gpp": {1}})
	if _, err := Align(a, b); !errors.Is(err, ErrKeyMismatch) {
		t.Fatalf("expected ErrKeyMismatch, got %v", err)
	}
}

func TestAlignMissingPropagates(t *testing.T) {
	nan := math.NaN()
	a := buildTable(t, "ES-Amo", "obs", day(2015, 1, 1), map[string][]float64{"gpp": {1, nan, 3}})
	b := buildTable(t, "ES-Amo", "sim", day(2015, 1, 1), map[string][]float64{"gpp": {9, 9, 9}})
	j, err := Align(a, b)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if j.Len() != 3 {
		t.Fatalf("expected 3 joined days, got %d", j.Len())
	}
	if !math.IsNaN(j.Col("obs.gpp")[1]) {
		t.Errorf("missing observed value should stay NaN, got %f", j.Col("obs.gpp")[1])
	}
	if j.Col("sim.gpp")[1] != 9 {
		t.Errorf("simulated value should pass through, got %f", j.Col("sim.gpp")[1])
	}
}

func TestAlignUnsharedColumnsKeepNames(t *testing.T) {
	a := buildTable(t, "ES-Amo", "obs", day(2015, 1, 1), map[string][]float64{"gpp": {1}, "precip": {2}})
	b := buildTable(t, "ES-Amo", "sim", day(2015, 1, 1), map[string][]float64{"gpp": {3}})
	j, err := Align(a, b)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if j.Col("precip") == nil {
		t.Errorf("unshared column should keep its name, have %v", j.Cols())
	}
}
