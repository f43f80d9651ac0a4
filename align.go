package fluxeval

import (
	"fmt"
)

// Align inner-joins two tables of the same site by date. The output holds
// exactly the dates present in both inputs, ascending, with one column per
// input column; NaNs on either side carry through. Pure function.
func Align(a, b *Table) (*Table, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Align: %w: nil table", ErrInsufficientData)
	}
	if a.Site != b.Site {
		return nil, fmt.Errorf("Align: %w: %q vs %q", ErrKeyMismatch, a.Site, b.Site)
	}

	an, bn := joinNames(a, b)
	j := &Table{Site: a.Site, Nam: "joined", V: make(map[string][]float64, len(an)+len(bn))}
	for _, n := range an {
		j.V[n] = []float64{}
	}
	for _, n := range bn {
		j.V[n] = []float64{}
	}

	bxr := b.Index()
	acs, bcs := a.Cols(), b.Cols()
	for i, d := range a.T {
		k, ok := bxr[dayDate(d)]
		if !ok {
			continue
		}
		j.T = append(j.T, dayDate(d))
		for ci, c := range acs {
			j.V[an[ci]] = append(j.V[an[ci]], a.V[c][i])
		}
		for ci, c := range bcs {
			j.V[bn[ci]] = append(j.V[bn[ci]], b.V[c][k])
		}
	}
	return j, nil
}

// joinNames resolves output column names: a name shared by both inputs is
// prefixed with its source label ("obs.gpp"), otherwise kept as is.
func joinNames(a, b *Table) (an, bn []string) {
	la, lb := a.Nam, b.Nam
	if la == "" {
		la = "a"
	}
	if lb == "" || lb == la {
		lb = "b"
	}
	acs, bcs := a.Cols(), b.Cols()
	an, bn = make([]string, len(acs)), make([]string, len(bcs))
	for i, c := range acs {
		if _, shared := b.V[c]; shared {
			an[i] = la + "." + c
		} else {
			an[i] = c
		}
	}
	for i, c := range bcs {
		if _, shared := a.V[c]; shared {
			bn[i] = lb + "." + c
		} else {
			bn[i] = c
		}
	}
	return
}
