package forcing

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/stineb/fluxeval"
)

// LoadFluxCSV parses one site's daily records from a FLUXNET-style CSV
// stream. Columns are resolved by header name; -9999 becomes NaN; rows
// outside the valid-year window are skipped. Dates must be unique and
// ascending.
func LoadFluxCSV(r io.Reader, site string, o Options) (*fluxeval.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("forcing.LoadFluxCSV %s: %v", site, err)
	}

	hxr := make(map[string]int, len(hdr)) // header cross-reference
	for i, h := range hdr {
		hxr[h] = i
	}
	it, ok := hxr[ColTimestamp]
	if !ok {
		if it, ok = hxr[ColTimestampStart]; !ok {
			return nil, fmt.Errorf("forcing.LoadFluxCSV %s: no %s or %s column", site, ColTimestamp, ColTimestampStart)
		}
	}

	cols := o.cols()
	cxr := make(map[string]int, len(cols)) // canonical -> field index, present only
	cnams := make([]string, 0, len(cols))
	for c, h := range cols {
		if i, ok := hxr[h]; ok {
			cxr[c] = i
			cnams = append(cnams, c)
		}
	}
	if len(cxr) == 0 {
		return nil, fmt.Errorf("forcing.LoadFluxCSV %s: none of the requested columns found", site)
	}

	t := fluxeval.NewTable(site, o.nam(), cnams...)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("forcing.LoadFluxCSV %s: %v", site, err)
		}
		dt, err := parseStamp(rec[it])
		if err != nil {
			return nil, fmt.Errorf("forcing.LoadFluxCSV %s: %v", site, err)
		}
		if o.Years != [2]int{} && (dt.Year() < o.Years[0] || dt.Year() > o.Years[1]) {
			continue
		}
		vals := make(map[string]float64, len(cxr))
		for c, i := range cxr {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil || v == NoData {
				v = math.NaN()
			}
			if c == Caet && cols[c] == ColLE {
				v = AETFromLE(v)
			}
			vals[c] = v
		}
		if err := t.AddRecord(dt, vals); err != nil {
			return nil, fmt.Errorf("forcing.LoadFluxCSV: %v", err)
		}
	}
	return t, nil
}

// parseStamp accepts FLUXNET daily (20150101), dashed (2015-01-01) and
// midnight start (201501010000) stamps, all read as UTC calendar dates.
// Sub-daily records are rejected; files must be aggregated to daily first.
func parseStamp(s string) (time.Time, error) {
	for _, f := range []string{"20060102", "2006-01-02", "200601021504"} {
		if len(s) != len(f) {
			continue
		}
		if dt, err := time.ParseInLocation(f, s, time.UTC); err == nil {
			if dt.Hour() != 0 || dt.Minute() != 0 {
				return time.Time{}, fmt.Errorf("sub-daily timestamp %q: aggregate to daily records first", s)
			}
			return dt, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
