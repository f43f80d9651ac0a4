// Package postpro turns evaluation output into summary tables, plots and
// cached observation pulls.
package postpro

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/maseology/mmio"
	"github.com/stineb/fluxeval"
	"github.com/stineb/fluxeval/forcing"
)

const jsonAPI = "https://api.fluxdata.org/v1/daily?site="

type jdata struct {
	T   string  `json:"Date"`
	Gpp float64 `json:"GPP"`
	Le  float64 `json:"LE"`
	Pcp float64 `json:"P"`
}

func getJSON(url string) ([]time.Time, [][3]float64, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == 500 {
		return nil, nil, nil
	} else if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected http GET status: %s", resp.Status)
	}

	var df []jdata
	if err := json.NewDecoder(resp.Body).Decode(&df); err != nil {
		return nil, nil, fmt.Errorf("cannot decode JSON: %v", err)
	}

	dts, vals := make([]time.Time, len(df)), make([][3]float64, len(df))
	for i, r := range df { // data queried is assumed to be pre-sorted
		t, err := time.Parse("2006-01-02T15:04:05", r.T)
		if err != nil {
			return nil, nil, fmt.Errorf("date parse error: %v", err)
		}
		dts[i] = t
		vals[i] = [3]float64{r.Gpp, r.Le, r.Pcp}
	}
	return dts, vals, nil
}

// GetObservations pulls daily tower records for the named sites, caching
// the assembled collection as a gob beside the output directory so repeat
// runs go to the network only once.
func GetObservations(odir string, sites []string) (*fluxeval.Collection, error) {
	gobFP := odir + "obs.gob"
	if _, ok := mmio.FileExists(gobFP); ok {
		return forcing.LoadGob(gobFP)
	}

	c := fluxeval.NewCollection()
	for _, site := range sites {
		fmt.Printf("%s: loading.. ", site)
		dts, vals, err := getJSON(jsonAPI + site)
		if err != nil {
			return nil, err
		}
		if dts == nil {
			fmt.Println("no data found")
			continue
		}
		fmt.Printf("count = %d: %s to %s\n", len(dts), dts[0].Format("2006-01-02"), dts[len(dts)-1].Format("2006-01-02"))

		t := fluxeval.NewTable(site, "obs", forcing.Cgpp, forcing.Caet, forcing.Cprecip)
		for i, dt := range dts {
			if err := t.AddRecord(dt, map[string]float64{
				forcing.Cgpp:    vals[i][0],
				forcing.Caet:    forcing.AETFromLE(vals[i][1]),
				forcing.Cprecip: vals[i][2],
			}); err != nil {
				return nil, err
			}
		}
		c.Add(t)
	}

	if err := forcing.SaveGob(gobFP, c); err != nil {
		return nil, err
	}
	return c, nil
}
