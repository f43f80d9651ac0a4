package forcing

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/maseology/mmio"
	"github.com/stineb/fluxeval"
)

// LoadSites materializes a collection from a directory of per-site CSV
// files named <site>.csv, applying the whitelist and year window, running
// Check on every table and supplementing PET where a latitude is known.
// A bad site file never aborts the load: its site is skipped and its error
// returned in the failure map. The error return is reserved for an empty
// result.
func LoadSites(dir string, o Options) (*fluxeval.Collection, map[string]error, error) {
	tt := time.Now()
	c := fluxeval.NewCollection()
	fails := make(map[string]error)
	fps, _ := mmio.FileListExt(dir, ".csv") // error ignored to match former single-value signature
	for _, fp := range fps {
		site := filepath.Base(mmio.RemoveExtension(fp))
		if !o.wantSite(site) {
			continue
		}
		t, err := loadFile(fp, site, o)
		if err == nil {
			err = Check(t)
		}
		if err == nil {
			if lat, ok := o.Lat[site]; ok {
				err = SupplementPET(t, lat)
			}
		}
		if err != nil {
			fmt.Printf(" %s skipped: %v\n", site, err)
			fails[site] = err
			continue
		}
		c.Add(t)
	}
	if len(c.XR) == 0 {
		return nil, fails, fmt.Errorf("forcing.LoadSites %s: %w: no site files loaded", dir, fluxeval.ErrInsufficientData)
	}
	fmt.Printf(" %d sites loaded from %s - %v\n", len(c.XR), dir, time.Since(tt))
	return c, fails, nil
}

func loadFile(fp, site string, o Options) (*fluxeval.Table, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("forcing.LoadSites: %v", err)
	}
	defer f.Close()
	return LoadFluxCSV(f, site, o)
}
