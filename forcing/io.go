package forcing

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/stineb/fluxeval"
)

// SaveGob snapshots a loaded collection so repeat analyses skip the CSV
// parse.
func SaveGob(fp string, c *fluxeval.Collection) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	return nil
}

// LoadGob restores a SaveGob snapshot.
func LoadGob(fp string) (*fluxeval.Collection, error) {
	var c fluxeval.Collection
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
