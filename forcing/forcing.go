// Package forcing reads externally owned flux/forcing files (FLUXNET-style
// daily CSV and gob snapshots) into fluxeval tables: site whitelists,
// valid-year windows, explicit NaN missing markers, unit conversion and
// PET supplementation. File formats and column naming are owned by the
// data providers; this package only maps them onto the core's conventions.
package forcing

// external column conventions (FLUXNET FULLSET daily)
const (
	ColTimestamp      = "TIMESTAMP"
	ColTimestampStart = "TIMESTAMP_START"
	ColGPP            = "GPP_DT_VUT_REF" // [gC/m²/d]
	ColLE             = "LE_F_MDS"       // latent heat flux [W/m²]
	ColPrecip         = "P_F"            // [mm/d]
	ColTair           = "TA_F"           // [°C]
	ColPET            = "PET"            // [mm/d], often absent

	NoData = -9999.
)

// canonical table columns
const (
	Cgpp    = "gpp"
	Caet    = "aet"
	Cpet    = "pet"
	Cprecip = "precip"
	Ctair   = "tair"
)

// DefaultColumns maps canonical column names to their FLUXNET headers.
func DefaultColumns() map[string]string {
	return map[string]string{
		Cgpp:    ColGPP,
		Caet:    ColLE, // converted W/m² -> mm/d on load
		Cprecip: ColPrecip,
		Ctair:   ColTair,
		Cpet:    ColPET,
	}
}

// Options filter and label what the loaders materialize.
type Options struct {
	Nam   string             // source label for loaded tables; default "obs"
	Sites []string           // site whitelist; nil loads all
	Years [2]int             // inclusive valid-year window; zero value unrestricted
	Cols  map[string]string  // canonical -> file column; nil takes DefaultColumns
	Lat   map[string]float64 // site latitude [°]; enables PET supplementation
}

func (o *Options) nam() string {
	if o.Nam == "" {
		return "obs"
	}
	return o.Nam
}

func (o *Options) cols() map[string]string {
	if o.Cols == nil {
		return DefaultColumns()
	}
	return o.Cols
}

func (o *Options) wantSite(site string) bool {
	if o.Sites == nil {
		return true
	}
	for _, s := range o.Sites {
		if s == site {
			return true
		}
	}
	return false
}
