package forcing

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stineb/fluxeval"
)

const sampleCSV = `TIMESTAMP,GPP_DT_VUT_REF,P_F,LE_F_MDS,TA_F
20150101,2.1,0.0,122.5,14.2
20150102,-9999,3.2,98.0,13.1
20150103,2.4,0.0,-9999,12.8
20160101,1.9,1.1,110.2,11.0
`

func TestLoadFluxCSV(t *testing.T) {
	tb, err := LoadFluxCSV(strings.NewReader(sampleCSV), "ES-Amo", Options{})
	if err != nil {
		t.Fatalf("LoadFluxCSV: %v", err)
	}
	if tb.Site != "ES-Amo" || tb.Nam != "obs" {
		t.Errorf("table keyed (%s, %s)", tb.Site, tb.Nam)
	}
	if tb.Len() != 4 {
		t.Fatalf("expected 4 days, got %d", tb.Len())
	}
	if !tb.T[0].Equal(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first date %v", tb.T[0])
	}

	// -9999 is a missing marker, never a value
	if !math.IsNaN(tb.Col(Cgpp)[1]) {
		t.Errorf("gpp no-data should be NaN, got %f", tb.Col(Cgpp)[1])
	}
	if !math.IsNaN(tb.Col(Caet)[2]) {
		t.Errorf("aet no-data should be NaN, got %f", tb.Col(Caet)[2])
	}

	// latent heat converts to mm/d
	if got, want := tb.Col(Caet)[0], 122.5*86400./2.45e6; math.Abs(got-want) > 1e-9 {
		t.Errorf("aet: got %f, want %f", got, want)
	}
}

func TestLoadFluxCSVYearWindow(t *testing.T) {
	tb, err := LoadFluxCSV(strings.NewReader(sampleCSV), "ES-Amo", Options{Years: [2]int{2015, 2015}})
	if err != nil {
		t.Fatalf("LoadFluxCSV: %v", err)
	}
	if tb.Len() != 3 {
		t.Fatalf("expected 3 days within 2015, got %d", tb.Len())
	}
}

func TestLoadFluxCSVDuplicateDate(t *testing.T) {
	dup := "TIMESTAMP,GPP_DT_VUT_REF\n20150101,1.0\n20150101,2.0\n"
	if _, err := LoadFluxCSV(strings.NewReader(dup), "ES-Amo", Options{}); err == nil {
		t.Fatal("expected an error on duplicate dates")
	}
}

func TestLoadFluxCSVSubDaily(t *testing.T) {
	hh := "TIMESTAMP_START,GPP_DT_VUT_REF\n201501010000,1.0\n201501010030,1.2\n"
	_, err := LoadFluxCSV(strings.NewReader(hh), "ES-Amo", Options{})
	if err == nil {
		t.Fatal("expected an error on half-hourly records")
	}
	if !strings.Contains(err.Error(), "sub-daily") {
		t.Errorf("error should name the sub-daily stamp: %v", err)
	}
}

func TestParseStamp(t *testing.T) {
	want := time.Date(2015, 6, 30, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"20150630", "2015-06-30"} {
		dt, err := parseStamp(s)
		if err != nil {
			t.Fatalf("parseStamp(%q): %v", s, err)
		}
		if !dt.Equal(want) {
			t.Errorf("parseStamp(%q) = %v", s, dt)
		}
	}
	if dt, err := parseStamp("201506300000"); err != nil || !dt.Equal(want) {
		t.Errorf("midnight start stamp: %v, %v", dt, err)
	}
	if _, err := parseStamp("201506301130"); err == nil {
		t.Error("expected an error on a sub-daily stamp")
	}
	if _, err := parseStamp("junk"); err == nil {
		t.Error("expected an error on a junk stamp")
	}
}

func TestCheck(t *testing.T) {
	if err := Check(fluxeval.NewTable("ES-Amo", "obs", "gpp")); err == nil {
		t.Error("expected an error on an empty table")
	}

	bad := &fluxeval.Table{Site: "ES-Amo", Nam: "obs",
		T: []time.Time{time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)},
		V: map[string][]float64{"gpp": {1., 2.}}}
	if err := Check(bad); err == nil {
		t.Error("expected an error on unordered dates")
	}

	ragged := &fluxeval.Table{Site: "ES-Amo", Nam: "obs",
		T: []time.Time{time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)},
		V: map[string][]float64{"gpp": {1., 2.}}}
	if err := Check(ragged); err == nil {
		t.Error("expected an error on a ragged column")
	}
}

func TestSupplementPET(t *testing.T) {
	tb := fluxeval.NewTable("ES-Amo", "obs", Ctair, Cprecip)
	d0 := time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := tb.AddRecord(d0.AddDate(0, 0, i), map[string]float64{Ctair: 24., Cprecip: 0.}); err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
	}
	if err := SupplementPET(tb, 36.83); err != nil {
		t.Fatalf("SupplementPET: %v", err)
	}
	ep := tb.Col(Cpet)
	if ep == nil {
		t.Fatal("pet column not created")
	}
	for i, v := range ep {
		if math.IsNaN(v) || v <= 0. {
			t.Errorf("day %d: pet = %f, want a positive estimate", i, v)
		}
	}
}
