package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/maseology/mmio"
	"github.com/stineb/fluxeval"
	"github.com/stineb/fluxeval/fit"
	"github.com/stineb/fluxeval/forcing"
	"github.com/stineb/fluxeval/postpro"
)

func main() {

	obsdir := flag.String("obs", "dat/obs/", "directory of per-site observed daily CSVs")
	simdir := flag.String("sim", "dat/sim/", "directory of per-site simulated daily CSVs")
	outdir := flag.String("out", "out/", "output directory")
	sites := flag.String("sites", "", "comma-separated site whitelist (default all)")
	y0 := flag.Int("y0", 0, "first valid year")
	y1 := flag.Int("y1", 0, "last valid year")
	mindays := flag.Int("mindays", 330, "minimum valid days to retain a year")
	serial := flag.Bool("serial", false, "evaluate sites serially with progress")
	flag.Parse()

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	var whitelist []string
	if *sites != "" {
		whitelist = strings.Split(*sites, ",")
	}
	yrs := [2]int{*y0, *y1}
	if *y0 == 0 && *y1 == 0 {
		yrs = [2]int{}
	}

	// load data
	obs, obsfail, err := forcing.LoadSites(*obsdir, forcing.Options{Nam: "obs", Sites: whitelist, Years: yrs})
	if err != nil {
		log.Fatalf("observed load failed: %v", err)
	}
	sim, simfail, err := forcing.LoadSites(*simdir, forcing.Options{Nam: "sim", Sites: whitelist, Years: yrs})
	if err != nil {
		log.Fatalf("simulated load failed: %v", err)
	}
	if n := len(obsfail) + len(simfail); n > 0 {
		fmt.Printf(" %d site files skipped on load\n", n)
	}
	obs.Merge(sim)
	forcing.CheckAndPrint(obs)
	tt.Print("load complete\n")

	mmio.MakeDir(*outdir)

	// evaluate sites: daily skill + annual sums
	ev := fluxeval.Evaluator{
		Rd:   fluxeval.Sum,
		Pol:  fluxeval.Policy{MinDays: *mindays, Years: yrs},
		Cols: []string{forcing.Cgpp, forcing.Caet},
	}
	var res []fluxeval.SiteResult
	if *serial {
		res = ev.EvaluateSerial(obs)
	} else {
		res = ev.Evaluate(obs)
	}
	nfail := 0
	for _, r := range res {
		if r.Err != nil {
			nfail++
			fmt.Printf(" %s skipped: %v\n", r.Site, r.Err)
		}
	}
	fmt.Printf(" %d sites evaluated (%d failed)\n", len(res)-nfail, nfail)
	tt.Print("evaluation complete\n")

	var ann []fluxeval.AnnualSummary
	for _, r := range res {
		if r.Err == nil {
			ann = append(ann, r.Ann...)
		}
	}
	if len(ann) == 0 {
		log.Fatalln("no annual summaries retained")
	}

	// joined columns are source-prefixed only when shared by both tables
	pick := func(src, c string) string {
		if _, ok := ann[0].V[src+"."+c]; ok {
			return src + "." + c
		}
		return c
	}
	cols := []string{pick("obs", forcing.Cgpp), pick("sim", forcing.Cgpp), pick("obs", forcing.Caet),
		pick("sim", forcing.Caet), pick("obs", forcing.Cprecip), pick("obs", forcing.Cpet)}
	if err := postpro.WriteAnnualCSV(*outdir+"annual.csv", res, cols); err != nil {
		log.Fatalf("%v", err)
	}
	if err := postpro.WriteSkillCSV(*outdir+"skill.csv", res, ev.Cols); err != nil {
		log.Fatalf("%v", err)
	}

	// Budyko: per-site multi-year mean points from observed annual totals
	pts := make([]fit.Point, 0, len(res))
	for _, p := range fluxeval.BudykoPointsBySite(ann, pick("obs", forcing.Cprecip), pick("obs", forcing.Caet), pick("obs", forcing.Cpet), fluxeval.DefaultMinPrecip) {
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		log.Fatalf("too few Budyko points (%d)", len(pts))
	}

	fmt.Println(" optimizing..")
	fits := make(map[string]fit.Result, 2)
	fu, err := fit.Fit(pts, fit.Fu(), []float64{2.6}, fit.Options{Bounds: [][2]float64{{1.01, 10.}}})
	if err != nil {
		fmt.Printf(" Fu fit: %v\n", err)
	} else {
		fmt.Printf(" Fu: w = %.3f  SSE: %.4f  R²: %.3f\n", fu.Par[0], fu.SSE, fu.R2)
		fits["fu"] = fu
		postpro.PlotBudyko(*outdir+"budyko.fu.png", *outdir+"budyko.fu.s.png", pts, fit.Fu(), fu.Par)
	}
	tb, err := fit.Fit(pts, fit.TwoBranchExp(), []float64{.5, 1.5}, fit.Options{Bounds: [][2]float64{{0., 1.}, {.01, 20.}}})
	if err != nil {
		fmt.Printf(" two-branch fit: %v\n", err)
	} else {
		fmt.Printf(" two-branch: x0 = %.3f  k = %.3f  SSE: %.4f  R²: %.3f\n", tb.Par[0], tb.Par[1], tb.SSE, tb.R2)
		fits["twobranch"] = tb
		postpro.PlotBudyko(*outdir+"budyko.tb.png", *outdir+"budyko.tb.s.png", pts, fit.TwoBranchExp(), tb.Par)
	}
	if len(fits) > 0 {
		postpro.WriteFitCSV(*outdir+"fits.csv", fits)
	}
}
