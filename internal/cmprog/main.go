// Public domain.

// Package cmprog is the catmatch command program.
package cmprog

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/unit"

	"catmatch/internal/catalog"
	"catmatch/internal/kvis"
	"catmatch/internal/match"
	"catmatch/internal/stats"
)

const versionString = "catmatch version 0.3"

type commandLine struct {
	schema     string
	sigma      float64
	searchDist float64 // arcsec
	fluxtype   string
	alpha      float64
	out        string
	statsFn    string
	ann        string
	annAll     bool

	pointingCat, pointingHdr, extCat string
}

func Main() {
	defer exit.Handler()
	cl := parseCommandLine()

	pointing, nExcl, err := catalog.ReadPointing(cl.pointingCat, cl.pointingHdr)
	if err != nil {
		exit.Log(err)
	}
	if nExcl > 0 {
		fmt.Printf("Excluding %d sources with a negative quality flag\n", nExcl)
	}

	ext, err := readExternal(cl)
	if err != nil {
		exit.Log(err)
	}
	if len(ext.Sources) == 0 {
		exit.Log("no sources to match; the external catalog may have no " +
			"coverage here")
	}

	fmt.Printf("Matching %d sources in %s to %d sources in %s\n",
		len(ext.Sources), ext.Name, len(pointing.Sources), pointing.Name)

	searchDistDeg := unit.AngleFromSec(cl.searchDist).Deg()
	matches, err := match.MatchAll(ext, pointing, cl.sigma, searchDistDeg)
	if err != nil {
		exit.Log(err)
	}

	rec, err := stats.Compute(ext, pointing, matches,
		stats.FluxType(cl.fluxtype), cl.alpha)
	if err != nil {
		exit.Log(err)
	}

	nMatched := 0
	for _, set := range matches {
		if len(set) > 0 {
			nMatched++
		}
	}
	fmt.Printf("Matched %d of %d external sources\n", nMatched,
		len(ext.Sources))
	if full, ok := rec.FluxStats["dFlux"][stats.FullClass]; ok && full.Count > 0 {
		fmt.Printf("Median flux ratio: %.3f +- %.3f\n", full.Median, full.Std)
	}
	if full, ok := rec.OffsetStats["dRA"][stats.FullClass]; ok && full.Count > 0 {
		dec := rec.OffsetStats["dDEC"][stats.FullClass]
		fmt.Printf("Median offsets: dRA %.2f\" +- %.2f\", dDEC %.2f\" +- %.2f\"\n",
			full.Median, full.Std, dec.Median, dec.Std)
	}

	if cl.out != "" {
		if err := writeJoined(cl.out, ext, pointing, matches); err != nil {
			exit.Log(err)
		}
		fmt.Println("Saved joined catalog to", cl.out)
	}
	if cl.statsFn != "" {
		if err := writeStats(cl.statsFn, cl, rec); err != nil {
			exit.Log(err)
		}
		fmt.Println("Saved match statistics to", cl.statsFn)
	}
	if cl.ann != "" {
		f, err := os.Create(cl.ann)
		if err != nil {
			exit.Log(err)
		}
		err = kvis.Write(f, ext, pointing, matches, cl.sigma, cl.annAll)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			exit.Log(err)
		}
		fmt.Println("Saved annotations to", cl.ann)
	}
}

func parseCommandLine() *commandLine {
	var cl commandLine
	v := flag.Bool("v", false, "")
	flag.StringVar(&cl.schema, "schema", "bdsf", "")
	flag.Float64Var(&cl.sigma, "sigma", 3, "")
	flag.Float64Var(&cl.searchDist, "searchdist", 0, "")
	flag.StringVar(&cl.fluxtype, "fluxtype", "Total", "")
	flag.Float64Var(&cl.alpha, "alpha", .8, "")
	flag.StringVar(&cl.out, "out", "", "")
	flag.StringVar(&cl.statsFn, "stats", "", "")
	flag.StringVar(&cl.ann, "ann", "", "")
	flag.BoolVar(&cl.annAll, "annall", false, "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: catmatch [options] <pointing-catalog> <pointing-header> <external-catalog>

Cross-match the elliptical sources of an external catalog against a
pointing catalog and report positional and flux agreement.

Options:
       -schema <name|file>  external table layout: bdsf, nvss, first,
                            sumss, tgss, or a JSON schema file
       -sigma <s>           matching extent in sigma (default 3)
       -searchdist <d>      additional search distance, arcsec (default 0)
       -fluxtype <t>        Total or Peak flux ratios (default Total)
       -alpha <a>           spectral index for the flux frequency
                            correction (default 0.8)
       -out <file>          write the joined catalog CSV
       -stats <file>        write the match statistics JSON
       -ann <file>          write a kvis annotation file
       -annall              annotate non-matched pointing sources too
       -v                   display version
`)
	}
	flag.Parse()
	if *v {
		fmt.Println(versionString)
		os.Exit(0)
	}
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(1)
	}
	cl.pointingCat = flag.Arg(0)
	cl.pointingHdr = flag.Arg(1)
	cl.extCat = flag.Arg(2)
	return &cl
}

func readExternal(cl *commandLine) (*catalog.Catalog, error) {
	var s catalog.Schema
	var beam catalog.Beam
	var name string
	if strings.HasSuffix(cl.schema, ".json") {
		var err error
		if s, beam, err = catalog.ReadSchemaFile(cl.schema); err != nil {
			return nil, err
		}
		name = strings.ToUpper(strings.TrimSuffix(
			filepath.Base(cl.schema), ".json"))
	} else {
		var ok bool
		if s, beam, ok = catalog.SchemaByName(cl.schema); !ok {
			return nil, fmt.Errorf("unknown schema %q", cl.schema)
		}
		name = strings.ToUpper(cl.schema)
	}
	cat, nExcl, err := catalog.ReadCSV(cl.extCat, name, s)
	if err != nil {
		return nil, err
	}
	if nExcl > 0 {
		fmt.Printf("Excluding %d sources with a negative quality flag\n",
			nExcl)
	}
	cat.Beam = beam
	return cat, nil
}

// writeStats writes the statistics record with the input parameters, the
// record the reporting and plotting collaborators consume.
func writeStats(fn string, cl *commandLine, rec *stats.Record) error {
	out := struct {
		Input struct {
			Alpha      float64 `json:"alpha"`
			Sigma      float64 `json:"match_sigma_extent"`
			SearchDist float64 `json:"search_dist"`
			FluxType   string  `json:"fluxtype"`
		} `json:"INPUT"`
		Stats *stats.Record `json:"match"`
	}{Stats: rec}
	out.Input.Alpha = cl.alpha
	out.Input.Sigma = cl.sigma
	out.Input.SearchDist = cl.searchDist
	out.Input.FluxType = cl.fluxtype
	b, err := json.MarshalIndent(&out, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(fn, append(b, '\n'), 0666)
}

// writeJoined writes one CSV row per matched pair, external columns
// first, and one row with empty pointing columns for every unmatched
// external source.
func writeJoined(fn string, ext, pointing *catalog.Catalog, matches [][]int) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	header := []string{
		"idx", "RA", "DEC", "Maj", "Min", "PA", "Peak_flux", "Total_flux",
		"match_idx", "match_RA", "match_DEC", "match_Maj", "match_Min",
		"match_PA", "match_Peak_flux", "match_Total_flux",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	num := func(v float64) string {
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	srcCols := func(i int, s *catalog.Source) []string {
		return []string{strconv.Itoa(i), num(s.RA), num(s.Dec),
			num(s.Maj), num(s.Min), num(s.PA),
			num(s.PeakFlux), num(s.IntFlux)}
	}
	for i, set := range matches {
		e := &ext.Sources[i]
		if len(set) == 0 {
			r := append(srcCols(i, e), "", "", "", "", "", "", "", "")
			if err := w.Write(r); err != nil {
				f.Close()
				return err
			}
			continue
		}
		for _, j := range set {
			p := &pointing.Sources[j]
			r := srcCols(i, e)
			r = append(r, strconv.Itoa(j), num(p.RA), num(p.Dec),
				num(p.Maj), num(p.Min), num(p.PA), num(p.PeakFlux),
				num(p.IntFlux))
			if err := w.Write(r); err != nil {
				f.Close()
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
