// Public domain.

package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"catmatch/internal/geom"
)

// ReadCSV reads a catalog table in CSV form with a header row, using the
// column mapping of s.  Rows failing the schema's quality flag are
// dropped; the count of dropped rows is returned.  Any row that cannot be
// parsed fails the whole read: silently skipping records would
// desynchronize the index alignment the matching and statistics stages
// rely on.
func ReadCSV(path, name string, s Schema) (*Catalog, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.Comment = '#'
	rows, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %v", path, err)
	}
	if len(rows) < 1 {
		return nil, 0, fmt.Errorf("%s: empty table", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[strings.TrimSpace(h)] = i
	}
	need := []string{s.RA, s.Dec, s.Maj, s.Min, s.PA}
	for _, n := range need {
		if _, ok := col[n]; !ok {
			return nil, 0, fmt.Errorf("%s: missing column %q", path, n)
		}
	}

	axScale := s.AxisScale
	if axScale == 0 {
		axScale = 1
	}
	flxScale := s.FluxScale
	if flxScale == 0 {
		flxScale = 1
	}

	field := func(row []string, name string, line int) (float64, error) {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return 0, fmt.Errorf("%s line %d: missing %q", path, line, name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return 0, fmt.Errorf("%s line %d, column %q: %v",
				path, line, name, err)
		}
		return v, nil
	}
	optField := func(row []string, name string, scale float64, line int) (float64, error) {
		if name == "" {
			return math.NaN(), nil
		}
		v, err := field(row, name, line)
		return v * scale, err
	}

	cat := &Catalog{Name: name}
	excluded := 0
	for n, row := range rows[1:] {
		line := n + 2
		if s.Quality != "" {
			q, err := field(row, s.Quality, line)
			if err != nil {
				return nil, 0, err
			}
			if q != 1 {
				excluded++
				continue
			}
		}
		var src Source
		var err error
		if src.RA, err = field(row, s.RA, line); err != nil {
			return nil, 0, err
		}
		if src.Dec, err = field(row, s.Dec, line); err != nil {
			return nil, 0, err
		}
		if src.Maj, err = field(row, s.Maj, line); err != nil {
			return nil, 0, err
		}
		if src.Min, err = field(row, s.Min, line); err != nil {
			return nil, 0, err
		}
		if src.PA, err = field(row, s.PA, line); err != nil {
			return nil, 0, err
		}
		src.Maj *= axScale
		src.Min *= axScale
		if src.PeakFlux, err = optField(row, s.PeakFlux, flxScale, line); err != nil {
			return nil, 0, err
		}
		if src.IntFlux, err = optField(row, s.TotalFlux, flxScale, line); err != nil {
			return nil, 0, err
		}
		cat.Sources = append(cat.Sources, src)
	}
	return cat, excluded, nil
}

// headerFile is the JSON sidecar carrying the coordinate header of a
// source-finder catalog, with the FITS keys the source-finding stage
// copies through.
type headerFile struct {
	Object string  `json:"OBJECT"`
	Crval1 float64 `json:"CRVAL1"`
	Crval2 float64 `json:"CRVAL2"`
	Crpix1 float64 `json:"CRPIX1"`
	Crpix2 float64 `json:"CRPIX2"`
	Cdelt1 float64 `json:"CDELT1"`
	Cdelt2 float64 `json:"CDELT2"`
	BMaj   float64 `json:"SF_BMAJ"` // deg
	BMin   float64 `json:"SF_BMIN"` // deg
	BPA    float64 `json:"SF_BPA"`
	Freq   float64 `json:"FREQ"` // MHz
}

// ReadPointing reads a pipeline-native pointing catalog: a bdsf-schema
// CSV table plus its JSON coordinate header sidecar.  The header supplies
// the projection reference, pointing center, field of view, restoring
// beam and frequency.
func ReadPointing(catPath, headerPath string) (*Catalog, int, error) {
	hb, err := os.ReadFile(headerPath)
	if err != nil {
		return nil, 0, err
	}
	var h headerFile
	if err := json.Unmarshal(hb, &h); err != nil {
		return nil, 0, fmt.Errorf("%s: %v", headerPath, err)
	}
	if h.Cdelt1 == 0 || h.Cdelt2 == 0 {
		return nil, 0, fmt.Errorf("%s: missing pixel scale", headerPath)
	}

	name := h.Object
	if name == "" {
		name = strings.SplitN(filepath.Base(catPath), ".", 2)[0]
	}
	s, _, _ := SchemaByName("bdsf")
	cat, excluded, err := ReadCSV(catPath, name, s)
	if err != nil {
		return nil, 0, err
	}
	cat.WCS = &geom.WCS{
		Crval1: h.Crval1, Crval2: h.Crval2,
		Crpix1: h.Crpix1, Crpix2: h.Crpix2,
		Cdelt1: h.Cdelt1, Cdelt2: h.Cdelt2,
	}
	cat.CenterRA = h.Crval1
	cat.CenterDec = h.Crval2
	decFov := math.Abs(h.Cdelt1) * h.Crpix1 * 2
	cat.FoV = decFov / math.Cos(h.Crval2*math.Pi/180)
	cat.Beam = Beam{
		Maj:  h.BMaj * 3600,
		Min:  h.BMin * 3600,
		PA:   h.BPA,
		Freq: h.Freq,
	}
	return cat, excluded, nil
}
