// Public domain.

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Schema maps catalog concepts to the column names of a particular table
// layout.  Empty column names mean the catalog does not carry that field.
// The mapping is selected once at load time; nothing resolves column
// names per access.
type Schema struct {
	RA, Dec   string
	Maj, Min  string
	PA        string
	PeakFlux  string
	TotalFlux string
	Quality   string // rows with a value other than 1 are dropped at load

	// AxisScale and FluxScale convert table values to degrees and Jy.
	// Zero means 1 (values already in target units).
	AxisScale float64
	FluxScale float64
}

const arcsecDeg = 1. / 3600

// Named table layouts.  bdsf is the pipeline-native PyBDSF source list;
// the survey layouts match the tables the reference surveys distribute
// (axes in arcsec, fluxes in mJy).
var namedSchemas = map[string]Schema{
	"bdsf": {
		RA: "RA", Dec: "DEC", Maj: "Maj", Min: "Min", PA: "PA",
		PeakFlux: "Peak_flux", TotalFlux: "Total_flux",
		Quality: "Quality_flag",
	},
	"nvss": {
		RA: "RA", Dec: "DEC", Maj: "Maj", Min: "Min", PA: "PA",
		PeakFlux: "Peak_flux", TotalFlux: "Total_flux",
		AxisScale: arcsecDeg, FluxScale: 1e-3,
	},
	"first": {
		RA: "RA", Dec: "DEC", Maj: "Maj", Min: "Min", PA: "PA",
		PeakFlux: "Peak_flux", TotalFlux: "Total_flux",
		AxisScale: arcsecDeg, FluxScale: 1e-3,
	},
	"sumss": {
		RA: "RA", Dec: "DEC", Maj: "Maj", Min: "Min", PA: "PA",
		PeakFlux: "Peak_flux", TotalFlux: "Total_flux",
		AxisScale: arcsecDeg, FluxScale: 1e-3,
	},
	"tgss": {
		RA: "RA", Dec: "DEC", Maj: "Maj", Min: "Min", PA: "PA",
		PeakFlux: "Peak_flux", TotalFlux: "Total_flux",
		AxisScale: arcsecDeg, FluxScale: 1e-3,
	},
}

// Survey beams at the reference frequencies, for the named external
// schemas.  FWHM arcsec.
var surveyBeams = map[string]Beam{
	"nvss":  {Maj: 45, Min: 45, PA: 0, Freq: 1400},
	"first": {Maj: 5.4, Min: 5.4, PA: 0, Freq: 1400},
	"sumss": {Maj: 45, Min: 45, PA: 0, Freq: 843},
	"tgss":  {Maj: 25, Min: 25, PA: 0, Freq: 150},
}

// SchemaByName returns the named schema and its survey beam.
// Name matching is case insensitive.
func SchemaByName(name string) (Schema, Beam, bool) {
	key := strings.ToLower(name)
	s, ok := namedSchemas[key]
	if !ok {
		return Schema{}, Beam{}, false
	}
	return s, surveyBeams[key], true
}

// extcatFile is the user-supplied external catalog description, the
// equivalent of the reference pipeline's extcat.json.
type extcatFile struct {
	DataColumns struct {
		RA          string `json:"ra"`
		Dec         string `json:"dec"`
		MajAx       string `json:"majax"`
		MinAx       string `json:"minax"`
		PA          string `json:"pa"`
		PeakFlux    string `json:"peak_flux"`
		TotalFlux   string `json:"total_flux"`
		QualityFlag string `json:"quality_flag"`
	} `json:"data_columns"`
	Properties struct {
		BMaj      float64 `json:"BMAJ"`
		BMin      float64 `json:"BMIN"`
		BPA       float64 `json:"BPA"`
		Freq      float64 `json:"freq"`
		AxisScale float64 `json:"axis_scale"`
		FluxScale float64 `json:"flux_scale"`
	} `json:"properties"`
}

// ReadSchemaFile reads a user-supplied JSON schema describing an external
// catalog's columns, beam and frequency.
func ReadSchemaFile(path string) (Schema, Beam, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, Beam{}, err
	}
	var ec extcatFile
	if err := json.Unmarshal(b, &ec); err != nil {
		return Schema{}, Beam{}, fmt.Errorf("%s: %v", path, err)
	}
	d := ec.DataColumns
	if d.RA == "" || d.Dec == "" || d.MajAx == "" || d.MinAx == "" ||
		d.PA == "" {
		return Schema{}, Beam{}, fmt.Errorf(
			"%s: schema must map ra, dec, majax, minax and pa", path)
	}
	s := Schema{
		RA: d.RA, Dec: d.Dec, Maj: d.MajAx, Min: d.MinAx, PA: d.PA,
		PeakFlux: d.PeakFlux, TotalFlux: d.TotalFlux,
		Quality:   d.QualityFlag,
		AxisScale: ec.Properties.AxisScale,
		FluxScale: ec.Properties.FluxScale,
	}
	bm := Beam{
		Maj:  ec.Properties.BMaj,
		Min:  ec.Properties.BMin,
		PA:   ec.Properties.BPA,
		Freq: ec.Properties.Freq,
	}
	return s, bm, nil
}
