// Public domain.

// Package stats aggregates astrometric and flux-ratio statistics over a
// match result, overall and per multiplicity class.  The per-class split
// isolates whether multi-counterpart blends skew the astrometric or flux
// calibration relative to clean one-to-one matches.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"catmatch/internal/catalog"
	"catmatch/internal/sky"
)

// FluxType selects the flux field used for flux ratios.
type FluxType string

const (
	FluxTotal FluxType = "Total"
	FluxPeak  FluxType = "Peak"
)

// UnsupportedFluxTypeError reports a flux type that is not one of the
// valid choices, or one the named catalog does not provide.
type UnsupportedFluxTypeError struct {
	FluxType FluxType
	Catalog  string // empty when the flux type itself is invalid
}

func (e *UnsupportedFluxTypeError) Error() string {
	if e.Catalog == "" {
		return fmt.Sprintf(
			"invalid flux type %q, choose between Total and Peak", e.FluxType)
	}
	return fmt.Sprintf("catalog %s does not provide %s flux",
		e.Catalog, e.FluxType)
}

// Summary holds the aggregate statistics of one data series.
type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Std    float64 `json:"std"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"len"`
}

// FullClass keys the aggregate over all matches regardless of
// multiplicity class.
const FullClass = "Full"

// Record is the immutable statistics summary of one matching run.
// The raw series are kept alongside the aggregates for downstream
// writers and plotting collaborators.
type Record struct {
	// per matched pair
	DRA       []float64 `json:"dRA"`  // arcsec
	DDec      []float64 `json:"dDEC"` // arcsec
	PairClass []int     `json:"n_matches"`

	// per matched external source
	ExtFlux    []float64 `json:"ext_flux"`
	IntFlux    []float64 `json:"int_flux"`
	DFlux      []float64 `json:"dFlux"`
	Separation []float64 `json:"separation"` // deg from pointing center
	FluxClass  []int     `json:"flux_n_matches"`

	Alpha    float64  `json:"alpha"`
	FluxType FluxType `json:"fluxtype"`

	// aggregates keyed by statistic name, then by multiplicity class
	// ("1", "2", ... and "Full")
	OffsetStats map[string]map[string]Summary `json:"offset_stats"`
	FluxStats   map[string]map[string]Summary `json:"flux_stats"`
}

// Compute builds the statistics record for a match result.  matches must
// be index-aligned with the external catalog.  alpha is the spectral
// index of the power-law frequency correction S ~ freq^-alpha.
func Compute(ext, pointing *catalog.Catalog, matches [][]int,
	ft FluxType, alpha float64) (*Record, error) {

	if ft != FluxTotal && ft != FluxPeak {
		return nil, &UnsupportedFluxTypeError{FluxType: ft}
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, fmt.Errorf("spectral index %g is not finite", alpha)
	}
	if len(matches) != len(ext.Sources) {
		return nil, fmt.Errorf(
			"match result length %d does not align with catalog %s length %d",
			len(matches), ext.Name, len(ext.Sources))
	}
	if ext.Beam.Freq <= 0 || pointing.Beam.Freq <= 0 {
		return nil, fmt.Errorf("catalogs must carry observing frequencies")
	}
	extFluxOf, err := fluxField(ext, ft)
	if err != nil {
		return nil, err
	}
	ptFluxOf, err := fluxField(pointing, ft)
	if err != nil {
		return nil, err
	}

	r := &Record{Alpha: alpha, FluxType: ft}
	fcorr := math.Pow(pointing.Beam.Freq/ext.Beam.Freq, -alpha)
	for i, set := range matches {
		if len(set) == 0 {
			continue
		}
		e := &ext.Sources[i]
		var fluxSum float64
		for _, j := range set {
			p := &pointing.Sources[j]
			dra, ddec := sky.Offsets(e.RA, e.Dec, p.RA, p.Dec)
			r.DRA = append(r.DRA, unit.AngleFromDeg(dra).Sec())
			r.DDec = append(r.DDec, unit.AngleFromDeg(ddec).Sec())
			r.PairClass = append(r.PairClass, len(set))
			fluxSum += ptFluxOf(p)
		}
		ef := extFluxOf(e)
		r.ExtFlux = append(r.ExtFlux, ef)
		r.IntFlux = append(r.IntFlux, fluxSum)
		r.DFlux = append(r.DFlux, fluxSum/(ef*fcorr))
		r.Separation = append(r.Separation, sky.Separation(
			e.RA, e.Dec, pointing.CenterRA, pointing.CenterDec))
		r.FluxClass = append(r.FluxClass, len(set))
	}

	r.OffsetStats = map[string]map[string]Summary{
		"dRA":  byClass(r.DRA, r.PairClass),
		"dDEC": byClass(r.DDec, r.PairClass),
	}
	r.FluxStats = map[string]map[string]Summary{
		"dFlux": byClass(r.DFlux, r.FluxClass),
	}
	return r, nil
}

func fluxField(c *catalog.Catalog, ft FluxType) (func(*catalog.Source) float64, error) {
	switch ft {
	case FluxTotal:
		if !c.HasIntFlux() {
			return nil, &UnsupportedFluxTypeError{FluxType: ft, Catalog: c.Name}
		}
		return func(s *catalog.Source) float64 { return s.IntFlux }, nil
	default:
		if !c.HasPeakFlux() {
			return nil, &UnsupportedFluxTypeError{FluxType: ft, Catalog: c.Name}
		}
		return func(s *catalog.Source) float64 { return s.PeakFlux }, nil
	}
}

// byClass aggregates one data series per observed multiplicity class and
// over the full series.
func byClass(data []float64, class []int) map[string]Summary {
	m := map[string]Summary{FullClass: summarize(data)}
	seen := map[int]bool{}
	for _, c := range class {
		if seen[c] {
			continue
		}
		seen[c] = true
		var sel []float64
		for i, ci := range class {
			if ci == c {
				sel = append(sel, data[i])
			}
		}
		m[strconv.Itoa(c)] = summarize(sel)
	}
	return m
}

// summarize follows the numpy conventions the reference outputs use:
// population standard deviation and linear-interpolation median.
func summarize(x []float64) Summary {
	if len(x) == 0 {
		return Summary{}
	}
	s := Summary{
		Min:   floats.Min(x),
		Max:   floats.Max(x),
		Mean:  stat.Mean(x, nil),
		Std:   stat.PopStdDev(x, nil),
		Count: len(x),
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = (sorted[n/2-1] + sorted[n/2]) * .5
	}
	return s
}
