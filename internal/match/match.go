// Public domain.

// Package match implements the two-tier ellipse cross-match between an
// external catalog and a pointing catalog.
//
// Tier one is a cheap analytic bound evaluated for every pointing source:
// a pair closer than the summed sigma-scaled minor semi-axes always
// matches, and a pair farther than the summed deprojected major semi-axes
// plus the search distance never does.  Only pairs between the two bounds
// pay for tier two, the exact polygon intersection test with RA-wraparound
// correction.  The two-tier structure is a performance contract: the
// exact geometry dominates cost and must stay confined to the ambiguous
// band.
package match

import (
	"math"

	"catmatch/internal/catalog"
	"catmatch/internal/geom"
	"catmatch/internal/sky"
)

// FWHMToSigma converts a sigma extent to the factor applied to
// FWHM-convention axes, sigma / (2 sqrt(2 ln 2)).  At the default sigma
// extent of 3 the factor is 1.27398 times the FWHM.
func FWHMToSigma(sigma float64) float64 {
	return sigma / (2 * math.Sqrt(2*math.Ln2))
}

// Matcher matches single external sources against a fixed pointing
// catalog.  The pointing catalog must carry a coordinate header; it is
// read-only for the lifetime of the Matcher.
type Matcher struct {
	pointing *catalog.Catalog
}

// NewMatcher returns a Matcher over the given pointing catalog.
func NewMatcher(pointing *catalog.Catalog) (*Matcher, error) {
	if pointing.WCS == nil {
		return nil, &InconsistentCatalogError{
			Catalog: pointing.Name, Field: "coordinate header"}
	}
	return &Matcher{pointing: pointing}, nil
}

// Match returns the indices of pointing sources whose sigma-scaled
// footprints overlap that of ext, in increasing order.  sigma must be
// positive and searchDistDeg, an additional matching margin in degrees,
// non-negative.
func (m *Matcher) Match(ext catalog.Source, sigma, searchDistDeg float64) ([]int, error) {
	if err := ValidateParams(sigma, searchDistDeg); err != nil {
		return nil, err
	}
	fs := FWHMToSigma(sigma)
	ps := m.pointing.Sources

	// tier one over the whole catalog in one batch
	minM := make([]bool, len(ps))
	majM := make([]bool, len(ps))
	for j := range ps {
		p := &ps[j]
		sep := sky.Separation(ext.RA, ext.Dec, p.RA, p.Dec)
		minM[j] = sep <= fs*(ext.Min+p.Min)*.5
		dep := sky.DeprojectionFactor(ext.RA, ext.Dec, p.RA, p.Dec)
		majM[j] = sep < fs*dep*(ext.Maj+p.Maj)*.5+searchDistDeg
	}

	// tier two on the ambiguous band only
	var extPoly []geom.Polygon
	for j := range ps {
		if minM[j] == majM[j] {
			continue
		}
		if extPoly == nil {
			extPoly = geom.SplitRA(geom.EllipseVertices(
				ext.RA, ext.Dec, fs*ext.Maj, fs*ext.Min, ext.PA,
				m.pointing.WCS))
		}
		p := &ps[j]
		pPoly := geom.SplitRA(geom.EllipseVertices(
			p.RA, p.Dec, fs*p.Maj+searchDistDeg, fs*p.Min+searchDistDeg,
			p.PA, m.pointing.WCS))
		majM[j] = geom.Overlaps(extPoly, pPoly)
		if minM[j] && !majM[j] {
			return nil, &CoarseExactMismatchError{External: -1, Pointing: j}
		}
	}

	var matched []int
	for j, ok := range majM {
		if ok {
			matched = append(matched, j)
		}
	}
	return matched, nil
}

// ValidateParams checks the matching parameters.
func ValidateParams(sigma, searchDistDeg float64) error {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return &InvalidGeometryError{
			Catalog: "parameters", Field: "sigma extent", Value: sigma}
	}
	if !(searchDistDeg >= 0) || math.IsInf(searchDistDeg, 0) {
		return &InvalidGeometryError{
			Catalog: "parameters", Field: "search distance",
			Value: searchDistDeg}
	}
	return nil
}

// ValidateCatalog checks every source record for finite, physically
// consistent geometry.  A single malformed record fails the catalog.
func ValidateCatalog(c *catalog.Catalog) error {
	bad := func(i int, field string, v float64) error {
		return &InvalidGeometryError{
			Catalog: c.Name, Index: i, Field: field, Value: v}
	}
	for i := range c.Sources {
		s := &c.Sources[i]
		switch {
		case !finite(s.RA) || s.RA < 0 || s.RA >= 360:
			return bad(i, "RA", s.RA)
		case !finite(s.Dec) || s.Dec < -90 || s.Dec > 90:
			return bad(i, "Dec", s.Dec)
		case !finite(s.Maj) || s.Maj < 0:
			return bad(i, "major axis", s.Maj)
		case !finite(s.Min) || s.Min < 0 || s.Min > s.Maj:
			return bad(i, "minor axis", s.Min)
		case !finite(s.PA):
			return bad(i, "position angle", s.PA)
		case math.IsInf(s.PeakFlux, 0) || s.PeakFlux < 0:
			return bad(i, "peak flux", s.PeakFlux)
		case math.IsInf(s.IntFlux, 0) || s.IntFlux < 0:
			return bad(i, "total flux", s.IntFlux)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
