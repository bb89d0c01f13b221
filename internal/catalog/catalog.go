// Public domain.

// Package catalog defines the source catalog data model handed to the
// matching core, and readers for the tabular catalog files and coordinate
// headers produced by the source-finding stage.
package catalog

import (
	"math"

	"catmatch/internal/geom"
)

// Source is one elliptical source detection.  Position and axes are in
// degrees; axes follow the FWHM convention with Maj >= Min >= 0; PA is
// degrees east of north.  Flux fields are NaN (or zero) when the catalog
// does not provide them.
type Source struct {
	RA, Dec  float64
	Maj, Min float64
	PA       float64
	PeakFlux float64
	IntFlux  float64
}

// Beam describes the restoring beam and observing frequency of a catalog.
type Beam struct {
	Maj, Min float64 // arcsec
	PA       float64 // deg
	Freq     float64 // MHz
}

// Catalog is an ordered sequence of sources plus the catalog-level
// descriptors.  WCS is non-nil only for catalogs usable as the projection
// reference.  Catalogs are read-only for the lifetime of a matching run.
type Catalog struct {
	Name    string
	Sources []Source
	Beam    Beam
	WCS     *geom.WCS

	// Pointing center and field of view, degrees.  Zero FoV when the
	// catalog carries no header.
	CenterRA, CenterDec float64
	FoV                 float64
}

// HasPeakFlux reports whether every source carries a peak flux value.
func (c *Catalog) HasPeakFlux() bool {
	return c.hasFlux(func(s *Source) float64 { return s.PeakFlux })
}

// HasIntFlux reports whether every source carries a total flux value.
func (c *Catalog) HasIntFlux() bool {
	return c.hasFlux(func(s *Source) float64 { return s.IntFlux })
}

func (c *Catalog) hasFlux(f func(*Source) float64) bool {
	for i := range c.Sources {
		if v := f(&c.Sources[i]); math.IsNaN(v) || v <= 0 {
			return false
		}
	}
	return true
}
