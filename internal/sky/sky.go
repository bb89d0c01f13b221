// Public domain.

// Package sky provides spherical geometry for positions on the celestial
// sphere.  Positions are right ascension and declination in degrees.
package sky

import (
	"math"

	"github.com/soniakeys/coord"
)

const degRad = math.Pi / 180

// Cart returns the unit vector of a sky position.
func Cart(ra, dec float64) coord.Cart {
	sd, cd := math.Sincos(dec * degRad)
	sr, cr := math.Sincos(ra * degRad)
	return coord.Cart{X: cr * cd, Y: sr * cd, Z: sd}
}

// Separation returns the great-circle angle in degrees between two sky
// positions.
//
// The chord length between the two unit vectors is converted with
// 2 asin(c/2), which keeps sub-arcsecond separations accurate where a
// dot-product acos loses precision.
func Separation(ra1, dec1, ra2, dec2 float64) float64 {
	a := Cart(ra1, dec1)
	b := Cart(ra2, dec2)
	var d coord.Cart
	d.Sub(&a, &b)
	c := .5 * math.Sqrt(d.Square())
	if c > 1 {
		c = 1
	}
	return 2 * math.Asin(c) / degRad
}

// Offsets returns the local tangent-plane offsets (dRA*, dDec) in degrees
// from origin to target.  dRA* is the RA difference scaled by cos(Dec) of
// the origin so that it measures true angular distance along the parallel;
// dDec is the plain declination difference.  The RA difference is taken
// the short way around the sphere.
func Offsets(ra0, dec0, ra1, dec1 float64) (dra, ddec float64) {
	dra = WrapDelta(ra1-ra0) * math.Cos(dec0*degRad)
	ddec = dec1 - dec0
	return
}

// WrapDelta reduces an RA difference in degrees to the range [-180, 180).
func WrapDelta(d float64) float64 {
	d = math.Mod(d, 360)
	switch {
	case d < -180:
		d += 360
	case d >= 180:
		d -= 360
	}
	return d
}

// DeprojectionFactor is the ratio of the flat local-offset metric to the
// great-circle separation between origin and target.  It is near 1 except
// at large separations or high declination, and defined as exactly 1 when
// the separation is zero.
func DeprojectionFactor(ra0, dec0, ra1, dec1 float64) float64 {
	sep := Separation(ra0, dec0, ra1, dec1)
	if sep == 0 {
		return 1
	}
	dra, ddec := Offsets(ra0, dec0, ra1, dec1)
	return math.Hypot(dra, ddec) / sep
}
