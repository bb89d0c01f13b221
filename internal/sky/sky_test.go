// Public domain.

package sky_test

import (
	"math"
	"testing"

	"catmatch/internal/sky"
)

var sepTestCases = []struct {
	ra1, dec1, ra2, dec2 float64
	want                 float64 // deg
	tol                  float64
}{
	{10, 20, 10, 20, 0, 0},
	{0, 0, 90, 0, 90, 1e-12},
	{0, 0, 180, 0, 180, 1e-12},
	{0, -90, 0, 90, 180, 1e-12},
	{10, 20, 10, 20.001, .001, 1e-12},
	{123.4, 45.6, 123.4, 45.6 + 1./3600, 1. / 3600, 1e-12},
	// one milliarcsecond, the stability floor the thresholds need
	{10, 0, 10 + 1e-3/3600, 0, 1e-3 / 3600, 1e-13},
	// short way around the wrap
	{359.999, 0, .001, 0, .002, 1e-12},
}

func TestSeparation(t *testing.T) {
	for _, c := range sepTestCases {
		got := sky.Separation(c.ra1, c.dec1, c.ra2, c.dec2)
		if math.Abs(got-c.want) > c.tol {
			t.Errorf("Separation(%g, %g, %g, %g) = %g, want %g",
				c.ra1, c.dec1, c.ra2, c.dec2, got, c.want)
		}
	}
}

func TestSeparationSymmetric(t *testing.T) {
	for _, c := range sepTestCases {
		ab := sky.Separation(c.ra1, c.dec1, c.ra2, c.dec2)
		ba := sky.Separation(c.ra2, c.dec2, c.ra1, c.dec1)
		if ab != ba {
			t.Errorf("asymmetric: %g vs %g", ab, ba)
		}
	}
}

func TestOffsets(t *testing.T) {
	// a degree of RA at dec 60 is half a degree on the sky
	dra, ddec := sky.Offsets(10, 60, 11, 60)
	if math.Abs(dra-.5) > 1e-6 || ddec != 0 {
		t.Fatalf("Offsets = %g, %g, want .5, 0", dra, ddec)
	}
	// offsets cross the wrap the short way
	dra, ddec = sky.Offsets(359.9, 0, .1, 0)
	if math.Abs(dra-.2) > 1e-12 || ddec != 0 {
		t.Fatalf("Offsets across wrap = %g, %g, want .2, 0", dra, ddec)
	}
	dra, ddec = sky.Offsets(.1, -30, 359.9, -30)
	if math.Abs(dra+.2*math.Cos(30*math.Pi/180)) > 1e-12 {
		t.Fatalf("Offsets across wrap = %g, %g", dra, ddec)
	}
}

func TestWrapDelta(t *testing.T) {
	for _, c := range []struct{ d, want float64 }{
		{0, 0}, {179, 179}, {180, -180}, {-180, -180},
		{359.998, -.002}, {-359.998, .002}, {720.5, .5},
	} {
		if got := sky.WrapDelta(c.d); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("WrapDelta(%g) = %g, want %g", c.d, got, c.want)
		}
	}
}

func TestDeprojectionFactor(t *testing.T) {
	// coincident positions must not divide by zero
	if f := sky.DeprojectionFactor(10, 20, 10, 20); f != 1 {
		t.Fatal("zero separation factor =", f, "want 1")
	}
	// near 1 at the separations the matcher sees
	cases := [][4]float64{
		{10, 20, 10.5, 20.2},
		{10, 80, 12, 80.5},
		{0, 0, .01, .01},
		{350, -60, 352, -61},
	}
	for _, c := range cases {
		f := sky.DeprojectionFactor(c[0], c[1], c[2], c[3])
		if f < .99 || f > 1.05 {
			t.Errorf("DeprojectionFactor(%v) = %g, want near 1", c, f)
		}
	}
	// the divergence grows toward the pole
	low := sky.DeprojectionFactor(10, 0, 13, 0)
	high := sky.DeprojectionFactor(10, 85, 13, 85)
	if high <= low {
		t.Errorf("expected larger factor at high declination: %g <= %g",
			high, low)
	}
}
