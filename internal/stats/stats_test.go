// Public domain.

package stats

import (
	"math"
	"testing"

	"catmatch/internal/catalog"
)

func statCatalogs() (ext, pt *catalog.Catalog) {
	ext = &catalog.Catalog{
		Name: "NVSS",
		Beam: catalog.Beam{Freq: 1400},
		Sources: []catalog.Source{
			{RA: 10, Dec: 0, IntFlux: 1, PeakFlux: .8},
			{RA: 10.1, Dec: 0, IntFlux: 2, PeakFlux: 1.5},
		},
	}
	pt = &catalog.Catalog{
		Name: "pointing",
		Beam: catalog.Beam{Freq: 150},
		Sources: []catalog.Source{
			{RA: 10, Dec: .001, IntFlux: 4, PeakFlux: 3},
			{RA: 10.1, Dec: 0, IntFlux: 5, PeakFlux: 4},
			{RA: 10.1002, Dec: 0, IntFlux: 6, PeakFlux: 5},
		},
		CenterRA: 10, CenterDec: 0,
	}
	return
}

func TestComputeFluxRatio(t *testing.T) {
	ext, pt := statCatalogs()
	r, err := Compute(ext, pt, [][]int{{0}, {1, 2}}, FluxTotal, .8)
	if err != nil {
		t.Fatal(err)
	}
	// S ~ freq^-alpha brings the pointing fluxes to the external frequency
	fcorr := math.Pow(150./1400, -.8)
	want := []float64{4 / (1 * fcorr), (5 + 6) / (2 * fcorr)}
	if len(r.DFlux) != len(want) {
		t.Fatal("DFlux length =", len(r.DFlux))
	}
	for i, w := range want {
		if math.Abs(r.DFlux[i]-w) > 1e-12*w {
			t.Errorf("DFlux[%d] = %g, want %g", i, r.DFlux[i], w)
		}
	}
	if r.FluxClass[0] != 1 || r.FluxClass[1] != 2 {
		t.Fatal("FluxClass =", r.FluxClass)
	}
}

func TestComputeOffsets(t *testing.T) {
	ext, pt := statCatalogs()
	r, err := Compute(ext, pt, [][]int{{0}, {1, 2}}, FluxTotal, .8)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.DRA) != 3 || len(r.DDec) != 3 {
		t.Fatal("offset series lengths =", len(r.DRA), len(r.DDec))
	}
	// first pair is offset .001 deg north only
	if math.Abs(r.DRA[0]) > 1e-9 || math.Abs(r.DDec[0]-3.6) > 1e-9 {
		t.Errorf("first pair offsets = %g, %g arcsec", r.DRA[0], r.DDec[0])
	}
	// second pair is coincident
	if r.DRA[1] != 0 || r.DDec[1] != 0 {
		t.Errorf("coincident pair offsets = %g, %g", r.DRA[1], r.DDec[1])
	}
	if r.PairClass[0] != 1 || r.PairClass[1] != 2 || r.PairClass[2] != 2 {
		t.Fatal("PairClass =", r.PairClass)
	}
	if r.Separation[0] != 0 {
		t.Error("separation at pointing center =", r.Separation[0])
	}
	if math.Abs(r.Separation[1]-.1) > 1e-9 {
		t.Error("separation of second source =", r.Separation[1])
	}
}

func TestComputeClasses(t *testing.T) {
	ext, pt := statCatalogs()
	r, err := Compute(ext, pt, [][]int{{0}, {1, 2}}, FluxPeak, .8)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"dRA", "dDEC"} {
		m, ok := r.OffsetStats[name]
		if !ok {
			t.Fatal("missing offset statistic", name)
		}
		if m[FullClass].Count != 3 || m["1"].Count != 1 || m["2"].Count != 2 {
			t.Fatalf("%s class counts: Full %d, 1 %d, 2 %d", name,
				m[FullClass].Count, m["1"].Count, m["2"].Count)
		}
		if _, ok := m["3"]; ok {
			t.Fatal("summary for an unobserved class")
		}
	}
	m := r.FluxStats["dFlux"]
	if m[FullClass].Count != 2 || m["1"].Count != 1 || m["2"].Count != 1 {
		t.Fatal("dFlux class counts:", m)
	}
}

func TestComputeUnmatchedSkipped(t *testing.T) {
	ext, pt := statCatalogs()
	r, err := Compute(ext, pt, [][]int{{0}, nil}, FluxTotal, .8)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.DRA) != 1 || len(r.DFlux) != 1 {
		t.Fatal("unmatched source contributed:", len(r.DRA), len(r.DFlux))
	}
}

func TestComputeErrors(t *testing.T) {
	ext, pt := statCatalogs()

	_, err := Compute(ext, pt, [][]int{{0}, nil}, "Mean", .8)
	fe, ok := err.(*UnsupportedFluxTypeError)
	if !ok || fe.Catalog != "" {
		t.Fatalf("invalid flux type err = %v", err)
	}

	noPeak := *ext
	noPeak.Sources = append([]catalog.Source(nil), ext.Sources...)
	noPeak.Sources[1].PeakFlux = math.NaN()
	_, err = Compute(&noPeak, pt, [][]int{{0}, nil}, FluxPeak, .8)
	fe, ok = err.(*UnsupportedFluxTypeError)
	if !ok || fe.Catalog != "NVSS" {
		t.Fatalf("missing peak flux err = %v", err)
	}

	if _, err = Compute(ext, pt, [][]int{{0}}, FluxTotal, .8); err == nil {
		t.Fatal("misaligned match result accepted")
	}
	if _, err = Compute(ext, pt, [][]int{{0}, nil}, FluxTotal, math.NaN()); err == nil {
		t.Fatal("NaN spectral index accepted")
	}
	noFreq := *pt
	noFreq.Beam.Freq = 0
	if _, err = Compute(ext, &noFreq, [][]int{{0}, nil}, FluxTotal, .8); err == nil {
		t.Fatal("missing frequency accepted")
	}
}

// Reordering the pointing catalog must not change any aggregate.
func TestComputePermutation(t *testing.T) {
	ext, pt := statCatalogs()
	r1, err := Compute(ext, pt, [][]int{{0}, {1, 2}}, FluxTotal, .8)
	if err != nil {
		t.Fatal(err)
	}
	swapped := *pt
	swapped.Sources = []catalog.Source{
		pt.Sources[0], pt.Sources[2], pt.Sources[1]}
	r2, err := Compute(ext, &swapped, [][]int{{0}, {2, 1}}, FluxTotal, .8)
	if err != nil {
		t.Fatal(err)
	}
	cmp := func(name string, a, b map[string]map[string]Summary) {
		for stat, am := range a {
			for class, as := range am {
				bs, ok := b[stat][class]
				if !ok {
					t.Fatalf("%s %s class %s missing", name, stat, class)
				}
				if as.Count != bs.Count ||
					!near(as.Min, bs.Min) || !near(as.Max, bs.Max) ||
					!near(as.Mean, bs.Mean) || !near(as.Std, bs.Std) ||
					!near(as.Median, bs.Median) {
					t.Errorf("%s %s class %s: %+v != %+v",
						name, stat, class, as, bs)
				}
			}
		}
	}
	cmp("offset", r1.OffsetStats, r2.OffsetStats)
	cmp("flux", r1.FluxStats, r2.FluxStats)
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}

func TestSummarize(t *testing.T) {
	s := summarize([]float64{4, 1, 3, 2})
	if s.Min != 1 || s.Max != 4 || s.Count != 4 {
		t.Fatal("summarize =", s)
	}
	if s.Mean != 2.5 || s.Median != 2.5 {
		t.Fatal("mean, median =", s.Mean, s.Median)
	}
	// population standard deviation, not sample
	if math.Abs(s.Std-math.Sqrt(1.25)) > 1e-12 {
		t.Fatal("std =", s.Std)
	}
	if s := summarize([]float64{7, 1, 5}); s.Median != 5 {
		t.Fatal("odd median =", s.Median)
	}
	if s := summarize(nil); s != (Summary{}) {
		t.Fatal("empty summary =", s)
	}
}
