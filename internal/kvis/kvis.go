// Public domain.

// Package kvis writes karma annotation files showing the outcome of a
// matching run: every ellipse is drawn at the sigma extent used for
// matching, colored by its role.
package kvis

import (
	"bufio"
	"fmt"
	"io"

	"catmatch/internal/catalog"
	"catmatch/internal/match"
)

// Write writes annotations for the matching run to w.  External sources
// are blue when matched and black when not; matched pointing sources are
// red.  When includeUnmatched is set, pointing sources without a
// counterpart are drawn green as well.
func Write(w io.Writer, ext, pointing *catalog.Catalog, matches [][]int,
	sigma float64, includeUnmatched bool) error {

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# catmatch annotations: %s matched to %s\n",
		ext.Name, pointing.Name)
	fmt.Fprintf(bw, "# ellipses drawn at %g sigma extent\n", sigma)
	fmt.Fprintln(bw, "COORD W")
	fmt.Fprintln(bw, "PA SKY")

	fs := match.FWHMToSigma(sigma)
	ellipse := func(s *catalog.Source) {
		fmt.Fprintf(bw, "ELLIPSE %.6f %.6f %.6f %.6f %.1f\n",
			s.RA, s.Dec, fs*s.Maj*.5, fs*s.Min*.5, s.PA)
	}

	matchedPt := make([]bool, len(pointing.Sources))

	fmt.Fprintln(bw, "COLOR BLUE")
	for i, set := range matches {
		if len(set) == 0 {
			continue
		}
		ellipse(&ext.Sources[i])
		for _, j := range set {
			matchedPt[j] = true
		}
	}

	fmt.Fprintln(bw, "COLOR BLACK")
	for i, set := range matches {
		if len(set) == 0 {
			ellipse(&ext.Sources[i])
		}
	}

	fmt.Fprintln(bw, "COLOR RED")
	for j := range pointing.Sources {
		if matchedPt[j] {
			ellipse(&pointing.Sources[j])
		}
	}

	if includeUnmatched {
		fmt.Fprintln(bw, "COLOR GREEN")
		for j := range pointing.Sources {
			if !matchedPt[j] {
				ellipse(&pointing.Sources[j])
			}
		}
	}
	return bw.Flush()
}
