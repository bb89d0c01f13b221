// Public domain.

package match

import (
	"runtime"

	"catmatch/internal/catalog"
)

// MatchAll matches every external source against the pointing catalog and
// returns the match sets index-aligned with the external catalog.  The
// relation is one-to-many and sets may be empty.  The result is a pure
// function of its inputs; external sources are independent, so they are
// processed by a bounded worker pool with each worker writing only its
// own result slot.
func MatchAll(ext, pointing *catalog.Catalog, sigma, searchDistDeg float64) ([][]int, error) {
	if err := ValidateParams(sigma, searchDistDeg); err != nil {
		return nil, err
	}
	if err := ValidateCatalog(ext); err != nil {
		return nil, err
	}
	if err := ValidateCatalog(pointing); err != nil {
		return nil, err
	}
	m, err := NewMatcher(pointing)
	if err != nil {
		return nil, err
	}

	results := make([][]int, len(ext.Sources))
	errs := make([]error, len(ext.Sources))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(ext.Sources) {
		workers = len(ext.Sources)
	}
	if workers < 1 {
		return results, nil
	}
	idxCh := make(chan int)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := range idxCh {
				r, err := m.Match(ext.Sources[i], sigma, searchDistDeg)
				if err != nil {
					if ce, ok := err.(*CoarseExactMismatchError); ok {
						ce.External = i
					}
					errs[i] = err
					continue
				}
				results[i] = r
			}
			done <- struct{}{}
		}()
	}
	for i := range ext.Sources {
		idxCh <- i
	}
	close(idxCh)
	for w := 0; w < workers; w++ {
		<-done
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
