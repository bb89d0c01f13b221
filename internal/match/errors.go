// Public domain.

package match

import "fmt"

// InvalidGeometryError reports a non-finite, negative or otherwise
// degenerate axis or position value in a catalog record.
type InvalidGeometryError struct {
	Catalog string
	Index   int
	Field   string
	Value   float64
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("catalog %s source %d: invalid %s %g",
		e.Catalog, e.Index, e.Field, e.Value)
}

// InconsistentCatalogError reports a catalog-level field required for the
// requested operation that the catalog does not carry.
type InconsistentCatalogError struct {
	Catalog string
	Field   string
}

func (e *InconsistentCatalogError) Error() string {
	return fmt.Sprintf("catalog %s: missing %s", e.Catalog, e.Field)
}

// CoarseExactMismatchError reports an internal consistency fault: the
// exact polygon test cleared a pair the coarse minor-axis bound had
// already accepted as a definite match.  It is fatal and never swallowed.
type CoarseExactMismatchError struct {
	External int // -1 when unknown to the caller
	Pointing int
}

func (e *CoarseExactMismatchError) Error() string {
	return fmt.Sprintf(
		"exact overlap test cleared definite match (external %d, pointing %d)",
		e.External, e.Pointing)
}
