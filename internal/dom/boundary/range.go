package boundary

import "fmt"

// Range is an ordered pair of boundaries with Start <= End.
type Range struct {
	Start Boundary
	End   Boundary
}

// NewRange creates a range from two boundaries in either order.
func NewRange(a, b Boundary) Range {
	if Compare(a, b) > 0 {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Collapsed returns a range with both ends at b.
func Collapsed(b Boundary) Range {
	return Range{Start: b, End: b}
}

// IsCollapsed returns true if start and end are equal.
func (r Range) IsCollapsed() bool {
	return r.Start.Equal(r.End)
}

// Equal returns true if both ends match.
func (r Range) Equal(other Range) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// Boundaries returns the range as a boundary pair.
func (r Range) Boundaries() [2]Boundary {
	return [2]Boundary{r.Start, r.End}
}

// String returns a description for logs and test failures.
func (r Range) String() string {
	if r.IsCollapsed() {
		return fmt.Sprintf("Range(%s)", r.Start)
	}
	return fmt.Sprintf("Range(%s→%s)", r.Start, r.End)
}
