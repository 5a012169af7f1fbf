// SPDX-License-Identifier: Apache-2.0

package span

import (
	"fmt"
	"math"

	"fortio.org/safecast"
)

// Span represents the span between two points on a number line (inclusive
// at both ends).
//
// See [Span.Ordered] and [Span.Fits] for the constraints a span must satisfy
// before it may describe a backing store.
type Span struct {
	Start, End uint
}

// Ordered reports whether start <= end. A span with start == end describes
// exactly one element.
func Ordered(start, end uint) bool {
	return start <= end
}

// Fits reports whether a backing store of n elements has exactly the length
// described by [start, end], that is n == end-start+1. It never overflows:
// the comparison is done as n-1 == end-start once both sides are known to
// be in range.
func Fits(n int, start, end uint) bool {
	if n <= 0 || start > end {
		return false
	}
	return uint(n-1) == end-start
}

func (s Span) Ordered() bool {
	return Ordered(s.Start, s.End)
}

func (s Span) Fits(n int) bool {
	return Fits(n, s.Start, s.End)
}

// Len returns the number of elements the span describes. ok is false when
// the span is not ordered or the length does not fit in an int.
func (s Span) Len() (n int, ok bool) {
	if !s.Ordered() {
		return 0, false
	}
	d, err := safecast.Conv[int](s.End - s.Start)
	if err != nil || d == math.MaxInt {
		return 0, false
	}
	return d + 1, true
}

// Contains returns true if index lies within [Start, End].
func (s Span) Contains(index uint) bool {
	return index >= s.Start && index <= s.End
}

// Covers returns true if the other span is completely contained by the
// receiving span. It returns false even for partially overlapping spans.
func (s Span) Covers(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Offset maps index to its 0-based position in a backing store laid out
// over s. The lower bound is compared before subtracting, so an index
// below Start is reported as not found rather than wrapping around.
func (s Span) Offset(index uint) (pos int, ok bool) {
	if !s.Contains(index) {
		return 0, false
	}
	pos, err := safecast.Conv[int](index - s.Start)
	if err != nil {
		return 0, false
	}
	return pos, true
}

// Position converts a native 0-based position into an int, reporting
// false if it cannot address a store of n elements.
func Position(pos uint, n int) (int, bool) {
	p, err := safecast.Conv[int](pos)
	if err != nil || p >= n {
		return 0, false
	}
	return p, true
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d]", s.Start, s.End)
}

// Window maps the half-open index range [start, end) onto positions in a
// store laid out over s. end may be one past s.End, so that the empty
// range at the tail can be expressed.
func (s Span) Window(start, end uint) (from, to int, ok bool) {
	if start > end || start < s.Start {
		return 0, 0, false
	}
	if end > s.End && end-s.End != 1 {
		return 0, 0, false
	}
	from, err := safecast.Conv[int](start - s.Start)
	if err != nil {
		return 0, 0, false
	}
	to, err = safecast.Conv[int](end - s.Start)
	if err != nil {
		return 0, 0, false
	}
	return from, to, true
}
