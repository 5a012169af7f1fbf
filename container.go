// SPDX-License-Identifier: Apache-2.0

// Package offsetvec provides sequences indexed by an arbitrary inclusive
// range [start, end] rather than [0, len).
//
// Every container keeps the number of stored elements equal to the length
// of its span; the constructors refuse anything else. [Vec] owns its
// storage, [View] reads through storage owned by someone else, and both
// satisfy [Container]. [FallbackVec] is a separate family whose reads
// never fail: indices outside the span yield fallback values.
//
// Containers are not safe for concurrent use. A View aliases the storage it
// was derived from and observes writes made through the owning Vec.
package offsetvec

import (
	"iter"
	"slices"

	"github.com/digitalocean/go-offsetvec/internal/span"
)

// Number restricts elements to copyable scalar types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Span is an inclusive index range [Start, End].
type Span = span.Span

// Bounded is anything with an inclusive [Start, End] range.
type Bounded interface {
	Start() uint
	End() uint
}

// Container is the read surface shared by [Vec] and [View]. Slices returned
// through a View are copies; only a Vec hands out its own storage.
type Container[V Number] interface {
	Bounded
	Span() Span
	Len() int
	AsSlice() []V
	Get(index uint) (V, error)
	GetAbsolute(pos uint) (V, error)
	At(index uint) V
	GetRange(start, end uint) ([]V, error)
	GetRangeInclusive(start, end uint) ([]V, error)
	MustGetRange(start, end uint) []V
	MustGetRangeInclusive(start, end uint) []V
	Slice(start, end uint) (View[V], error)
	Values() iter.Seq[V]
	All() iter.Seq2[uint, V]
	Compatible(other Bounded) error
}

var (
	_ Container[int]     = (*Vec[int])(nil)
	_ Container[float64] = View[float64]{}
)

// Compatible succeeds only if a and b cover exactly the same span. It must
// hold before any operation that pairs elements of a and b index for index.
func Compatible(a, b Bounded) error {
	if a.Start() == b.Start() && a.End() == b.End() {
		return nil
	}
	return &CompatibilityError{
		Start:      a.Start(),
		End:        a.End(),
		OtherStart: b.Start(),
		OtherEnd:   b.End(),
	}
}

// Zip pairs the elements of a and b index for index. It fails with
// *CompatibilityError if their spans differ.
func Zip[V, W Number](a Container[V], b Container[W]) (iter.Seq2[V, W], error) {
	if err := Compatible(a, b); err != nil {
		return nil, err
	}
	return func(yield func(V, W) bool) {
		for i := range uint(a.Len()) {
			x, _ := a.GetAbsolute(i)
			y, _ := b.GetAbsolute(i)
			if !yield(x, y) {
				return
			}
		}
	}, nil
}

// base is the read path shared by Vec and View. data always holds exactly
// span.Len() elements. Slices handed out by a base that does not own data
// are copies, so a View can never write to its owner.
type base[V Number] struct {
	data  []V
	span  Span
	owned bool
}

func (b base[V]) Start() uint { return b.span.Start }
func (b base[V]) End() uint   { return b.span.End }
func (b base[V]) Span() Span  { return b.span }
func (b base[V]) Len() int    { return len(b.data) }

func (b base[V]) out(s []V) []V {
	if b.owned {
		return s[:len(s):len(s)]
	}
	return slices.Clone(s)
}

// offset is span.Offset guarded against a zero container with no storage.
func (b base[V]) offset(index uint) (int, bool) {
	pos, ok := b.span.Offset(index)
	return pos, ok && pos < len(b.data)
}

// AsSlice returns the stored elements in position order. For a Vec the slice
// aliases its storage; for a View it is a copy.
func (b base[V]) AsSlice() []V {
	return b.out(b.data)
}

// Get returns the element at index, or *IndexingError if index is outside
// [Start, End].
func (b base[V]) Get(index uint) (V, error) {
	pos, ok := b.offset(index)
	if !ok {
		var zero V
		return zero, &IndexingError{Index: index}
	}
	return b.data[pos], nil
}

// GetAbsolute ignores the span and indexes the storage by its native
// 0-based position.
func (b base[V]) GetAbsolute(pos uint) (V, error) {
	p, ok := span.Position(pos, len(b.data))
	if !ok {
		var zero V
		return zero, &IndexingError{Index: pos}
	}
	return b.data[p], nil
}

// At is Get for callers that treat an out of range index as a programming
// error: it panics with *IndexingError.
func (b base[V]) At(index uint) V {
	v, err := b.Get(index)
	if err != nil {
		panic(err)
	}
	return v
}

// Slice returns a view of [start, end]. The requested range must lie within
// the receiver's own span; the error names start if it is below Start,
// otherwise end.
func (b base[V]) Slice(start, end uint) (View[V], error) {
	if !b.span.Covers(Span{Start: start, End: end}) {
		index := end
		if start < b.span.Start {
			index = start
		}
		return View[V]{}, &IndexingError{Index: index}
	}
	if err := CheckOrder(start, end); err != nil {
		return View[V]{}, err
	}
	from, ok := b.offset(start)
	if !ok {
		return View[V]{}, &IndexingError{Index: start}
	}
	to, ok := b.offset(end)
	if !ok {
		return View[V]{}, &IndexingError{Index: end}
	}
	return NewView(b.data[from:to+1], start, end)
}

// GetRange returns the elements in the half-open range [start, end). end may
// be End()+1, which with start == end yields the empty tail.
func (b base[V]) GetRange(start, end uint) ([]V, error) {
	if err := CheckOrder(start, end); err != nil {
		return nil, err
	}
	if start < b.span.Start {
		return nil, &IndexingError{Index: b.span.Start}
	}
	from, to, ok := b.span.Window(start, end)
	if !ok || to > len(b.data) {
		return nil, &IndexingError{Index: b.span.End}
	}
	return b.out(b.data[from:to]), nil
}

// GetRangeInclusive returns the elements in [start, end].
func (b base[V]) GetRangeInclusive(start, end uint) ([]V, error) {
	if err := CheckOrder(start, end); err != nil {
		return nil, err
	}
	if start < b.span.Start {
		return nil, &IndexingError{Index: b.span.Start}
	}
	if end > b.span.End {
		return nil, &IndexingError{Index: b.span.End}
	}
	from, _ := b.offset(start)
	to, ok := b.offset(end)
	if !ok {
		return nil, &IndexingError{Index: b.span.End}
	}
	return b.out(b.data[from : to+1]), nil
}

// MustGetRange is GetRange for callers that treat a bad range as a
// programming error. It panics with the error GetRange would return.
func (b base[V]) MustGetRange(start, end uint) []V {
	r, err := b.GetRange(start, end)
	must(err)
	return r
}

func (b base[V]) MustGetRangeInclusive(start, end uint) []V {
	r, err := b.GetRangeInclusive(start, end)
	must(err)
	return r
}

// Values yields the stored elements in position order.
func (b base[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range b.data {
			if !yield(v) {
				return
			}
		}
	}
}

// All yields each element with its offset index.
func (b base[V]) All() iter.Seq2[uint, V] {
	return func(yield func(uint, V) bool) {
		for i, v := range b.data {
			if !yield(b.span.Start+uint(i), v) {
				return
			}
		}
	}
}

func (b base[V]) Compatible(other Bounded) error {
	return Compatible(b, other)
}
