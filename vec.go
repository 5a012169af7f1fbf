// SPDX-License-Identifier: Apache-2.0

package offsetvec

import (
	"iter"
	"math"
)

// Vec owns a sequence of elements indexed by [Start, End].
//
// Vec never grows or shrinks, so views derived from it keep aliasing its
// storage for as long as they are reachable. The zero Vec holds no
// elements and every indexed read on it fails with *IndexingError.
type Vec[V Number] struct {
	base[V]
}

// New takes ownership of data and indexes it by [start, end]. It fails with
// *OrderError if start > end and with *LengthError unless len(data) equals
// end-start+1. The caller must not retain data.
func New[V Number](data []V, start, end uint) (*Vec[V], error) {
	if err := checkSpan(len(data), start, end); err != nil {
		return nil, err
	}
	return &Vec[V]{base[V]{data: data, span: Span{Start: start, End: end}, owned: true}}, nil
}

// Fill returns a Vec over [start, end] holding end-start+1 copies of value.
// A span too wide to allocate is reported as *LengthError with Len 0.
func Fill[V Number](value V, start, end uint) (*Vec[V], error) {
	if err := CheckOrder(start, end); err != nil {
		return nil, err
	}
	s := Span{Start: start, End: end}
	n, ok := s.Len()
	if !ok {
		return nil, &LengthError{Start: start, End: end}
	}
	data := make([]V, n)
	if value != 0 {
		for i := range data {
			data[i] = value
		}
	}
	return &Vec[V]{base[V]{data: data, span: s, owned: true}}, nil
}

// Zero returns a Vec over [start, end] holding the zero value.
func Zero[V Number](start, end uint) (*Vec[V], error) {
	return Fill(V(0), start, end)
}

// Of builds a Vec whose first element sits at start, so that
// Of(5, 5, 6, 7) indexes 5, 6 and 7 by themselves.
func Of[V Number](start uint, values ...V) (*Vec[V], error) {
	if len(values) == 0 {
		return nil, &LengthError{Start: start, End: start}
	}
	d := uint(len(values) - 1)
	if start > math.MaxUint-d {
		return nil, &OrderError{Start: start, End: start + d}
	}
	return New(values, start, start+d)
}

func MustOf[V Number](start uint, values ...V) *Vec[V] {
	v, err := Of(start, values...)
	must(err)
	return v
}

// Ref returns a pointer to the element at index, or nil if index is outside
// [Start, End].
func (v *Vec[V]) Ref(index uint) *V {
	pos, ok := v.offset(index)
	if !ok {
		return nil
	}
	return &v.data[pos]
}

// Set writes value at index. Like a slice assignment it panics, with
// *IndexingError, when index is out of range.
func (v *Vec[V]) Set(index uint, value V) {
	p := v.Ref(index)
	if p == nil {
		panic(&IndexingError{Index: index})
	}
	*p = value
}

// Refs yields a pointer to each stored element in position order.
func (v *Vec[V]) Refs() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		for i := range v.data {
			if !yield(&v.data[i]) {
				return
			}
		}
	}
}

// View wraps the whole of v's storage in a View with the same span.
func (v *Vec[V]) View() (View[V], error) {
	return NewView(v.data, v.span.Start, v.span.End)
}
