// SPDX-License-Identifier: Apache-2.0

package offsetvec

import "slices"

// View reads through a slice it does not own. It offers the same reads as
// [Vec] but no writes, and slicing a View only ever narrows it. Slices it
// returns from AsSlice and the range getters are copies.
//
// The zero View holds no elements. Obtain a populated one from [NewView],
// [Vec.View] or a Slice call.
type View[V Number] struct {
	base[V]
}

// NewView indexes data by [start, end] without copying it. It validates
// exactly as [New] does.
func NewView[V Number](data []V, start, end uint) (View[V], error) {
	if err := checkSpan(len(data), start, end); err != nil {
		return View[V]{}, err
	}
	return View[V]{base[V]{data: slices.Clip(data), span: Span{Start: start, End: end}}}, nil
}

// MustView is NewView for callers that treat a bad span as a programming
// error. It panics with the error NewView would return.
func MustView[V Number](data []V, start, end uint) View[V] {
	v, err := NewView(data, start, end)
	must(err)
	return v
}
