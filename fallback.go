// SPDX-License-Identifier: Apache-2.0

package offsetvec

import (
	"errors"
	"fmt"
	"iter"
)

// Fallback pairs a span with the values read below and above it.
type Fallback[T Number] struct {
	Span
	Below, Above T
}

func (f Fallback[T]) String() string {
	return fmt.Sprintf("%s below=%v above=%v", f.Span, f.Below, f.Above)
}

// CheckInterval fails with *IncompatibleIntervalError unless both spans are
// equal.
func (f Fallback[T]) CheckInterval(other Fallback[T]) error {
	if f.Span == other.Span {
		return nil
	}
	return &IncompatibleIntervalError{Span: f.Span, Other: other.Span}
}

// CheckFallback fails with *IncompatibleFallbackError unless both fallback
// pairs are equal. NaN fallbacks never compare equal.
func (f Fallback[T]) CheckFallback(other Fallback[T]) error {
	if f.Below == other.Below && f.Above == other.Above {
		return nil
	}
	return &IncompatibleFallbackError[T]{
		Below:      f.Below,
		Above:      f.Above,
		OtherBelow: other.Below,
		OtherAbove: other.Above,
	}
}

// Check runs CheckInterval and then CheckFallback.
func (f Fallback[T]) Check(other Fallback[T]) error {
	if err := f.CheckInterval(other); err != nil {
		return err
	}
	return f.CheckFallback(other)
}

// IsIncompatibleFallbackErr reports whether err was caused by two fallback
// vectors of element type T with different fallback values.
func IsIncompatibleFallbackErr[T Number](err error) bool {
	var e *IncompatibleFallbackError[T]
	return errors.As(err, &e)
}

// NewFallbackMeta returns the Fallback for [start, end] with the given
// values read below and above it. It fails with *OrderError if start > end.
func NewFallbackMeta[T Number](start, end uint, below, above T) (Fallback[T], error) {
	if err := CheckOrder(start, end); err != nil {
		return Fallback[T]{}, err
	}
	return Fallback[T]{Span: Span{Start: start, End: end}, Below: below, Above: above}, nil
}

// NewSingleFallbackMeta is NewFallbackMeta with the same value on both sides.
func NewSingleFallbackMeta[T Number](start, end uint, fallback T) (Fallback[T], error) {
	return NewFallbackMeta(start, end, fallback, fallback)
}

// FallbackVec owns elements indexed by [Start, End] and answers reads
// outside that range with fallback values instead of failing. It supports
// elementwise arithmetic with another FallbackVec carrying the same
// [Fallback].
//
// The zero FallbackVec holds no elements: At returns the zero value for
// every index and Set and Ref find nothing to address.
type FallbackVec[T Number] struct {
	data []T
	meta Fallback[T]
}

// NewFallbackFrom takes ownership of data and pairs it with meta. The span
// in meta is checked again, so a hand-built Fallback cannot slip past
// *OrderError or *LengthError.
func NewFallbackFrom[T Number](data []T, meta Fallback[T]) (*FallbackVec[T], error) {
	if err := checkSpan(len(data), meta.Start, meta.End); err != nil {
		return nil, err
	}
	return &FallbackVec[T]{data: data, meta: meta}, nil
}

// FillFallbackFrom returns a FallbackVec over meta's span holding copies of
// value.
func FillFallbackFrom[T Number](value T, meta Fallback[T]) (*FallbackVec[T], error) {
	v, err := Fill(value, meta.Start, meta.End)
	if err != nil {
		return nil, err
	}
	return &FallbackVec[T]{data: v.data, meta: meta}, nil
}

func NewFallback[T Number](data []T, start, end uint, below, above T) (*FallbackVec[T], error) {
	meta, err := NewFallbackMeta(start, end, below, above)
	if err != nil {
		return nil, err
	}
	return NewFallbackFrom(data, meta)
}

func FillFallback[T Number](value T, start, end uint, below, above T) (*FallbackVec[T], error) {
	meta, err := NewFallbackMeta(start, end, below, above)
	if err != nil {
		return nil, err
	}
	return FillFallbackFrom(value, meta)
}

func ZeroFallback[T Number](start, end uint, below, above T) (*FallbackVec[T], error) {
	return FillFallback(T(0), start, end, below, above)
}

func (v *FallbackVec[T]) Meta() Fallback[T] { return v.meta }
func (v *FallbackVec[T]) Start() uint       { return v.meta.Start }
func (v *FallbackVec[T]) End() uint         { return v.meta.End }
func (v *FallbackVec[T]) Len() int          { return len(v.data) }

// AsSlice returns the stored elements. The slice aliases v's storage.
func (v *FallbackVec[T]) AsSlice() []T {
	return v.data[:len(v.data):len(v.data)]
}

func (v *FallbackVec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.data {
			if !yield(x) {
				return
			}
		}
	}
}

// At returns the element at index. It is defined for every index: Below
// is returned under Start and Above past End.
func (v *FallbackVec[T]) At(index uint) T {
	switch {
	case index < v.meta.Start:
		return v.meta.Below
	case index > v.meta.End:
		return v.meta.Above
	}
	if p := v.Ref(index); p != nil {
		return *p
	}
	var zero T
	return zero
}

// Ref returns a pointer to the element at index, or nil if index is outside
// [Start, End]. Fallback values are not addressable.
func (v *FallbackVec[T]) Ref(index uint) *T {
	pos, ok := v.meta.Offset(index)
	if !ok || pos >= len(v.data) {
		return nil
	}
	return &v.data[pos]
}

// Set writes value at index. There is nowhere to write outside
// [Start, End], so an out of range index panics with *IndexingError.
func (v *FallbackVec[T]) Set(index uint, value T) {
	p := v.Ref(index)
	if p == nil {
		panic(&IndexingError{Index: index})
	}
	*p = value
}

// check is meta.Check plus a storage length match, which only a zero
// FallbackVec paired with a populated one can fail.
func (v *FallbackVec[T]) check(other *FallbackVec[T]) error {
	if err := v.meta.Check(other.meta); err != nil {
		return err
	}
	if len(v.data) != len(other.data) {
		return &IncompatibleIntervalError{Span: v.meta.Span, Other: other.meta.Span}
	}
	return nil
}

func (v *FallbackVec[T]) combine(other *FallbackVec[T], op func(a, b T) T) (*FallbackVec[T], error) {
	if err := v.check(other); err != nil {
		return nil, err
	}
	out := make([]T, len(v.data))
	for i := range out {
		out[i] = op(v.data[i], other.data[i])
	}
	return &FallbackVec[T]{data: out, meta: v.meta}, nil
}

func (v *FallbackVec[T]) apply(other *FallbackVec[T], op func(a, b T) T) error {
	if err := v.check(other); err != nil {
		return err
	}
	for i := range v.data {
		v.data[i] = op(v.data[i], other.data[i])
	}
	return nil
}

func add[T Number](a, b T) T { return a + b }
func sub[T Number](a, b T) T { return a - b }
func mul[T Number](a, b T) T { return a * b }
func div[T Number](a, b T) T { return a / b }

// Add returns v+other elementwise. It fails with *IncompatibleIntervalError
// or *IncompatibleFallbackError[T] unless both carry the same Fallback.
func (v *FallbackVec[T]) Add(other *FallbackVec[T]) (*FallbackVec[T], error) {
	return v.combine(other, add[T])
}

func (v *FallbackVec[T]) Sub(other *FallbackVec[T]) (*FallbackVec[T], error) {
	return v.combine(other, sub[T])
}

func (v *FallbackVec[T]) Mul(other *FallbackVec[T]) (*FallbackVec[T], error) {
	return v.combine(other, mul[T])
}

// Div divides elementwise. Integer division by a zero element panics as it
// would for the element type.
func (v *FallbackVec[T]) Div(other *FallbackVec[T]) (*FallbackVec[T], error) {
	return v.combine(other, div[T])
}

// AddAssign adds other into v. On error v is left untouched.
func (v *FallbackVec[T]) AddAssign(other *FallbackVec[T]) error {
	return v.apply(other, add[T])
}

func (v *FallbackVec[T]) SubAssign(other *FallbackVec[T]) error {
	return v.apply(other, sub[T])
}

func (v *FallbackVec[T]) MulAssign(other *FallbackVec[T]) error {
	return v.apply(other, mul[T])
}

func (v *FallbackVec[T]) DivAssign(other *FallbackVec[T]) error {
	return v.apply(other, div[T])
}

// MustAddAssign is AddAssign for callers that treat incompatible operands
// as a programming error. It panics with the compatibility error.
func (v *FallbackVec[T]) MustAddAssign(other *FallbackVec[T]) {
	must(v.AddAssign(other))
}

func (v *FallbackVec[T]) MustSubAssign(other *FallbackVec[T]) {
	must(v.SubAssign(other))
}

func (v *FallbackVec[T]) MustMulAssign(other *FallbackVec[T]) {
	must(v.MulAssign(other))
}

func (v *FallbackVec[T]) MustDivAssign(other *FallbackVec[T]) {
	must(v.DivAssign(other))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func (v *FallbackVec[T]) mapped(f func(T) T) *FallbackVec[T] {
	out := make([]T, len(v.data))
	for i, x := range v.data {
		out[i] = f(x)
	}
	return &FallbackVec[T]{data: out, meta: v.meta}
}

// Neg negates every stored element. The fallback values are kept as they
// are.
func (v *FallbackVec[T]) Neg() *FallbackVec[T] {
	return v.mapped(func(x T) T { return -x })
}

// MulScalar multiplies every stored element by k. Overflow is not checked.
func (v *FallbackVec[T]) MulScalar(k T) *FallbackVec[T] {
	return v.mapped(func(x T) T { return x * k })
}

// DivScalar divides every stored element by k. For integer T, k must not be
// zero.
func (v *FallbackVec[T]) DivScalar(k T) *FallbackVec[T] {
	return v.mapped(func(x T) T { return x / k })
}
