// SPDX-License-Identifier: Apache-2.0

package offsetvec

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustFallback[T Number](t *testing.T, data []T, start, end uint, below, above T) *FallbackVec[T] {
	t.Helper()
	v, err := NewFallback(data, start, end, below, above)
	if err != nil {
		t.Fatalf("new fallback vec: %v", err)
	}
	return v
}

func TestFallbackAt(t *testing.T) {
	v := mustFallback(t, []int{10, 20, 30}, 0, 2, -1, -2)

	tests := []struct {
		index uint
		want  int
	}{
		{index: 0, want: 10},
		{index: 1, want: 20},
		{index: 2, want: 30},
		{index: 3, want: -2},
		{index: math.MaxUint, want: -2},
	}
	for _, tt := range tests {
		if got := v.At(tt.index); got != tt.want {
			t.Errorf("index %d: want %d, got %d", tt.index, tt.want, got)
		}
	}

	w := mustFallback(t, []int{1, 2}, 5, 6, -1, -2)
	if got := w.At(4); got != -1 {
		t.Errorf("below the span: want -1, got %d", got)
	}
	if got := w.At(0); got != -1 {
		t.Errorf("below the span: want -1, got %d", got)
	}
}

func TestFallbackConstruction(t *testing.T) {
	_, err := NewFallback([]int{1, 2}, 0, 2, 0, 0)
	if diff := cmp.Diff(&LengthError{Len: 2, Start: 0, End: 2}, err); diff != "" {
		t.Errorf("unexpected error (-want +got):\n%s", diff)
	}
	_, err = FillFallback(1, 3, 2, 0, 0)
	if diff := cmp.Diff(&OrderError{Start: 3, End: 2}, err); diff != "" {
		t.Errorf("unexpected error (-want +got):\n%s", diff)
	}

	z, err := ZeroFallback[float64](1, 3, math.Inf(-1), math.Inf(1))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0, 0, 0}, z.AsSlice()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !math.IsInf(z.At(0), -1) || !math.IsInf(z.At(4), 1) {
		t.Errorf("want infinite fallbacks, got %v and %v", z.At(0), z.At(4))
	}
}

func TestFallbackSet(t *testing.T) {
	v := mustFallback(t, []int{10, 20, 30}, 4, 6, -1, -2)
	v.Set(5, 25)
	if got := v.At(5); got != 25 {
		t.Errorf("want 25, got %d", got)
	}

	for _, i := range []uint{3, 7} {
		t.Run(fmt.Sprintf("index %d", i), func(t *testing.T) {
			defer func() {
				r := recover()
				if diff := cmp.Diff(&IndexingError{Index: i}, r); diff != "" {
					t.Errorf("unexpected panic value (-want +got):\n%s", diff)
				}
			}()
			v.Set(i, 0)
		})
	}
}

func TestFallbackArithmetic(t *testing.T) {
	a := mustFallback(t, []int{10, 20, 30}, 0, 2, -1, -2)
	b := mustFallback(t, []int{1, 2, 3}, 0, 2, -1, -2)

	tests := []struct {
		name string
		op   func(x, y *FallbackVec[int]) (*FallbackVec[int], error)
		want []int
	}{
		{name: "add", op: (*FallbackVec[int]).Add, want: []int{11, 22, 33}},
		{name: "sub", op: (*FallbackVec[int]).Sub, want: []int{9, 18, 27}},
		{name: "mul", op: (*FallbackVec[int]).Mul, want: []int{10, 40, 90}},
		{name: "div", op: (*FallbackVec[int]).Div, want: []int{10, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(a, b)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got.AsSlice()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if got.Meta() != a.Meta() {
				t.Errorf("want meta %s, got %s", a.Meta(), got.Meta())
			}
		})
	}

	if diff := cmp.Diff([]int{10, 20, 30}, a.AsSlice()); diff != "" {
		t.Errorf("operands must not change (-want +got):\n%s", diff)
	}
}

func TestFallbackAddCommutesAndAssociates(t *testing.T) {
	a := mustFallback(t, []int{1, 2, 3}, 2, 4, 0, 9)
	b := mustFallback(t, []int{40, 50, 60}, 2, 4, 0, 9)
	c := mustFallback(t, []int{-7, 8, 0}, 2, 4, 0, 9)

	ab, _ := a.Add(b)
	ba, _ := b.Add(a)
	if diff := cmp.Diff(ab.AsSlice(), ba.AsSlice()); diff != "" {
		t.Errorf("a+b != b+a (-a+b +b+a):\n%s", diff)
	}

	abc1, _ := ab.Add(c)
	bc, _ := b.Add(c)
	abc2, _ := a.Add(bc)
	if diff := cmp.Diff(abc1.AsSlice(), abc2.AsSlice()); diff != "" {
		t.Errorf("(a+b)+c != a+(b+c):\n%s", diff)
	}
}

func TestFallbackIncompatible(t *testing.T) {
	a := mustFallback(t, []int{10, 20, 30}, 0, 2, -1, -2)
	otherAbove := mustFallback(t, []int{10, 20, 30}, 0, 2, -1, -3)
	otherSpan := mustFallback(t, []int{10, 20, 30}, 1, 3, -1, -2)

	_, err := a.Add(otherAbove)
	wantFallback := &IncompatibleFallbackError[int]{Below: -1, Above: -2, OtherBelow: -1, OtherAbove: -3}
	if diff := cmp.Diff(wantFallback, err); diff != "" {
		t.Errorf("unexpected error (-want +got):\n%s", diff)
	}
	if !IsIncompatibleFallbackErr[int](err) || IsIncompatibleIntervalErr(err) {
		t.Errorf("want only a fallback error, got %v", err)
	}

	_, err = a.Mul(otherSpan)
	wantInterval := &IncompatibleIntervalError{Span: Span{Start: 0, End: 2}, Other: Span{Start: 1, End: 3}}
	if diff := cmp.Diff(wantInterval, err); diff != "" {
		t.Errorf("unexpected error (-want +got):\n%s", diff)
	}
	if !IsCompatibilityErr(err) {
		t.Errorf("interval errors are compatibility errors: %v", err)
	}

	for _, op := range []func(*FallbackVec[int]) error{a.AddAssign, a.SubAssign, a.MulAssign, a.DivAssign} {
		if err := op(otherAbove); err == nil {
			t.Error("want error")
		}
		if err := op(otherSpan); err == nil {
			t.Error("want error")
		}
	}
	if diff := cmp.Diff([]int{10, 20, 30}, a.AsSlice()); diff != "" {
		t.Errorf("failed in-place ops must not mutate (-want +got):\n%s", diff)
	}
}

func TestFallbackAssign(t *testing.T) {
	a := mustFallback(t, []float64{1, 2, 4}, 7, 9, 0, 0)
	b := mustFallback(t, []float64{2, 2, 2}, 7, 9, 0, 0)

	if err := a.AddAssign(b); err != nil {
		t.Fatal(err)
	}
	a.MustMulAssign(b)
	a.MustSubAssign(b)
	if err := a.DivAssign(b); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{2, 3, 5}, a.AsSlice()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// Self-assignment reads and writes the same storage.
	a.MustAddAssign(a)
	if diff := cmp.Diff([]float64{4, 6, 10}, a.AsSlice()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFallbackMustAssignPanics(t *testing.T) {
	a := mustFallback(t, []int{1, 2, 3}, 0, 2, 0, 0)
	b := mustFallback(t, []int{1, 2, 3}, 0, 2, 0, 1)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !IsIncompatibleFallbackErr[int](err) {
			t.Errorf("want incompatible fallback panic, got %v", r)
		}
		if diff := cmp.Diff([]int{1, 2, 3}, a.AsSlice()); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	}()
	a.MustDivAssign(b)
}

func TestFallbackUnary(t *testing.T) {
	v := mustFallback(t, []int{10, -20, 30}, 1, 3, -1, -2)

	tests := []struct {
		name string
		got  *FallbackVec[int]
		want []int
	}{
		{name: "neg", got: v.Neg(), want: []int{-10, 20, -30}},
		{name: "mul scalar", got: v.MulScalar(3), want: []int{30, -60, 90}},
		{name: "div scalar", got: v.DivScalar(10), want: []int{1, -2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, slices.Collect(tt.got.Values())); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if tt.got.Meta() != v.Meta() {
				t.Errorf("fallbacks must be kept: want %s, got %s", v.Meta(), tt.got.Meta())
			}
		})
	}
}

func TestFallbackNaNNeverCompatible(t *testing.T) {
	a := mustFallback(t, []float64{1}, 0, 0, math.NaN(), 0)
	if _, err := a.Add(a); !IsIncompatibleFallbackErr[float64](err) {
		t.Errorf("want incompatible fallback for NaN, got %v", err)
	}
}

func TestFallbackRef(t *testing.T) {
	v := mustFallback(t, []int{10, 20, 30}, 4, 6, -1, -2)

	p := v.Ref(5)
	if p == nil {
		t.Fatal("want element at 5")
	}
	*p = 25
	if got := v.At(5); got != 25 {
		t.Errorf("want 25, got %d", got)
	}
	for _, i := range []uint{0, 3, 7, math.MaxUint} {
		if v.Ref(i) != nil {
			t.Errorf("index %d: fallback values must not be addressable", i)
		}
	}
}

func TestFallbackMeta(t *testing.T) {
	meta, err := NewFallbackMeta(2, 4, -1, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := Fallback[int]{Span: Span{Start: 2, End: 4}, Below: -1, Above: 1}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	single, err := NewSingleFallbackMeta(2, 4, 7)
	if err != nil {
		t.Fatal(err)
	}
	if single.Below != 7 || single.Above != 7 {
		t.Errorf("want both fallbacks 7, got %s", single)
	}

	_, err = NewFallbackMeta(4, 2, 0, 0)
	if diff := cmp.Diff(&OrderError{Start: 4, End: 2}, err); diff != "" {
		t.Errorf("unexpected error (-want +got):\n%s", diff)
	}
	_, err = NewSingleFallbackMeta(4, 2, 0.5)
	if diff := cmp.Diff(&OrderError{Start: 4, End: 2}, err); diff != "" {
		t.Errorf("unexpected error (-want +got):\n%s", diff)
	}
}

func TestFallbackFromMeta(t *testing.T) {
	meta, err := NewSingleFallbackMeta(1, 3, -1)
	if err != nil {
		t.Fatal(err)
	}

	v, err := NewFallbackFrom([]int{1, 2, 3}, meta)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(meta, v.Meta()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	f, err := FillFallbackFrom(4, meta)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{4, 4, 4}, f.AsSlice()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := f.At(0); got != -1 {
		t.Errorf("want fallback -1, got %d", got)
	}

	_, err = NewFallbackFrom([]int{1, 2}, meta)
	if diff := cmp.Diff(&LengthError{Len: 2, Start: 1, End: 3}, err); diff != "" {
		t.Errorf("unexpected error (-want +got):\n%s", diff)
	}

	reversed := Fallback[int]{Span: Span{Start: 3, End: 1}}
	_, err = NewFallbackFrom([]int{1, 2, 3}, reversed)
	if diff := cmp.Diff(&OrderError{Start: 3, End: 1}, err); diff != "" {
		t.Errorf("unexpected error (-want +got):\n%s", diff)
	}
	_, err = FillFallbackFrom(0, reversed)
	if diff := cmp.Diff(&OrderError{Start: 3, End: 1}, err); diff != "" {
		t.Errorf("unexpected error (-want +got):\n%s", diff)
	}
}

func TestZeroFallbackVecHoldsNothing(t *testing.T) {
	var v FallbackVec[int]

	if got := v.At(0); got != 0 {
		t.Errorf("want 0, got %d", got)
	}
	if v.Ref(0) != nil {
		t.Error("Ref: want nil")
	}

	w := mustFallback(t, []int{1}, 0, 0, 0, 0)
	if _, err := v.Add(w); !IsIncompatibleIntervalErr(err) {
		t.Errorf("want incompatible interval, got %v", err)
	}
	if err := w.AddAssign(&v); !IsIncompatibleIntervalErr(err) {
		t.Errorf("want incompatible interval, got %v", err)
	}

	defer func() {
		r := recover()
		if diff := cmp.Diff(&IndexingError{Index: 0}, r); diff != "" {
			t.Errorf("unexpected panic value (-want +got):\n%s", diff)
		}
	}()
	v.Set(0, 1)
}
