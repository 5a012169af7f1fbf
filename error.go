// SPDX-License-Identifier: Apache-2.0

package offsetvec

import (
	"errors"
	"fmt"

	"github.com/digitalocean/go-offsetvec/internal/span"
)

var (
	ErrOrder         = errors.New("start is greater than end")
	ErrLength        = errors.New("data length does not match span")
	ErrIndexing      = errors.New("index out of range")
	ErrCompatibility = errors.New("containers are not compatible")
)

// OrderError reports a span whose start is greater than its end.
type OrderError struct {
	Start, End uint
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s: [%d, %d]", ErrOrder.Error(), e.Start, e.End)
}

func (e *OrderError) Unwrap() error { return ErrOrder }

// LengthError reports backing storage whose length disagrees with the span
// it is declared over.
type LengthError struct {
	Len        int
	Start, End uint
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: %d elements for [%d, %d]", ErrLength.Error(), e.Len, e.Start, e.End)
}

func (e *LengthError) Unwrap() error { return ErrLength }

// IndexingError carries the offending index or bound.
type IndexingError struct {
	Index uint
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("%s: %d", ErrIndexing.Error(), e.Index)
}

func (e *IndexingError) Unwrap() error { return ErrIndexing }

// CompatibilityError reports two containers whose spans differ.
type CompatibilityError struct {
	Start, End           uint
	OtherStart, OtherEnd uint
}

func (e *CompatibilityError) Error() string {
	return fmt.Sprintf("%s: [%d, %d] and [%d, %d]",
		ErrCompatibility.Error(), e.Start, e.End, e.OtherStart, e.OtherEnd)
}

func (e *CompatibilityError) Unwrap() error { return ErrCompatibility }

// IncompatibleIntervalError reports two fallback vectors whose spans differ.
type IncompatibleIntervalError struct {
	Span, Other Span
}

func (e *IncompatibleIntervalError) Error() string {
	return fmt.Sprintf("incompatible interval: %s and %s", e.Span, e.Other)
}

func (e *IncompatibleIntervalError) Unwrap() error { return ErrCompatibility }

// IncompatibleFallbackError reports two fallback vectors that agree on
// their span but not on their fallback values.
type IncompatibleFallbackError[T Number] struct {
	Below, Above           T
	OtherBelow, OtherAbove T
}

func (e *IncompatibleFallbackError[T]) Error() string {
	return fmt.Sprintf("incompatible fallback: (%v, %v) and (%v, %v)",
		e.Below, e.Above, e.OtherBelow, e.OtherAbove)
}

func (e *IncompatibleFallbackError[T]) Unwrap() error { return ErrCompatibility }

func IsOrderErr(err error) bool         { return errors.Is(err, ErrOrder) }
func IsLengthErr(err error) bool        { return errors.Is(err, ErrLength) }
func IsIndexingErr(err error) bool      { return errors.Is(err, ErrIndexing) }
func IsCompatibilityErr(err error) bool { return errors.Is(err, ErrCompatibility) }

// IsIncompatibleIntervalErr reports whether err was caused by two fallback
// vectors with different spans.
func IsIncompatibleIntervalErr(err error) bool {
	var e *IncompatibleIntervalError
	return errors.As(err, &e)
}

// CheckOrder fails with *OrderError when start > end.
func CheckOrder(start, end uint) error {
	if span.Ordered(start, end) {
		return nil
	}
	return &OrderError{Start: start, End: end}
}

// CheckLength fails with *LengthError unless n == end-start+1. The check
// cannot overflow for any start, end.
func CheckLength(n int, start, end uint) error {
	if span.Fits(n, start, end) {
		return nil
	}
	return &LengthError{Len: n, Start: start, End: end}
}

func checkSpan(n int, start, end uint) error {
	if err := CheckOrder(start, end); err != nil {
		return err
	}
	return CheckLength(n, start, end)
}
