package record

import (
	"iter"
	"slices"
	"sort"

	"golang.org/x/exp/constraints"
)

// Filter yields the records of seq for which keep returns true.
func Filter[T any](seq iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

// Map projects every record of seq through fn.
func Map[T, U any](seq iter.Seq[T], fn func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

// SortBy yields the records of seq ordered by key. Records with equal keys
// keep their relative order. The input is drained on each iteration, so the
// result stays restartable as long as seq is.
func SortBy[T any, K constraints.Ordered](seq iter.Seq[T], key func(T) K) iter.Seq[T] {
	return func(yield func(T) bool) {
		buf := slices.Collect(seq)
		sort.SliceStable(buf, func(i, j int) bool {
			return key(buf[i]) < key(buf[j])
		})
		for _, v := range buf {
			if !yield(v) {
				return
			}
		}
	}
}

// Count returns the number of records in seq.
func Count[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// First returns the first record matching pred.
func First[T any](seq iter.Seq[T], pred func(T) bool) (T, bool) {
	for v := range seq {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Collect materialises seq into a slice. An empty sequence gives an empty,
// non-nil slice so callers can hand it straight to encoders.
func Collect[T any](seq iter.Seq[T]) []T {
	out := slices.Collect(seq)
	if out == nil {
		out = []T{}
	}
	return out
}
