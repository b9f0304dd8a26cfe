package record

import (
	"context"
	"iter"
	"slices"
)

// Fake is an in-memory Collection over a slice owned by the caller. Inserts
// and removals mutate that slice in place, so the caller observes them
// through the same variable it passed to NewFake.
//
// Fake is meant for single goroutine tests and does no locking.
type Fake[T comparable] struct {
	records *[]T
	policy  RemovePolicy

	inserts int
	removes int
}

var _ Collection[int] = (*Fake[int])(nil)

// FakeOption configures a Fake.
type FakeOption func(*fakeOptions)

type fakeOptions struct {
	policy RemovePolicy
}

// WithRemovePolicy sets how Remove treats records that are not present.
// The default is IgnoreMissing.
func WithRemovePolicy(p RemovePolicy) FakeOption {
	return func(o *fakeOptions) {
		o.policy = p
	}
}

// NewFake wraps records without copying them. A nil pointer is treated as a
// fresh empty slice.
func NewFake[T comparable](records *[]T, opts ...FakeOption) *Fake[T] {
	var o fakeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if records == nil {
		records = new([]T)
	}
	return &Fake[T]{
		records: records,
		policy:  o.policy,
	}
}

// Query yields the contents of the backing slice at the time of iteration.
func (f *Fake[T]) Query(ctx context.Context) (iter.Seq[T], error) {
	return func(yield func(T) bool) {
		for _, v := range *f.records {
			if !yield(v) {
				return
			}
		}
	}, nil
}

// Insert appends rec to the backing slice. It always succeeds, ignores ctx
// and never generates a key.
func (f *Fake[T]) Insert(ctx context.Context, rec T) (*Generated, error) {
	f.inserts++
	*f.records = append(*f.records, rec)
	return nil, nil
}

// Remove deletes the first element equal to rec.
func (f *Fake[T]) Remove(ctx context.Context, rec T) error {
	f.removes++
	i := slices.Index(*f.records, rec)
	if i < 0 {
		return f.policy.Missing()
	}
	*f.records = slices.Delete(*f.records, i, i+1)
	return nil
}

// Len returns the current length of the backing slice.
func (f *Fake[T]) Len() int { return len(*f.records) }

// Inserts returns how many times Insert was called.
func (f *Fake[T]) Inserts() int { return f.inserts }

// Removes returns how many times Remove was called, found or not.
func (f *Fake[T]) Removes() int { return f.removes }
