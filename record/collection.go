package record

import (
	"context"
	"errors"
	"iter"
)

// ErrNotFound is returned by Remove when the record is not part of the
// collection and the collection was configured with ErrorOnMissing.
var ErrNotFound = errors.New("record not found")

// Collection is a queryable, mutable set of records of type T.
type Collection[T any] interface {
	// Query returns a lazy, restartable view over the current contents.
	Query(ctx context.Context) (iter.Seq[T], error)
	// Insert adds rec to the collection. The returned Generated is nil when
	// the store does not produce a key of its own.
	Insert(ctx context.Context, rec T) (*Generated, error)
	// Remove deletes the first occurrence of rec.
	Remove(ctx context.Context, rec T) error
}

// Generated carries a key assigned by the store during Insert.
type Generated struct {
	Key string
}

// RemovePolicy decides what Remove does with a record that is not present.
type RemovePolicy int

const (
	// IgnoreMissing makes Remove of an absent record a no-op.
	IgnoreMissing RemovePolicy = iota
	// ErrorOnMissing makes Remove of an absent record return ErrNotFound.
	ErrorOnMissing
)

func (p RemovePolicy) String() string {
	switch p {
	case IgnoreMissing:
		return "ignore-missing"
	case ErrorOnMissing:
		return "error-on-missing"
	default:
		return "unknown"
	}
}

// Missing applies the policy to a Remove that found nothing.
func (p RemovePolicy) Missing() error {
	if p == ErrorOnMissing {
		return ErrNotFound
	}
	return nil
}
