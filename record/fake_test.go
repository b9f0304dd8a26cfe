package record

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name string
	Age  int
}

func people() (alice, bob, charlie *person) {
	return &person{Name: "Alice", Age: 36}, &person{Name: "Bob", Age: 41}, &person{Name: "Charlie", Age: 25}
}

func queryAll[T comparable](t *testing.T, f *Fake[T]) []T {
	t.Helper()
	seq, err := f.Query(context.Background())
	require.NoError(t, err)
	return slices.Collect(seq)
}

// =============================================================================
// Insert
// =============================================================================

func TestFake_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("appends to the end of the backing slice", func(t *testing.T) {
		alice, bob, charlie := people()
		backing := []*person{alice, bob}
		f := NewFake(&backing)

		gen, err := f.Insert(ctx, charlie)
		require.NoError(t, err)
		assert.Nil(t, gen, "fake never generates keys")

		assert.Equal(t, []*person{alice, bob, charlie}, queryAll(t, f))
		assert.Len(t, backing, 3, "caller sees the insert through its own variable")
		assert.Equal(t, 1, f.Inserts())
	})

	t.Run("into empty", func(t *testing.T) {
		_, _, charlie := people()
		var backing []*person
		f := NewFake(&backing)

		_, err := f.Insert(ctx, charlie)
		require.NoError(t, err)
		assert.Equal(t, []*person{charlie}, backing)
	})

	t.Run("nil slice pointer", func(t *testing.T) {
		alice, _, _ := people()
		f := NewFake[*person](nil)

		_, err := f.Insert(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, 1, f.Len())
	})

	t.Run("cancelled context still appends", func(t *testing.T) {
		alice, bob, charlie := people()
		backing := []*person{alice, bob}
		f := NewFake(&backing)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		gen, err := f.Insert(cctx, charlie)
		require.NoError(t, err)
		assert.Nil(t, gen)
		assert.Equal(t, []*person{alice, bob, charlie}, backing)
		assert.Equal(t, 1, f.Inserts())
	})

	t.Run("same record twice is stored twice", func(t *testing.T) {
		alice, _, _ := people()
		var backing []*person
		f := NewFake(&backing)

		_, err := f.Insert(ctx, alice)
		require.NoError(t, err)
		_, err = f.Insert(ctx, alice)
		require.NoError(t, err)
		assert.Len(t, backing, 2, "no duplicate detection")
	})
}

// =============================================================================
// Remove
// =============================================================================

func TestFake_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes present record", func(t *testing.T) {
		alice, bob, _ := people()
		backing := []*person{alice, bob}
		f := NewFake(&backing)

		require.NoError(t, f.Remove(ctx, alice))
		assert.Equal(t, []*person{bob}, queryAll(t, f))
		assert.Len(t, backing, 1)
		assert.Equal(t, 1, f.Removes())
	})

	t.Run("removes only the first occurrence", func(t *testing.T) {
		alice, bob, _ := people()
		backing := []*person{alice, bob, alice}
		f := NewFake(&backing)

		require.NoError(t, f.Remove(ctx, alice))
		assert.Equal(t, []*person{bob, alice}, backing)
	})

	t.Run("compares by identity for pointers", func(t *testing.T) {
		alice, bob, _ := people()
		backing := []*person{alice, bob}
		f := NewFake(&backing)

		lookalike := &person{Name: "Alice", Age: 36}
		require.NoError(t, f.Remove(ctx, lookalike))
		assert.Equal(t, []*person{alice, bob}, backing)
	})

	t.Run("compares by value for values", func(t *testing.T) {
		backing := []person{{Name: "Alice"}, {Name: "Bob"}}
		f := NewFake(&backing)

		require.NoError(t, f.Remove(ctx, person{Name: "Bob"}))
		assert.Equal(t, []person{{Name: "Alice"}}, backing)
	})

	t.Run("missing record is ignored by default", func(t *testing.T) {
		alice, bob, charlie := people()
		backing := []*person{alice, bob}
		f := NewFake(&backing)

		require.NoError(t, f.Remove(ctx, charlie))
		require.NoError(t, f.Remove(ctx, charlie))
		assert.Equal(t, []*person{alice, bob}, queryAll(t, f))
	})

	t.Run("missing record errors with ErrorOnMissing", func(t *testing.T) {
		alice, bob, charlie := people()
		backing := []*person{alice, bob}
		f := NewFake(&backing, WithRemovePolicy(ErrorOnMissing))

		err := f.Remove(ctx, charlie)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []*person{alice, bob}, backing)

		require.NoError(t, f.Remove(ctx, bob))
		assert.Equal(t, []*person{alice}, backing)
	})
}

// =============================================================================
// Query
// =============================================================================

func TestFake_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("restartable", func(t *testing.T) {
		alice, bob, _ := people()
		backing := []*person{alice, bob}
		f := NewFake(&backing)

		seq, err := f.Query(ctx)
		require.NoError(t, err)
		assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
		assert.Equal(t, queryAll(t, f), queryAll(t, f))
	})

	t.Run("lazy over current contents", func(t *testing.T) {
		alice, bob, charlie := people()
		backing := []*person{alice, bob}
		f := NewFake(&backing)

		seq, err := f.Query(ctx)
		require.NoError(t, err)
		_, err = f.Insert(ctx, charlie)
		require.NoError(t, err)
		assert.Equal(t, 3, Count(seq))
	})

	t.Run("empty filtered by name", func(t *testing.T) {
		f := NewFake(&[]*person{})

		seq, err := f.Query(ctx)
		require.NoError(t, err)
		got := Collect(Filter(seq, func(p *person) bool { return p.Name == "Alice" }))
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("early break", func(t *testing.T) {
		alice, bob, charlie := people()
		f := NewFake(&[]*person{alice, bob, charlie})

		seq, err := f.Query(ctx)
		require.NoError(t, err)
		var seen []string
		for p := range seq {
			seen = append(seen, p.Name)
			if p == bob {
				break
			}
		}
		assert.Equal(t, []string{"Alice", "Bob"}, seen)
	})
}

func TestRemovePolicy_String(t *testing.T) {
	assert.Equal(t, "ignore-missing", IgnoreMissing.String())
	assert.Equal(t, "error-on-missing", ErrorOnMissing.String())
	assert.Equal(t, "unknown", RemovePolicy(9).String())
}

func TestFake_InsertThenRemoveKeepsOrder(t *testing.T) {
	ctx := context.Background()
	alice, bob, charlie := people()
	backing := []*person{alice, bob}
	f := NewFake(&backing)

	_, err := f.Insert(ctx, charlie)
	require.NoError(t, err)
	require.NoError(t, f.Remove(ctx, bob))

	names := Collect(Map(slices.Values(backing), func(p *person) string { return strings.ToLower(p.Name) }))
	assert.Equal(t, []string{"alice", "charlie"}, names)
}
