package ddbrecord

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/acksell/custmvc/controllers"
	"github.com/acksell/custmvc/dynamodb/ddbiface"
	"github.com/acksell/custmvc/dynamodb/ddbstore"
	"github.com/acksell/custmvc/dynamodb/table"
	"github.com/acksell/custmvc/model"
	"github.com/acksell/custmvc/record"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ controllers.DataContext = (*Context)(nil)

var customersDef = CustomersTable("")

// countingClient records how many writes reach the store.
type countingClient struct {
	ddbiface.Client
	puts, deletes, scans int
}

func (c *countingClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	c.puts++
	return c.Client.PutItem(ctx, params, optFns...)
}

func (c *countingClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	c.deletes++
	return c.Client.DeleteItem(ctx, params, optFns...)
}

func (c *countingClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	c.scans++
	return c.Client.Scan(ctx, params, optFns...)
}

func newTestClient(t *testing.T) *countingClient {
	store, err := ddbstore.New(ddbstore.StoreOptions{InMemory: true}, customersDef)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return &countingClient{Client: store}
}

func customer(name string) *model.Customer {
	return &model.Customer{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       name + "@example.com",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func names(t *testing.T, tbl *Table[*model.Customer]) []string {
	t.Helper()
	seq, err := tbl.Query(context.Background())
	require.NoError(t, err)
	return slices.Sorted(record.Map(seq, func(c *model.Customer) string { return c.Name }))
}

func seed(t *testing.T, client ddbiface.Client, customers ...*model.Customer) {
	t.Helper()
	tbl := NewTable[*model.Customer](client, customersDef)
	for _, c := range customers {
		_, err := tbl.Insert(context.Background(), c)
		require.NoError(t, err)
	}
	require.NoError(t, tbl.SaveChanges(context.Background()))
}

// =============================================================================
// Insert
// =============================================================================

func TestTable_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("visible before save, persisted after", func(t *testing.T) {
		client := newTestClient(t)
		tbl := NewTable[*model.Customer](client, customersDef)

		gen, err := tbl.Insert(ctx, customer("Charlie"))
		require.NoError(t, err)
		assert.Nil(t, gen)
		assert.Equal(t, []string{"Charlie"}, names(t, tbl))
		assert.Equal(t, 0, client.puts, "nothing written before SaveChanges")

		require.NoError(t, tbl.SaveChanges(ctx))
		assert.Equal(t, 1, client.puts)

		fresh := NewTable[*model.Customer](client, customersDef)
		assert.Equal(t, []string{"Charlie"}, names(t, fresh))
	})

	t.Run("round trips every field", func(t *testing.T) {
		client := newTestClient(t)
		want := &model.Customer{
			ID:          uuid.NewString(),
			Name:        "Alice",
			Email:       "alice@example.com",
			Phone:       "1234567890",
			Address:     "123 Street",
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		seed(t, client, want)

		seq, err := NewTable[*model.Customer](client, customersDef).Query(ctx)
		require.NoError(t, err)
		got, ok := record.First(seq, func(c *model.Customer) bool { return c.ID == want.ID })
		require.True(t, ok)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Email, got.Email)
		assert.Equal(t, want.Phone, got.Phone)
		assert.Equal(t, want.Address, got.Address)
		assert.True(t, want.DateOfBirth.Equal(got.DateOfBirth))
	})

	t.Run("duplicate key in the same unit of work", func(t *testing.T) {
		tbl := NewTable[*model.Customer](newTestClient(t), customersDef)
		c := customer("Alice")
		_, err := tbl.Insert(ctx, c)
		require.NoError(t, err)
		_, err = tbl.Insert(ctx, c)
		require.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("duplicate key already stored", func(t *testing.T) {
		client := newTestClient(t)
		c := customer("Alice")
		seed(t, client, c)

		tbl := NewTable[*model.Customer](client, customersDef)
		clone := *c
		_, err := tbl.Insert(ctx, &clone)
		require.NoError(t, err)
		require.ErrorIs(t, tbl.SaveChanges(ctx), ErrDuplicateKey)
	})

	t.Run("cancelled context", func(t *testing.T) {
		tbl := NewTable[*model.Customer](newTestClient(t), customersDef)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := tbl.Insert(cctx, customer("Alice"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

// =============================================================================
// Remove
// =============================================================================

func TestTable_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes loaded record on save", func(t *testing.T) {
		client := newTestClient(t)
		alice, bob := customer("Alice"), customer("Bob")
		seed(t, client, alice, bob)

		tbl := NewTable[*model.Customer](client, customersDef)
		seq, err := tbl.Query(ctx)
		require.NoError(t, err)
		loaded, ok := record.First(seq, func(c *model.Customer) bool { return c.Name == "Alice" })
		require.True(t, ok)

		require.NoError(t, tbl.Remove(ctx, loaded))
		assert.Equal(t, []string{"Bob"}, names(t, tbl), "staged removal hides the record")
		require.NoError(t, tbl.SaveChanges(ctx))
		assert.Equal(t, 1, client.deletes)

		assert.Equal(t, []string{"Bob"}, names(t, NewTable[*model.Customer](client, customersDef)))
	})

	t.Run("removing an unsaved insert forgets it", func(t *testing.T) {
		client := newTestClient(t)
		tbl := NewTable[*model.Customer](client, customersDef)
		c := customer("Charlie")
		_, err := tbl.Insert(ctx, c)
		require.NoError(t, err)

		require.NoError(t, tbl.Remove(ctx, c))
		assert.Empty(t, names(t, tbl))
		require.NoError(t, tbl.SaveChanges(ctx))
		assert.Equal(t, 0, client.puts)
		assert.Equal(t, 0, client.deletes)
	})

	t.Run("untracked record is ignored by default", func(t *testing.T) {
		tbl := NewTable[*model.Customer](newTestClient(t), customersDef)
		require.NoError(t, tbl.Remove(ctx, customer("Ghost")))
	})

	t.Run("untracked record errors with ErrorOnMissing", func(t *testing.T) {
		tbl := NewTable[*model.Customer](newTestClient(t), customersDef, WithRemovePolicy(record.ErrorOnMissing))
		require.ErrorIs(t, tbl.Remove(ctx, customer("Ghost")), record.ErrNotFound)
	})

	t.Run("remove then insert overwrites", func(t *testing.T) {
		client := newTestClient(t)
		alice := customer("Alice")
		seed(t, client, alice)

		tbl := NewTable[*model.Customer](client, customersDef)
		_, err := tbl.Query(ctx)
		require.NoError(t, err)
		require.NoError(t, tbl.Remove(ctx, alice))

		replacement := *alice
		replacement.Name = "Alice Again"
		_, err = tbl.Insert(ctx, &replacement)
		require.NoError(t, err)
		require.NoError(t, tbl.SaveChanges(ctx))

		assert.Equal(t, []string{"Alice Again"}, names(t, NewTable[*model.Customer](client, customersDef)))
	})
}

// =============================================================================
// Query and change tracking
// =============================================================================

func TestTable_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table", func(t *testing.T) {
		tbl := NewTable[*model.Customer](newTestClient(t), customersDef)
		seq, err := tbl.Query(ctx)
		require.NoError(t, err)
		assert.Empty(t, record.Collect(record.Filter(seq, func(c *model.Customer) bool { return c.Name == "Alice" })))
	})

	t.Run("follows pagination", func(t *testing.T) {
		client := newTestClient(t)
		seed(t, client, customer("A"), customer("B"), customer("C"), customer("D"), customer("E"))

		tbl := NewTable[*model.Customer](client, customersDef, WithPageSize(2))
		assert.Len(t, names(t, tbl), 5)
		assert.Equal(t, 3, client.scans)
	})

	t.Run("restartable and identity preserving", func(t *testing.T) {
		client := newTestClient(t)
		seed(t, client, customer("Alice"))
		tbl := NewTable[*model.Customer](client, customersDef)

		first, err := tbl.Query(ctx)
		require.NoError(t, err)
		second, err := tbl.Query(ctx)
		require.NoError(t, err)

		a := slices.Collect(first)
		b := slices.Collect(second)
		require.Len(t, a, 1)
		assert.Same(t, a[0], b[0])
		assert.Equal(t, a, slices.Collect(first))
	})

	t.Run("in place edits are saved", func(t *testing.T) {
		client := newTestClient(t)
		seed(t, client, customer("Alice"), customer("Bob"))
		puts := client.puts

		tbl := NewTable[*model.Customer](client, customersDef)
		seq, err := tbl.Query(ctx)
		require.NoError(t, err)
		alice, ok := record.First(seq, func(c *model.Customer) bool { return c.Name == "Alice" })
		require.True(t, ok)
		alice.Name = "Alice Updated"

		require.NoError(t, tbl.SaveChanges(ctx))
		assert.Equal(t, puts+1, client.puts, "only the changed record is written")
		assert.Equal(t, []string{"Alice Updated", "Bob"}, names(t, NewTable[*model.Customer](client, customersDef)))

		require.NoError(t, tbl.SaveChanges(ctx))
		assert.Equal(t, puts+1, client.puts, "second save has nothing to do")
	})

	t.Run("edit of a concurrently deleted record", func(t *testing.T) {
		client := newTestClient(t)
		alice := customer("Alice")
		seed(t, client, alice)

		tbl := NewTable[*model.Customer](client, customersDef)
		seq, err := tbl.Query(ctx)
		require.NoError(t, err)
		loaded, _ := record.First(seq, func(*model.Customer) bool { return true })

		other := NewTable[*model.Customer](client, customersDef)
		_, err = other.Query(ctx)
		require.NoError(t, err)
		require.NoError(t, other.Remove(ctx, alice))
		require.NoError(t, other.SaveChanges(ctx))

		loaded.Name = "Too Late"
		require.ErrorIs(t, tbl.SaveChanges(ctx), record.ErrNotFound)
	})

	t.Run("primary key change is rejected", func(t *testing.T) {
		client := newTestClient(t)
		seed(t, client, customer("Alice"))

		tbl := NewTable[*model.Customer](client, customersDef)
		seq, err := tbl.Query(ctx)
		require.NoError(t, err)
		loaded, _ := record.First(seq, func(*model.Customer) bool { return true })
		loaded.ID = uuid.NewString()
		require.Error(t, tbl.SaveChanges(ctx))
	})

	t.Run("unknown table", func(t *testing.T) {
		tbl := NewTable[*model.Customer](newTestClient(t), table.TableDefinition{Name: "nope"})
		_, err := tbl.Query(ctx)
		require.Error(t, err)
	})
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	db := NewContext(client, customersDef)

	_, err := db.Customers().Insert(ctx, customer("Alice"))
	require.NoError(t, err)
	require.NoError(t, db.SaveChanges(ctx))

	assert.Equal(t, []string{"Alice"}, names(t, NewTable[*model.Customer](client, customersDef)))
	assert.Equal(t, "customers", CustomersTable("").Name)
	assert.Equal(t, "crm-customers", CustomersTable("crm-customers").Name)
}
