// Package ddbrecord implements record.Collection on top of a DynamoDB table.
//
// A Table is a unit of work: records returned by Query are tracked by primary
// key, Insert and Remove are staged, and nothing is written until
// SaveChanges. Callers modify queried records in place and SaveChanges
// writes back the ones whose attributes changed. A Table is not safe for
// concurrent use; create one per request.
package ddbrecord

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/acksell/custmvc/dynamodb/ddbiface"
	"github.com/acksell/custmvc/dynamodb/table"
	"github.com/acksell/custmvc/record"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrDuplicateKey is returned by SaveChanges when an inserted record's key
// is already taken.
var ErrDuplicateKey = errors.New("duplicate key")

type entryState int

const (
	stateUnchanged entryState = iota
	stateAdded
	stateDeleted
)

type entry[T any] struct {
	rec      T
	state    entryState
	snapshot map[string]types.AttributeValue
}

// Table is a record.Collection backed by a DynamoDB table.
type Table[T any] struct {
	client   ddbiface.Client
	def      table.TableDefinition
	policy   record.RemovePolicy
	pageSize int32

	tracked map[string]*entry[T]
	// insertion order of staged records, so Query yields them predictably
	added []string
}

var _ record.Collection[*struct{}] = (*Table[*struct{}])(nil)

// Option configures a Table.
type Option func(*options)

type options struct {
	policy   record.RemovePolicy
	pageSize int32
}

// WithRemovePolicy sets how Remove treats records that are not tracked.
func WithRemovePolicy(p record.RemovePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithPageSize sets the Scan page size used by Query. Zero lets DynamoDB
// decide.
func WithPageSize(n int32) Option {
	return func(o *options) { o.pageSize = n }
}

// NewTable creates a Table for records of type T stored in def.
func NewTable[T any](client ddbiface.Client, def table.TableDefinition, opts ...Option) *Table[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Table[T]{
		client:   client,
		def:      def,
		policy:   o.policy,
		pageSize: o.pageSize,
		tracked:  make(map[string]*entry[T]),
	}
}

// Query scans the whole table and yields its records, followed by records
// inserted but not yet saved. Records already tracked are yielded as the
// tracked instance, so in-place edits survive a second Query.
func (t *Table[T]) Query(ctx context.Context) (iter.Seq[T], error) {
	var out []T
	input := &dynamodb.ScanInput{TableName: aws.String(t.def.Name)}
	if t.pageSize > 0 {
		input.Limit = aws.Int32(t.pageSize)
	}
	for {
		page, err := t.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.def.Name, err)
		}
		for _, item := range page.Items {
			rec, ok, err := t.track(item)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, rec)
			}
		}
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
	for _, k := range t.added {
		out = append(out, t.tracked[k].rec)
	}
	return slices.Values(out), nil
}

// track resolves item against the identity map. It reports false for records
// staged for deletion.
func (t *Table[T]) track(item map[string]types.AttributeValue) (T, bool, error) {
	var zero T
	pk, err := t.def.ExtractPrimaryKey(item)
	if err != nil {
		return zero, false, fmt.Errorf("extract primary key: %w", err)
	}
	key := pk.String()
	if e, ok := t.tracked[key]; ok {
		if e.state == stateAdded {
			// Saved elsewhere in the meantime; SaveChanges will report the clash.
			return zero, false, nil
		}
		return e.rec, e.state != stateDeleted, nil
	}
	var rec T
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return zero, false, fmt.Errorf("unmarshal %s item %s: %w", t.def.Name, key, err)
	}
	t.tracked[key] = &entry[T]{rec: rec, snapshot: item}
	return rec, true, nil
}

// Insert stages rec for writing on SaveChanges. The key is taken from rec,
// so the returned Generated is always nil.
func (t *Table[T]) Insert(ctx context.Context, rec T) (*record.Generated, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, _, err := t.keyOf(rec)
	if err != nil {
		return nil, err
	}
	if e, ok := t.tracked[key]; ok {
		if e.state != stateDeleted {
			return nil, fmt.Errorf("insert %s %s: %w", t.def.Name, key, ErrDuplicateKey)
		}
		// Re-inserting a removed record turns the delete into an overwrite.
		e.rec = rec
		e.state = stateUnchanged
		e.snapshot = nil
		return nil, nil
	}
	t.tracked[key] = &entry[T]{rec: rec, state: stateAdded}
	t.added = append(t.added, key)
	return nil, nil
}

// Remove stages the record with rec's key for deletion. Removing a record
// that was inserted but not saved just forgets it.
func (t *Table[T]) Remove(ctx context.Context, rec T) error {
	key, _, err := t.keyOf(rec)
	if err != nil {
		return err
	}
	e, ok := t.tracked[key]
	if !ok || e.state == stateDeleted {
		return t.policy.Missing()
	}
	if e.state == stateAdded {
		delete(t.tracked, key)
		t.added = slices.DeleteFunc(t.added, func(k string) bool { return k == key })
		return nil
	}
	e.state = stateDeleted
	return nil
}

func (t *Table[T]) keyOf(rec T) (string, map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return "", nil, fmt.Errorf("marshal %s record: %w", t.def.Name, err)
	}
	pk, err := t.def.ExtractPrimaryKey(item)
	if err != nil {
		return "", nil, fmt.Errorf("extract primary key: %w", err)
	}
	return pk.String(), item, nil
}

// SaveChanges writes staged inserts and deletions and every tracked record
// whose attributes changed since it was loaded. It stops at the first
// failure; entries written before it stay written.
func (t *Table[T]) SaveChanges(ctx context.Context) error {
	keys := make([]string, 0, len(t.tracked))
	for k := range t.tracked {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		e := t.tracked[k]
		var err error
		switch e.state {
		case stateAdded:
			err = t.putNew(ctx, k, e)
		case stateDeleted:
			err = t.delete(ctx, k, e)
		default:
			err = t.putChanged(ctx, k, e)
		}
		if err != nil {
			return err
		}
	}
	t.added = t.added[:0]
	return nil
}

func (t *Table[T]) putNew(ctx context.Context, key string, e *entry[T]) error {
	item, err := attributevalue.MarshalMap(e.rec)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", t.def.Name, key, err)
	}
	cond, err := t.keyCondition(expression.AttributeNotExists)
	if err != nil {
		return err
	}
	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(t.def.Name),
		Item:                     item,
		ConditionExpression:      cond.Condition(),
		ExpressionAttributeNames: cond.Names(),
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("insert %s %s: %w", t.def.Name, key, ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("insert %s %s: %w", t.def.Name, key, err)
	}
	t.added = slices.DeleteFunc(t.added, func(k string) bool { return k == key })
	e.state = stateUnchanged
	e.snapshot = item
	return nil
}

func (t *Table[T]) putChanged(ctx context.Context, key string, e *entry[T]) error {
	item, err := attributevalue.MarshalMap(e.rec)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", t.def.Name, key, err)
	}
	if reflect.DeepEqual(item, e.snapshot) {
		return nil
	}
	newPK, err := t.def.ExtractPrimaryKey(item)
	if err != nil {
		return fmt.Errorf("extract primary key: %w", err)
	}
	if newPK.String() != key {
		return fmt.Errorf("update %s %s: primary key changed to %s", t.def.Name, key, newPK)
	}
	cond, err := t.keyCondition(expression.AttributeExists)
	if err != nil {
		return err
	}
	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(t.def.Name),
		Item:                     item,
		ConditionExpression:      cond.Condition(),
		ExpressionAttributeNames: cond.Names(),
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("update %s %s: %w", t.def.Name, key, record.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update %s %s: %w", t.def.Name, key, err)
	}
	e.snapshot = item
	return nil
}

func (t *Table[T]) delete(ctx context.Context, key string, e *entry[T]) error {
	_, item, err := t.keyOf(e.rec)
	if err != nil {
		return err
	}
	_, err = t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.def.Name),
		Key:       t.def.KeyDefinitions.KeyAttributes(item),
	})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", t.def.Name, key, err)
	}
	delete(t.tracked, key)
	return nil
}

func (t *Table[T]) keyCondition(fn func(expression.NameBuilder) expression.ConditionBuilder) (expression.Expression, error) {
	expr, err := expression.NewBuilder().
		WithCondition(fn(expression.Name(t.def.KeyDefinitions.PartitionKey.Name))).
		Build()
	if err != nil {
		return expression.Expression{}, fmt.Errorf("build condition: %w", err)
	}
	return expr, nil
}
