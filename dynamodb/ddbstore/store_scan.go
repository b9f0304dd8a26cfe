package ddbstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dgraph-io/badger/v4"
)

// Scan retrieves the items of a table in key order, one page at a time.
// Filter and projection expressions are not supported.
func (s *Store) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if params == nil {
		return nil, fmt.Errorf("params is required")
	}
	if params.FilterExpression != nil || params.ProjectionExpression != nil {
		return nil, fmt.Errorf("filter and projection expressions are not supported")
	}

	tabl, err := s.getTable(params.TableName)
	if err != nil {
		return nil, err
	}
	keyDefs := tabl.definition.KeyDefinitions

	var items []map[string]types.AttributeValue
	var lastKey map[string]types.AttributeValue

	limit := 0
	if params.Limit != nil {
		limit = int(*params.Limit)
	}

	prefix := tabl.prefix()

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		if params.ExclusiveStartKey != nil {
			startPK, err := keyDefs.ExtractPrimaryKey(params.ExclusiveStartKey)
			if err != nil {
				return fmt.Errorf("extract start key: %w", err)
			}
			startKey, err := tabl.encodeKey(startPK)
			if err != nil {
				return fmt.Errorf("encode start key: %w", err)
			}
			it.Seek(startKey)
			if it.Valid() && bytes.Equal(it.Item().Key(), startKey) {
				it.Next() // exclusive
			}
		} else {
			it.Seek(prefix)
		}

		for ; it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !bytes.HasPrefix(it.Item().Key(), prefix) {
				break
			}

			var item map[string]types.AttributeValue
			if err := it.Item().Value(func(val []byte) error {
				var err error
				item, err = DeserializeItem(val)
				return err
			}); err != nil {
				return err
			}

			items = append(items, item)

			if limit > 0 && len(items) >= limit {
				// Only report a continuation key when something follows.
				it.Next()
				if it.Valid() && bytes.HasPrefix(it.Item().Key(), prefix) {
					lastKey = keyDefs.KeyAttributes(item)
				}
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	count := int32(len(items))
	return &dynamodb.ScanOutput{
		Items:            items,
		Count:            count,
		ScannedCount:     count,
		LastEvaluatedKey: lastKey,
	}, nil
}
