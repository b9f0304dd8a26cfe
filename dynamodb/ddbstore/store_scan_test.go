package ddbstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putN(t *testing.T, store *Store, tableName string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := store.PutItem(context.Background(), &dynamodb.PutItemInput{
			TableName: &tableName,
			Item: map[string]types.AttributeValue{
				"pk": &types.AttributeValueMemberS{Value: "p"},
				"sk": &types.AttributeValueMemberN{Value: fmt.Sprint(i)},
			},
		})
		require.NoError(t, err)
	}
}

func sortKeys(items []map[string]types.AttributeValue) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item["sk"].(*types.AttributeValueMemberN).Value
	}
	return out
}

func TestStore_Scan(t *testing.T) {
	ctx := context.Background()

	t.Run("numeric sort keys come back in numeric order", func(t *testing.T) {
		store := newTestStore(t, numericSortKeyTable)
		putN(t, store, numericSortKeyTable.Name, 12)

		out, err := store.Scan(ctx, &dynamodb.ScanInput{TableName: &numericSortKeyTable.Name})
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}, sortKeys(out.Items))
		assert.Nil(t, out.LastEvaluatedKey)
		assert.EqualValues(t, 12, out.Count)
	})

	t.Run("pagination", func(t *testing.T) {
		store := newTestStore(t, numericSortKeyTable)
		putN(t, store, numericSortKeyTable.Name, 5)

		var pages [][]string
		var start map[string]types.AttributeValue
		for {
			out, err := store.Scan(ctx, &dynamodb.ScanInput{
				TableName:         &numericSortKeyTable.Name,
				Limit:             aws.Int32(2),
				ExclusiveStartKey: start,
			})
			require.NoError(t, err)
			pages = append(pages, sortKeys(out.Items))
			if out.LastEvaluatedKey == nil {
				break
			}
			start = out.LastEvaluatedKey
		}
		assert.Equal(t, [][]string{{"0", "1"}, {"2", "3"}, {"4"}}, pages)
	})

	t.Run("exact page has no continuation", func(t *testing.T) {
		store := newTestStore(t, numericSortKeyTable)
		putN(t, store, numericSortKeyTable.Name, 2)

		out, err := store.Scan(ctx, &dynamodb.ScanInput{TableName: &numericSortKeyTable.Name, Limit: aws.Int32(2)})
		require.NoError(t, err)
		assert.Len(t, out.Items, 2)
		assert.Nil(t, out.LastEvaluatedKey)
	})

	t.Run("tables do not leak into each other", func(t *testing.T) {
		store := newTestStore(t, numericSortKeyTable, noSortKeyTable)
		putN(t, store, numericSortKeyTable.Name, 3)

		out, err := store.Scan(ctx, &dynamodb.ScanInput{TableName: &noSortKeyTable.Name})
		require.NoError(t, err)
		assert.Empty(t, out.Items)
	})

	t.Run("filter expression rejected", func(t *testing.T) {
		store := newTestStore(t, noSortKeyTable)
		_, err := store.Scan(ctx, &dynamodb.ScanInput{
			TableName:        &noSortKeyTable.Name,
			FilterExpression: aws.String("attribute_exists (pk)"),
		})
		require.Error(t, err)
	})
}
