package ddbstore

import (
	"strings"

	"github.com/acksell/custmvc/dynamodb/ddbstore/writeconditions"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// evalCondition evaluates a write condition expression against item, which
// is nil when the item does not exist.
func evalCondition(expr *string, names map[string]string, item map[string]types.AttributeValue) (bool, error) {
	if expr == nil || strings.TrimSpace(*expr) == "" {
		return true, nil
	}
	return writeconditions.Eval(*expr, writeconditions.EvalInput{ExpressionNames: names}, item)
}

func conditionalCheckFailed() error {
	return &types.ConditionalCheckFailedException{
		Message: ptrStr("The conditional request failed"),
	}
}
