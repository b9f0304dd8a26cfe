// Package writeconditions evaluates the condition expressions of PutItem and
// DeleteItem against the stored item.
//
// Supported are the existence functions combined with AND, OR, NOT and
// parentheses:
//
//	attribute_not_exists (#0)
//	(attribute_exists (#0)) AND (NOT attribute_exists (address.city))
package writeconditions

import (
	"fmt"

	"github.com/acksell/custmvc/dynamodb/ddbstore/writeconditions/ast"
	"github.com/acksell/custmvc/dynamodb/ddbstore/writeconditions/parser"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func Parse(condition string) (ast.Condition, error) {
	return parser.ParseExpr(condition)
}

type EvalInput struct {
	ExpressionNames map[string]string
}

// Eval parses condition and evaluates it against doc, which is nil when the
// item does not exist.
func Eval(condition string, input EvalInput, doc map[string]types.AttributeValue) (bool, error) {
	cond, err := Parse(condition)
	if err != nil {
		return false, fmt.Errorf("parse condition %q: %w", condition, err)
	}
	astDoc, err := convertToASTVals(doc)
	if err != nil {
		return false, err
	}
	return cond.Eval(ast.Input{
		Document:        astDoc,
		ExpressionNames: input.ExpressionNames,
	})
}

// The ast package uses its own types to stay independent of the SDK.
func convertToASTVals(vals map[string]types.AttributeValue) (map[string]ast.AttributeValue, error) {
	if vals == nil {
		return nil, nil
	}
	astMap := make(map[string]ast.AttributeValue, len(vals))
	for k, v := range vals {
		av, err := convertToASTVal(v)
		if err != nil {
			return nil, err
		}
		astMap[k] = av
	}
	return astMap, nil
}

func convertToASTVal(val types.AttributeValue) (ast.AttributeValue, error) {
	switch v := val.(type) {
	case *types.AttributeValueMemberM:
		m, err := convertToASTVals(v.Value)
		if err != nil {
			return ast.AttributeValue{}, err
		}
		return ast.AttributeValue{Value: m, Type: ast.MAP}, nil
	case *types.AttributeValueMemberL:
		values := make([]ast.AttributeValue, 0, len(v.Value))
		for _, item := range v.Value {
			av, err := convertToASTVal(item)
			if err != nil {
				return ast.AttributeValue{}, err
			}
			values = append(values, av)
		}
		return ast.AttributeValue{Value: values, Type: ast.LIST}, nil
	case *types.AttributeValueMemberS:
		return ast.AttributeValue{Value: v.Value, Type: ast.STRING}, nil
	case *types.AttributeValueMemberN:
		return ast.AttributeValue{Value: v.Value, Type: ast.NUMBER}, nil
	case *types.AttributeValueMemberB:
		return ast.AttributeValue{Value: v.Value, Type: ast.BINARY}, nil
	case *types.AttributeValueMemberBOOL:
		return ast.AttributeValue{Value: v.Value, Type: ast.BOOL}, nil
	case *types.AttributeValueMemberNULL:
		return ast.AttributeValue{Value: nil, Type: ast.NULL}, nil
	case *types.AttributeValueMemberSS:
		return ast.AttributeValue{Value: v.Value, Type: ast.STRING_SET}, nil
	case *types.AttributeValueMemberNS:
		return ast.AttributeValue{Value: v.Value, Type: ast.NUMBER_SET}, nil
	case *types.AttributeValueMemberBS:
		return ast.AttributeValue{Value: v.Value, Type: ast.BINARY_SET}, nil
	default:
		return ast.AttributeValue{}, fmt.Errorf("unsupported attribute type %T", v)
	}
}
