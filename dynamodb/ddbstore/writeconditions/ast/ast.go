// Package ast holds the syntax tree of DynamoDB write condition expressions.
//
// The tree uses its own attribute value type so it does not depend on a
// particular AWS SDK version.
package ast

import (
	"fmt"
	"strings"
)

type AttributeType string

const (
	STRING     AttributeType = "S"
	NUMBER     AttributeType = "N"
	BINARY     AttributeType = "B"
	STRING_SET AttributeType = "SS"
	NUMBER_SET AttributeType = "NS"
	BINARY_SET AttributeType = "BS"
	BOOL       AttributeType = "BOOL"
	NULL       AttributeType = "NULL"
	LIST       AttributeType = "L"
	MAP        AttributeType = "M"
)

type AttributeValue struct {
	Value any
	Type  AttributeType
}

// Input is what a condition is evaluated against. Document is nil when the
// item does not exist.
type Input struct {
	Document        map[string]AttributeValue
	ExpressionNames map[string]string
}

// Condition is the root interface of all condition nodes.
type Condition interface {
	Eval(input Input) (bool, error)
	String() string
}

// LogicalOp represents AND, OR and NOT. Right is nil for NOT.
type LogicalOp struct {
	Operator string
	Left     Condition
	Right    Condition
}

func NewAnd(left, right Condition) *LogicalOp {
	return &LogicalOp{Operator: "AND", Left: left, Right: right}
}

func NewOr(left, right Condition) *LogicalOp {
	return &LogicalOp{Operator: "OR", Left: left, Right: right}
}

func NewNot(c Condition) *LogicalOp {
	return &LogicalOp{Operator: "NOT", Left: c}
}

func (l *LogicalOp) Eval(input Input) (bool, error) {
	left, err := l.Left.Eval(input)
	if err != nil {
		return false, err
	}
	switch l.Operator {
	case "NOT":
		return !left, nil
	case "AND":
		if !left {
			return false, nil
		}
		return l.Right.Eval(input)
	case "OR":
		if left {
			return true, nil
		}
		return l.Right.Eval(input)
	}
	return false, fmt.Errorf("unknown logical operator %s", l.Operator)
}

func (l *LogicalOp) String() string {
	if l.Operator == "NOT" {
		return "NOT (" + l.Left.String() + ")"
	}
	return "(" + l.Left.String() + ") " + l.Operator + " (" + l.Right.String() + ")"
}

// Supported condition functions.
const (
	AttributeExists    = "attribute_exists"
	AttributeNotExists = "attribute_not_exists"
)

// FunctionCall is attribute_exists(path) or attribute_not_exists(path).
type FunctionCall struct {
	FunctionName string
	Path         *AttributePath
}

func NewFunctionCall(name string, path *AttributePath) (*FunctionCall, error) {
	switch name {
	case AttributeExists, AttributeNotExists:
		return &FunctionCall{FunctionName: name, Path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported function %s", name)
	}
}

func (f *FunctionCall) Eval(input Input) (bool, error) {
	_, exists, err := f.Path.Resolve(input)
	if err != nil {
		return false, err
	}
	if f.FunctionName == AttributeNotExists {
		return !exists, nil
	}
	return exists, nil
}

func (f *FunctionCall) String() string {
	return f.FunctionName + "(" + f.Path.String() + ")"
}

// AttributePath is a document path such as "address.city" or "#0".
type AttributePath struct {
	Parts []*Identifier
}

// Resolve looks up the path in the document.
func (p *AttributePath) Resolve(input Input) (AttributeValue, bool, error) {
	doc := input.Document
	var v AttributeValue
	for i, part := range p.Parts {
		name, err := part.Resolve(input)
		if err != nil {
			return AttributeValue{}, false, err
		}
		var found bool
		v, found = doc[name]
		if !found {
			return AttributeValue{}, false, nil
		}
		if i == len(p.Parts)-1 {
			break
		}
		next, ok := v.Value.(map[string]AttributeValue)
		if v.Type != MAP || !ok {
			return AttributeValue{}, false, nil
		}
		doc = next
	}
	return v, true, nil
}

func (p *AttributePath) String() string {
	names := make([]string, len(p.Parts))
	for i, part := range p.Parts {
		names[i] = part.String()
	}
	return strings.Join(names, ".")
}

// Identifier is a literal attribute name or an expression attribute name
// placeholder such as "#0".
type Identifier struct {
	Name           *string
	NameExpression *ExpressionAttributeName
}

func (i *Identifier) Resolve(input Input) (string, error) {
	if i.Name != nil {
		return *i.Name, nil
	}
	if i.NameExpression == nil {
		return "", fmt.Errorf("empty identifier")
	}
	return i.NameExpression.resolve(input)
}

func (i *Identifier) String() string {
	if i.Name != nil {
		return *i.Name
	}
	if i.NameExpression != nil {
		return i.NameExpression.Name
	}
	return ""
}

type ExpressionAttributeName struct {
	Name string
}

func (n *ExpressionAttributeName) resolve(input Input) (string, error) {
	v, found := input.ExpressionNames[n.Name]
	if !found {
		return "", fmt.Errorf("expression attribute name %s is not defined", n.Name)
	}
	return v, nil
}
