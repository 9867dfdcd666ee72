// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spreadsheetlab/XLParser/token"
)

// ErrNotAFunction is returned when a function-only query is made of a node
// that is not a function or operation.
var ErrNotAFunction = errors.New("node is not a function")

// IsFunction returns whether this node is a function call or an operation:
// a FunctionCall, ReferenceFunctionCall, or UDFunctionCall, or a Reference
// that wraps a prefixed call to a user-defined function.
func (n Node) IsFunction() bool {
	switch n.Kind() {
	case FunctionCall, ReferenceFunctionCall, UDFunctionCall:
		return true
	case Reference:
		return n.NumChildren() == 2 && n.Child(1).IsFunction()
	}
	return false
}

// IsParentheses returns whether this node is a parenthesized formula or
// reference.
func (n Node) IsParentheses() bool {
	switch n.Kind() {
	case Formula:
		return n.NumChildren() == 1 && n.Child(0).Is(Formula)
	case Reference:
		return n.NumChildren() == 1 && n.Child(0).Is(Reference)
	}
	return false
}

// IsBinaryOperation returns whether this node is an infix operation.
func (n Node) IsBinaryOperation() bool {
	return n.IsFunction() && n.NumChildren() == 3 && n.Child(1).IsOperator()
}

// IsBinaryNonReferenceOperation returns whether this node is an infix
// operation over values, such as addition or comparison.
func (n Node) IsBinaryNonReferenceOperation() bool {
	return n.IsBinaryOperation() && n.Is(FunctionCall)
}

// IsBinaryReferenceOperation returns whether this node is a range or
// intersection of references.
func (n Node) IsBinaryReferenceOperation() bool {
	return n.IsBinaryOperation() && n.Is(ReferenceFunctionCall)
}

// IsUnaryOperation returns whether this node is a prefix or postfix
// operation.
func (n Node) IsUnaryOperation() bool {
	return n.IsUnaryPrefixOperation() || n.IsUnaryPostfixOperation()
}

// IsUnaryPrefixOperation returns whether this node applies a prefix
// operator such as - or @.
func (n Node) IsUnaryPrefixOperation() bool {
	return n.IsFunction() && n.NumChildren() == 2 && n.Child(0).IsOperator()
}

// IsUnaryPostfixOperation returns whether this node applies a postfix
// operator such as % or #.
func (n Node) IsUnaryPostfixOperation() bool {
	return n.IsFunction() && n.NumChildren() == 2 && n.Child(1).IsOperator()
}

// IsIntersection returns whether this node is the intersection of two
// references.
func (n Node) IsIntersection() bool {
	return n.IsBinaryOperation() && n.Child(1).IsToken(token.Intersect)
}

// IsUnion returns whether this node is a parenthesized union of references.
func (n Node) IsUnion() bool {
	return n.Is(ReferenceFunctionCall) && n.NumChildren() == 1 && n.Child(0).Is(Union)
}

// IsNamedFunction returns whether this node calls a function by name, as
// opposed to applying an operator.
func (n Node) IsNamedFunction() bool {
	switch n.Kind() {
	case FunctionCall:
		return n.Child(0).Is(FunctionName)
	case ReferenceFunctionCall:
		return n.Child(0).Is(RefFunctionName)
	case UDFunctionCall:
		return true
	}
	return false
}

// IsOperation returns whether this node applies an operator.
func (n Node) IsOperation() bool {
	return n.IsBinaryOperation() || n.IsUnaryOperation()
}

// IsBuiltinFunction returns whether this node calls a built-in function.
func (n Node) IsBuiltinFunction() bool {
	return n.IsFunction() && (n.Child(0).Is(FunctionName) || n.Child(0).Is(RefFunctionName))
}

// IsExternalUDFunction returns whether this node calls a user-defined
// function from another workbook, such as '[1]Book'!MyFunc(1).
func (n Node) IsExternalUDFunction() bool {
	return n.Is(Reference) && n.NumChildren() == 2 && n.Child(1).IsNamedFunction()
}

// IsNumberWithSign returns whether this node is a number literal with an
// explicit sign, such as -1 or +2.5. Implicit intersection (@1) is not a
// sign.
func (n Node) IsNumberWithSign() bool {
	if !n.IsUnaryPrefixOperation() {
		return false
	}
	if op := n.Child(0); !op.IsToken(token.Plus) && !op.IsToken(token.Minus) {
		return false
	}
	constant := n.Child(1).Child(0)
	return constant.Is(Constant) && constant.Child(0).Is(Number)
}

// Function returns the name of the function or operator this node applies.
//
// Named functions are returned in upper case without their opening
// parenthesis. Operators are returned as written; intersection is reported
// as "INTERSECT" and union as ",".
func (n Node) Function() (string, error) {
	switch {
	case n.IsIntersection():
		return "INTERSECT", nil
	case n.IsUnion():
		return ",", nil
	case n.IsBinaryOperation(), n.IsUnaryPostfixOperation():
		return n.Child(1).Print()
	case n.IsUnaryPrefixOperation():
		return n.Child(0).Print()
	case n.IsNamedFunction():
		name, err := n.Child(0).Print()
		if err != nil {
			return "", err
		}
		name = strings.TrimSuffix(name, "(")
		return strings.ToUpper(name), nil
	case n.IsExternalUDFunction():
		prefix, err := n.Child(0).Print()
		if err != nil {
			return "", err
		}
		name, err := n.Child(1).Function()
		if err != nil {
			return "", err
		}
		return prefix + name, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotAFunction, n.Name())
}

// MatchFunction returns whether this node applies the named function or
// operator, compared case-insensitively.
func (n Node) MatchFunction(name string) bool {
	fn, err := n.Function()
	return err == nil && strings.EqualFold(fn, name)
}

// FunctionArguments returns the operands of this function or operation.
//
// Empty arguments are returned as EmptyArgument nodes.
func (n Node) FunctionArguments() ([]Node, error) {
	switch {
	case n.IsNamedFunction():
		return arguments(n.Child(n.NumChildren() - 1)), nil
	case n.IsBinaryOperation():
		return []Node{n.Child(0), n.Child(2)}, nil
	case n.IsUnaryPrefixOperation():
		return []Node{n.Child(1)}, nil
	case n.IsUnaryPostfixOperation():
		return []Node{n.Child(0)}, nil
	case n.IsUnion():
		return n.Child(0).ChildSlice(), nil
	case n.IsExternalUDFunction():
		return n.Child(1).FunctionArguments()
	}
	return nil, fmt.Errorf("%w: %s", ErrNotAFunction, n.Name())
}

// arguments unwraps the Argument nodes of an Arguments list.
func arguments(args Node) []Node {
	out := make([]Node, 0, args.NumChildren())
	for _, arg := range args.Children() {
		out = append(out, arg.Child(0))
	}
	return out
}

// SkipFormula returns the child of a single-child Formula node, or n
// itself.
func (n Node) SkipFormula() Node {
	if n.Is(Formula) && n.NumChildren() == 1 {
		return n.Child(0)
	}
	return n
}

// SkipToRelevant descends through wrapper nodes and returns the first node
// that carries meaning of its own. The leading = of a formula and
// single-child Formula, Argument, and Reference nodes (parentheses
// included) are skipped.
func (n Node) SkipToRelevant() Node {
	for {
		switch n.Kind() {
		case FormulaWithEq, ArrayFormula:
			n = n.Child(1)
		case Argument, Formula, Reference:
			if n.NumChildren() != 1 {
				return n
			}
			n = n.Child(0)
		default:
			return n
		}
	}
}
