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
)

// ErrPrint is returned when a node's shape does not match any production
// the printer knows how to render.
var ErrPrint = errors.New("cannot print node")

// Print renders this node back to formula text.
//
// Printing normalizes whitespace: binary operators are surrounded by
// single spaces (except range and intersection), and everything else is
// printed without spaces. Printing the output of Print and re-parsing it
// yields an equivalent tree.
func (n Node) Print() (string, error) {
	var p printer
	if err := p.print(n); err != nil {
		return "", err
	}
	return p.String(), nil
}

// MustPrint is like [Node.Print], but panics on error.
func (n Node) MustPrint() string {
	s, err := n.Print()
	if err != nil {
		panic(err)
	}
	return s
}

type printer struct {
	strings.Builder
}

func (p *printer) print(n Node) error {
	switch n.Kind() {
	case Terminal:
		if n.IsNil() {
			return fmt.Errorf("%w: nil node", ErrPrint)
		}
		p.WriteString(n.Token().Text)
		return nil

	case Formula, Reference:
		if n.IsParentheses() {
			return p.wrap("(", n.Child(0), ")")
		}
		if n.Is(Formula) {
			return p.print(n.Child(0))
		}
		return p.concat(n)

	case FunctionCall, ReferenceFunctionCall, UDFunctionCall:
		return p.function(n)

	case ArrayFormula:
		return p.wrap("{=", n.Child(1), "}")

	case ConstantArray:
		return p.wrap("{", n.Child(0), "}")

	case ArrayConstant, DynamicDataExchange, FormulaWithEq, MultiRangeFormula, File, Prefix,
		StructuredReference, StructuredReferenceExpression,
		StructuredReferenceSpecifier, StructuredReferenceColumn:
		return p.concat(n)

	case Arguments, ArrayRows, Union:
		return p.join(n, ",")

	case ArrayColumns:
		return p.join(n, ";")
	}

	if n.NumChildren() == 1 {
		return p.print(n.Child(0))
	}
	return fmt.Errorf("%w: %s with %d children", ErrPrint, n.Name(), n.NumChildren())
}

func (p *printer) function(n Node) error {
	switch {
	case n.IsNamedFunction():
		if err := p.concat(n); err != nil {
			return err
		}
		p.WriteByte(')')
		return nil

	case n.IsBinaryOperation():
		if err := p.print(n.Child(0)); err != nil {
			return err
		}
		switch {
		case n.IsIntersection():
			p.WriteByte(' ')
		case n.IsBinaryReferenceOperation():
			if err := p.print(n.Child(1)); err != nil {
				return err
			}
		default:
			p.WriteByte(' ')
			if err := p.print(n.Child(1)); err != nil {
				return err
			}
			p.WriteByte(' ')
		}
		return p.print(n.Child(2))

	case n.IsUnion():
		return p.wrap("(", n.Child(0), ")")

	case n.IsUnaryOperation():
		return p.concat(n)
	}
	return fmt.Errorf("%w: unrecognized %s", ErrPrint, n.Name())
}

func (p *printer) wrap(open string, n Node, closing string) error {
	p.WriteString(open)
	if err := p.print(n); err != nil {
		return err
	}
	p.WriteString(closing)
	return nil
}

func (p *printer) concat(n Node) error {
	for _, c := range n.Children() {
		if err := p.print(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) join(n Node, sep string) error {
	for i, c := range n.Children() {
		if i > 0 {
			p.WriteString(sep)
		}
		if err := p.print(c); err != nil {
			return err
		}
	}
	return nil
}
