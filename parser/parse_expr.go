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

package parser

import (
	"github.com/spreadsheetlab/XLParser/internal/lexer"
	"github.com/spreadsheetlab/XLParser/token"
	"github.com/spreadsheetlab/XLParser/tree"
)

// constants maps literal tokens to the node that wraps them.
var constants = map[token.Kind]tree.Kind{
	token.Number: tree.Number,
	token.Text:   tree.Text,
	token.Bool:   tree.Bool,
	token.Error:  tree.Error,
}

// parseStart parses an entire formula.
func (s *state) parseStart() tree.Node {
	var root tree.Node
	switch s.lex.Peek(lexer.Start).Kind {
	case token.Eq:
		eq := s.leaf(s.lex.Next(lexer.Start))
		e := s.parseExpr(precNone)
		if e.ref && s.lex.Peek(lexer.Continuation).Kind == token.Comma {
			root = s.b.New(tree.MultiRangeFormula, eq, s.parseUnion(e))
		} else {
			root = s.b.New(tree.FormulaWithEq, eq, s.formula(e))
		}

	case token.LBrace:
		s.lex.Next(lexer.Start)
		if s.lex.Peek(lexer.ArrayStart).Kind == token.Eq {
			eq := s.leaf(s.lex.Next(lexer.ArrayStart))
			e := s.parseExpr(precNone)
			s.expect(lexer.Continuation, token.RBrace, "`}`")
			root = s.b.New(tree.ArrayFormula, eq, s.formula(e))
			break
		}
		array := expr{node: s.parseConstantArray()}
		root = s.formula(s.parseInfix(array, precNone))

	default:
		root = s.formula(s.parseExpr(precNone))
	}

	if tok := s.lex.Next(lexer.Continuation); tok.Kind != token.EOF {
		s.unexpected(tok, lexer.Continuation, "an operator or the end of the formula")
	}
	return root
}

// parseExpr parses an expression containing only operators that bind
// tighter than minPrec.
func (s *state) parseExpr(minPrec int) expr {
	return s.parseInfix(s.parseUnary(), minPrec)
}

// parseInfix extends lhs with binary and postfix value operators.
//
// Reference operators are not handled here: they bind tighter than every
// value operator and are consumed by [state.refTail] as soon as a
// reference is complete.
func (s *state) parseInfix(lhs expr, minPrec int) expr {
	for {
		tok := s.lex.Peek(lexer.Continuation)
		op, ok := infix[tok.Kind]
		if !ok {
			return lhs
		}
		if op.ref {
			if tok.Kind != token.Comma && !lhs.ref {
				s.requireReference(lhs, lexer.Describe(tok))
			}
			return lhs
		}
		if op.prec <= minPrec {
			return lhs
		}

		opNode := s.leaf(s.lex.Next(lexer.Continuation))
		if op.postfix {
			lhs = expr{node: s.b.New(tree.FunctionCall, s.formula(lhs), opNode)}
			continue
		}
		rhs := s.parseExpr(op.prec)
		lhs = expr{node: s.b.New(tree.FunctionCall, s.formula(lhs), opNode, s.formula(rhs))}
	}
}

// parseUnary parses an operand with any number of prefix operators.
func (s *state) parseUnary() expr {
	tok := s.lex.Peek(lexer.Operand)
	if _, ok := prefix[tok.Kind]; !ok {
		return s.parsePrimary(precNone)
	}
	op := s.leaf(s.lex.Next(lexer.Operand))
	operand := s.parseUnary()
	return expr{node: s.b.New(tree.FunctionCall, op, s.formula(operand))}
}

// parsePrimary parses an operand without prefix operators. If the operand
// is a reference, reference operators binding tighter than minPrec are
// applied to it.
func (s *state) parsePrimary(minPrec int) expr {
	var e expr
	switch tok := s.lex.Peek(lexer.Operand); tok.Kind {
	case token.Number, token.Text, token.Bool, token.Error:
		s.lex.Next(lexer.Operand)
		return expr{node: s.b.New(tree.Constant, s.wrap(constants[tok.Kind], tok))}

	case token.ReservedName:
		s.lex.Next(lexer.Operand)
		return expr{node: s.wrap(tree.ReservedName, tok)}

	case token.ExcelFunction:
		s.lex.Next(lexer.Operand)
		name := s.wrap(tree.FunctionName, tok)
		return expr{node: s.b.New(tree.FunctionCall, name, s.parseArguments())}

	case token.LBrace:
		s.lex.Next(lexer.Operand)
		return expr{node: s.parseConstantArray()}

	case token.LParen:
		e = s.parseParens()

	default:
		e = s.parseReference(lexer.Operand, "an operand")
	}

	if e.ref {
		e = s.refTail(e, minPrec)
	}
	return e
}

// parseParens parses a parenthesized formula, reference or union.
//
// A lone reference in parentheses is a parenthesized reference rather
// than a union of one.
func (s *state) parseParens() expr {
	s.lex.Next(lexer.Operand)
	inner := s.parseExpr(precNone)

	var e expr
	if s.lex.Peek(lexer.Continuation).Kind == token.Comma {
		s.requireReference(inner, "union")
		union := s.parseUnion(inner)
		e = s.reference(s.b.New(tree.ReferenceFunctionCall, union))
	} else if inner.ref {
		e = s.reference(inner.node)
	} else {
		e = expr{node: s.b.New(tree.Formula, s.formula(inner))}
	}

	s.expect(lexer.Continuation, token.RParen, "`)`")
	return e
}

// parseUnion parses the comma-separated references following first.
func (s *state) parseUnion(first expr) tree.Node {
	items := []tree.Node{first.node}
	for s.lex.Peek(lexer.Continuation).Kind == token.Comma {
		s.lex.Next(lexer.Continuation)
		e := s.parseExpr(precNone)
		s.requireReference(e, "union")
		items = append(items, e.node)
	}
	return s.b.New(tree.Union, items...)
}

// parseArguments parses the arguments of a call whose name token, which
// includes the opening parenthesis, has been consumed.
func (s *state) parseArguments() tree.Node {
	if s.lex.Peek(lexer.Operand).Kind == token.RParen {
		s.lex.Next(lexer.Operand)
		return s.b.New(tree.Arguments)
	}

	var args []tree.Node
	for {
		var arg tree.Node
		switch s.lex.Peek(lexer.Operand).Kind {
		case token.Comma, token.RParen:
			empty := s.leaf(s.lex.Implied(token.EmptyArgument))
			arg = s.b.New(tree.EmptyArgument, empty)
		default:
			arg = s.formula(s.parseExpr(precNone))
		}
		args = append(args, s.b.New(tree.Argument, arg))

		switch tok := s.lex.Next(lexer.Continuation); tok.Kind {
		case token.Comma:
		case token.RParen:
			return s.b.New(tree.Arguments, args...)
		default:
			s.unexpected(tok, lexer.Continuation, "`,` or `)`")
		}
	}
}

// parseConstantArray parses a constant array whose opening brace has been
// consumed.
func (s *state) parseConstantArray() tree.Node {
	var rows, row []tree.Node
	for {
		row = append(row, s.parseArrayConstant())
		switch tok := s.lex.Next(lexer.ArraySeparator); tok.Kind {
		case token.Comma:
		case token.Semicolon, token.RBrace:
			rows = append(rows, s.b.New(tree.ArrayRows, row...))
			row = nil
			if tok.Kind == token.RBrace {
				return s.b.New(tree.ConstantArray, s.b.New(tree.ArrayColumns, rows...))
			}
		default:
			s.unexpected(tok, lexer.ArraySeparator, "`,`, `;` or `}`")
		}
	}
}

func (s *state) parseArrayConstant() tree.Node {
	tok := s.lex.Next(lexer.ArrayElement)
	switch tok.Kind {
	case token.Number, token.Text, token.Bool, token.Error:
		return s.b.New(tree.ArrayConstant, s.b.New(tree.Constant, s.wrap(constants[tok.Kind], tok)))
	case token.RefError:
		return s.b.New(tree.ArrayConstant, s.wrap(tree.RefError, tok))
	case token.Plus, token.Minus:
		num := s.expect(lexer.ArrayElement, token.Number, "a number")
		return s.b.New(tree.ArrayConstant, s.leaf(tok), s.wrap(tree.Number, num))
	}
	s.unexpected(tok, lexer.ArrayElement, "an array constant")
	return tree.Node{}
}
