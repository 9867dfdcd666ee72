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
	"github.com/spreadsheetlab/XLParser/report"
	"github.com/spreadsheetlab/XLParser/token"
	"github.com/spreadsheetlab/XLParser/tree"
)

// state is the state of a single parse.
type state struct {
	lex *lexer.Lexer
	b   *tree.Builder
	*report.Report
}

// bailout is panicked with to unwind the parser after the first syntax
// error; the grammar has no synchronization points worth recovering at.
type bailout struct{}

// expr is a parsed operand.
//
// For references, node is a Reference node. Otherwise node is either a
// Formula or a node that becomes one when wrapped (see [state.formula]).
type expr struct {
	node tree.Node
	ref  bool
}

func (s *state) run() (t *tree.Tree, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isBailout := r.(bailout); !isBailout {
				panic(r)
			}
			t, ok = nil, false
		}
	}()
	root := s.parseStart()
	return s.b.Finish(root), true
}

// fail records err and abandons the parse.
func (s *state) fail(err report.Diagnose) {
	s.Error(err)
	panic(bailout{})
}

// unexpected fails on tok, which was lexed in mode m while looking for
// where.
func (s *state) unexpected(tok token.Token, m lexer.Mode, where string) {
	if tok.Kind == token.Unknown {
		s.fail(ErrUnrecognized{Token: tok, Why: s.lex.Explain(tok, m)})
	}
	s.fail(ErrUnexpected{Token: tok, Where: where})
}

// expect consumes a token of kind want, or fails.
func (s *state) expect(m lexer.Mode, want token.Kind, where string) token.Token {
	tok := s.lex.Next(m)
	if tok.Kind != want {
		s.unexpected(tok, m, where)
	}
	return tok
}

func (s *state) leaf(tok token.Token) tree.Node {
	return s.b.Token(tok)
}

// wrap creates a node of the given kind around a single token.
func (s *state) wrap(kind tree.Kind, tok token.Token) tree.Node {
	return s.b.New(kind, s.b.Token(tok))
}

// formula wraps an operand in a Formula node, unless it already is one.
func (s *state) formula(e expr) tree.Node {
	if e.node.Is(tree.Formula) {
		return e.node
	}
	return s.b.New(tree.Formula, e.node)
}

func (s *state) reference(children ...tree.Node) expr {
	return expr{node: s.b.New(tree.Reference, children...), ref: true}
}

func (s *state) requireReference(e expr, op string) {
	if !e.ref {
		s.fail(ErrNotReference{Span: e.node.Span(), Operator: op})
	}
}
