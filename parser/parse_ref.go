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

// itemKinds maps single-token reference items to the node that wraps them.
var itemKinds = map[token.Kind]tree.Kind{
	token.Cell:                  tree.Cell,
	token.NamedRangeCombination: tree.NamedRange,
	token.VRange:                tree.VRange,
	token.HRange:                tree.HRange,
	token.RefError:              tree.RefError,
}

// refTail applies reference operators binding tighter than minPrec to lhs.
func (s *state) refTail(lhs expr, minPrec int) expr {
	for {
		tok := s.lex.Peek(lexer.Continuation)
		op, ok := infix[tok.Kind]
		if !ok || !op.ref || tok.Kind == token.Comma || op.prec <= minPrec {
			return lhs
		}

		opNode := s.leaf(s.lex.Next(lexer.Continuation))
		if op.postfix {
			lhs = s.reference(s.b.New(tree.ReferenceFunctionCall, lhs.node, opNode))
			continue
		}
		rhs := s.parsePrimary(op.prec)
		s.requireReference(rhs, lexer.Describe(tok))
		lhs = s.reference(s.b.New(tree.ReferenceFunctionCall, lhs.node, opNode, rhs.node))
	}
}

// parseReference parses a reference that is not parenthesized.
func (s *state) parseReference(m lexer.Mode, where string) expr {
	tok := s.lex.Next(m)
	switch tok.Kind {
	case token.RefFunction, token.CondRefFunction:
		name := s.wrap(tree.RefFunctionName, tok)
		return s.reference(s.b.New(tree.ReferenceFunctionCall, name, s.parseArguments()))

	case token.Sheet, token.MultipleSheets:
		return s.parsePrefixed(s.b.New(tree.Prefix, s.leaf(tok)), lexer.AfterPrefix)

	case token.Quote:
		return s.parsePrefixed(s.parseQuotedPrefix(s.leaf(tok)), lexer.AfterPrefix)

	case token.FileNameNumeric, token.FileNameEnclosed, token.FilePath:
		return s.parseAfterFile(s.parseFile(tok))

	case token.RefError:
		// #REF!A1 is what remains of Sheet!A1 after the sheet is deleted.
		if lexer.AfterPrefix.Set().Has(s.lex.Peek(lexer.AfterPrefix).Kind) {
			return s.parsePrefixed(s.b.New(tree.Prefix, s.leaf(tok)), lexer.AfterPrefix)
		}
	}

	item, ok := s.parseItem(tok)
	if !ok {
		s.unexpected(tok, m, where)
	}
	return s.reference(item)
}

// parseItem turns tok, which has been consumed, into a reference item.
func (s *state) parseItem(tok token.Token) (tree.Node, bool) {
	if kind, ok := itemKinds[tok.Kind]; ok {
		return s.wrap(kind, tok), true
	}
	switch tok.Kind {
	case token.Name:
		// A table name is immediately followed by its bracket.
		if s.lex.Peek(lexer.Qualifier).Kind == token.LBracket {
			qualifier := s.wrap(tree.StructuredReferenceQualifier, tok)
			return s.parseStructured(qualifier, s.lex.Next(lexer.Qualifier)), true
		}
		return s.wrap(tree.NamedRange, tok), true

	case token.UDF:
		name := s.wrap(tree.UDFName, tok)
		return s.b.New(tree.UDFunctionCall, name, s.parseArguments()), true

	case token.LBracket:
		return s.parseStructured(tree.Node{}, tok), true
	}
	return tree.Node{}, false
}

// parsePrefixed parses the reference item following prefix, lexed in mode
// m.
func (s *state) parsePrefixed(prefix tree.Node, m lexer.Mode) expr {
	tok := s.lex.Next(m)
	item, ok := s.parseItem(tok)
	if !ok {
		s.unexpected(tok, m, "a reference after "+prefix.MustPrint())
	}
	return s.reference(prefix, item)
}

// parseQuotedPrefix parses a prefix whose opening quote has been consumed.
func (s *state) parseQuotedPrefix(quote tree.Node) tree.Node {
	tok := s.lex.Next(lexer.Quoted)
	switch tok.Kind {
	case token.SheetQuoted, token.MultipleSheetsQuoted:
		return s.b.New(tree.Prefix, quote, s.leaf(tok))

	case token.FileNameNumeric, token.FileNameEnclosed, token.FilePath:
		file := s.parseFile(tok)
		sheet := s.lex.Next(lexer.AfterQuotedFile)
		if sheet.Kind != token.SheetQuoted && sheet.Kind != token.MultipleSheetsQuoted {
			s.unexpected(sheet, lexer.Quoted, "a sheet name")
		}
		return s.b.New(tree.Prefix, quote, file, s.leaf(sheet))
	}
	s.unexpected(tok, lexer.Quoted, "a sheet or workbook name")
	return tree.Node{}
}

// parseFile parses a workbook designator starting with tok.
func (s *state) parseFile(tok token.Token) tree.Node {
	if tok.Kind != token.FilePath {
		return s.wrap(tree.File, tok)
	}
	name := s.lex.Next(lexer.AfterFilePath)
	if name.Kind != token.FileNameEnclosed && name.Kind != token.FileName {
		s.unexpected(name, lexer.AfterFilePath, "a file name")
	}
	return s.b.New(tree.File, s.leaf(tok), s.leaf(name))
}

// parseAfterFile parses what follows an unquoted workbook designator: a
// sheet, a workbook-level name, or a dynamic data exchange link.
func (s *state) parseAfterFile(file tree.Node) expr {
	tok := s.lex.Next(lexer.AfterFile)
	switch tok.Kind {
	case token.Sheet, token.MultipleSheets:
		return s.parsePrefixed(s.b.New(tree.Prefix, file, s.leaf(tok)), lexer.AfterPrefix)

	case token.Bang:
		bang := s.leaf(tok)
		if s.lex.Peek(lexer.AfterFileBang).Kind == token.SingleQuotedString {
			link := s.leaf(s.lex.Next(lexer.AfterFileBang))
			return s.reference(s.b.New(tree.DynamicDataExchange, file, bang, link))
		}
		return s.parsePrefixed(s.b.New(tree.Prefix, file, bang), lexer.AfterFileBang)
	}
	s.unexpected(tok, lexer.AfterFile, "a sheet name or `!`")
	return expr{}
}

// parseStructured parses a structured reference whose opening bracket has
// been consumed. qualifier is nil for references to the enclosing table.
func (s *state) parseStructured(qualifier tree.Node, open token.Token) tree.Node {
	var children []tree.Node
	if !qualifier.IsNil() {
		children = append(children, qualifier)
	}
	children = append(children, s.leaf(open))

	if !qualifier.IsNil() && s.lex.Peek(lexer.StructuredOpen).Kind == token.RBracket {
		children = append(children, s.leaf(s.lex.Next(lexer.StructuredOpen)))
		return s.b.New(tree.StructuredReference, children...)
	}

	children = append(children, s.parseStructuredExpr())
	closing := s.expect(lexer.StructuredAfterItem, token.RBracket, "`]`")
	children = append(children, s.leaf(closing))
	return s.b.New(tree.StructuredReference, children...)
}

// parseStructuredExpr parses the inside of a structured reference: up to
// two specifiers followed by an optional column range, or a row-relative
// column range introduced by @.
func (s *state) parseStructuredExpr() tree.Node {
	var items []tree.Node
	var first tree.Node
	if s.lex.Peek(lexer.StructuredOpen).Kind == token.At {
		at := s.leaf(s.lex.Next(lexer.StructuredOpen))
		switch s.lex.Peek(lexer.StructuredAfterAt).Kind {
		case token.SRColumn, token.LBracket:
			items = append(items, at, s.parseStructuredItem(lexer.StructuredAfterAt, false))
			return s.structuredRange(items)
		}
		first = s.b.New(tree.StructuredReferenceSpecifier, at)
	}

	for specifiers := 0; ; specifiers++ {
		item := first
		first = tree.Node{}
		if item.IsNil() {
			item = s.parseStructuredItem(lexer.StructuredOpen, specifiers < 2)
		}
		items = append(items, item)
		if item.Is(tree.StructuredReferenceColumn) {
			return s.structuredRange(items)
		}
		if s.lex.Peek(lexer.StructuredAfterItem).Kind != token.Comma {
			return s.b.New(tree.StructuredReferenceExpression, items...)
		}
		items = append(items, s.leaf(s.lex.Next(lexer.StructuredAfterItem)))
	}
}

// structuredRange completes items, which end in a column, with an optional
// second column.
func (s *state) structuredRange(items []tree.Node) tree.Node {
	if s.lex.Peek(lexer.StructuredAfterItem).Kind == token.Colon {
		items = append(items,
			s.leaf(s.lex.Next(lexer.StructuredAfterItem)),
			s.parseStructuredItem(lexer.StructuredOpen, false),
		)
	}
	return s.b.New(tree.StructuredReferenceExpression, items...)
}

// parseStructuredItem parses a column or, if allowed, a specifier; either
// may be enclosed in brackets.
func (s *state) parseStructuredItem(m lexer.Mode, specifier bool) tree.Node {
	where := "a column name"
	if specifier {
		where = "a column name or specifier"
	}

	tok := s.lex.Next(m)
	switch {
	case tok.Kind == token.SRColumn:
		return s.wrap(tree.StructuredReferenceColumn, tok)
	case specifier && (tok.Kind == token.SRSpecifier || tok.Kind == token.At):
		return s.wrap(tree.StructuredReferenceSpecifier, tok)
	case tok.Kind == token.LBracket:
		open := s.leaf(tok)
		inner := s.lex.Next(lexer.StructuredInner)
		kind := tree.StructuredReferenceColumn
		switch {
		case inner.Kind == token.SRColumn:
		case specifier && inner.Kind == token.SRSpecifier:
			kind = tree.StructuredReferenceSpecifier
		default:
			s.unexpected(inner, lexer.StructuredInner, where)
		}
		closing := s.expect(lexer.StructuredAfterItem, token.RBracket, "`]`")
		return s.b.New(kind, open, s.leaf(inner), s.leaf(closing))
	}
	s.unexpected(tok, m, where)
	return tree.Node{}
}
