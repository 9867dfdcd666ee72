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

// Package lexer implements the contextual tokenizer for Excel formulas.
//
// Excel's lexical grammar is heavily ambiguous: "A1" is both a cell and a
// valid name, "Sheet1:Sheet3!" overlaps a range, and a single space is the
// intersection operator. The lexer resolves this with a static priority per
// terminal, and by letting the parser say which kinds of token it expects
// next (a [Mode]).
package lexer

import (
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/spreadsheetlab/XLParser/token"
)

// Lexer produces tokens from a formula on demand.
type Lexer struct {
	g *Grammar

	text    string
	runes   []rune
	offsets []int // Byte offset of each rune, plus one for the end.
	lines   []int // Rune index of the start of each line.

	pos int // Rune index of the cursor.

	cache struct {
		valid     bool
		pos, next int
		mode      Mode
		tok       token.Token
	}
}

func newLexer(g *Grammar, text string) *Lexer {
	l := &Lexer{
		g:     g,
		text:  text,
		runes: []rune(text),
		lines: []int{0},
	}
	l.offsets = make([]int, 0, len(l.runes)+1)
	for i, r := range text {
		l.offsets = append(l.offsets, i)
		if r == '\n' {
			l.lines = append(l.lines, len(l.offsets))
		}
	}
	l.offsets = append(l.offsets, len(text))
	return l
}

// Text returns the text being lexed.
func (l *Lexer) Text() string {
	return l.text
}

// Done returns whether only whitespace remains.
func (l *Lexer) Done() bool {
	return l.skipSpace(l.pos) == len(l.runes)
}

// Peek returns the next token in mode m without consuming it.
//
// If nothing in m matches, Peek returns a token of kind [token.Unknown]
// covering the offending character; see [Lexer.Explain].
func (l *Lexer) Peek(m Mode) token.Token {
	if c := &l.cache; c.valid && c.pos == l.pos && c.mode == m {
		return c.tok
	}
	tok, next := l.scan(m, l.pos)
	l.cache.valid = true
	l.cache.pos, l.cache.next = l.pos, next
	l.cache.mode = m
	l.cache.tok = tok
	return tok
}

// Next consumes and returns the next token in mode m.
func (l *Lexer) Next(m Mode) token.Token {
	tok := l.Peek(m)
	if tok.Kind != token.Unknown {
		l.pos = l.cache.next
	}
	return tok
}

// Implied mints a zero-width token of the given kind at the cursor, after any
// whitespace.
func (l *Lexer) Implied(kind token.Kind) token.Token {
	at := l.skipSpace(l.pos)
	return token.Token{Kind: kind, Span: l.span(at, at)}
}

// Explain describes why tok, which must have come from Peek or Next in mode m,
// could not be lexed.
func (l *Lexer) Explain(tok token.Token, m Mode) string {
	switch {
	case tok.Kind != token.Unknown:
		return "unexpected " + Describe(tok)
	case m == Quoted:
		return "unterminated quoted name"
	case tok.Text == `"`:
		return "unterminated string literal"
	case tok.Text == "'" && m.set.Has(token.SingleQuotedString):
		return "unterminated string literal"
	default:
		return fmt.Sprintf("unrecognized character %q", tok.Text)
	}
}

// Describe renders tok for use in a diagnostic.
func Describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of formula"
	case token.Intersect:
		return "intersection"
	case token.EmptyArgument:
		return "empty argument"
	default:
		return "`" + tok.Text + "`"
	}
}

func (l *Lexer) skipSpace(pos int) int {
	for pos < len(l.runes) && unicode.IsSpace(l.runes[pos]) {
		pos++
	}
	return pos
}

// scan lexes one token in mode m starting at pos, and returns it along with
// the position after it.
func (l *Lexer) scan(m Mode, pos int) (token.Token, int) {
	start := pos
	if m.skipSpace {
		pos = l.skipSpace(pos)
	}
	if pos == len(l.runes) {
		return token.Token{Kind: token.EOF, Span: l.span(pos, pos)}, pos
	}

	spaced := pos > start
	rest := l.runes[pos:]

	if m.intersect && spaced && rest[0] == '#' && l.matchesError(rest) {
		// "A1 #REF!" intersects with an error rather than spilling.
		return token.Token{Kind: token.Intersect, Span: l.span(start, start)}, start
	}

	if kind, n := l.matchTerminal(m, rest); n > 0 {
		return l.token(kind, pos, pos+n), pos + n
	}
	if kind, n := l.matchSymbol(m, rest); n > 0 {
		return l.token(kind, pos, pos+n), pos + n
	}

	if m.intersect && spaced {
		return token.Token{Kind: token.Intersect, Span: l.span(start, start)}, start
	}

	tok := l.token(token.Unknown, pos, pos+1)
	return tok, pos
}

// matchTerminal finds the best regular terminal at the start of rest.
func (l *Lexer) matchTerminal(m Mode, rest []rune) (token.Kind, int) {
	best, bestLen, bestPriority := token.Unknown, 0, 0
	for i := range l.g.terminals {
		t := &l.g.terminals[i]
		if !m.set.Has(t.kind) {
			continue
		}
		if bestLen > 0 && t.priority < bestPriority {
			break
		}
		if n := l.match(t, rest); n > bestLen {
			best, bestLen, bestPriority = t.kind, n, t.priority
		}
	}
	return best, bestLen
}

func (l *Lexer) match(t *terminal, rest []rune) int {
	if t.re == nil {
		prefix, _ := l.g.functions.Get(string(rest))
		return utf8.RuneCountInString(prefix)
	}
	m, err := t.re.FindRunesMatch(rest)
	if err != nil || m == nil {
		return 0
	}
	return m.Length
}

func (l *Lexer) matchesError(rest []rune) bool {
	for i := range l.g.terminals {
		t := &l.g.terminals[i]
		if (t.kind == token.Error || t.kind == token.RefError) && l.match(t, rest) > 0 {
			return true
		}
	}
	return false
}

// matchSymbol finds the longest fixed-text token at the start of rest.
func (l *Lexer) matchSymbol(m Mode, rest []rune) (token.Kind, int) {
	for _, k := range symbols {
		if !m.set.Has(k) {
			continue
		}
		sym := []rune(k.Symbol())
		if len(rest) >= len(sym) && slices.Equal(rest[:len(sym)], sym) {
			return k, len(sym)
		}
	}
	return token.Unknown, 0
}

func (l *Lexer) token(kind token.Kind, start, end int) token.Token {
	return token.Token{
		Kind: kind,
		Text: l.text[l.offsets[start]:l.offsets[end]],
		Span: l.span(start, end),
	}
}

// span converts a range of rune indices into a [token.Span].
func (l *Lexer) span(start, end int) token.Span {
	line, _ := slices.BinarySearch(l.lines, start+1)
	return token.Span{
		Offset: l.offsets[start],
		Len:    l.offsets[end] - l.offsets[start],
		Line:   line,
		Column: start - l.lines[line-1] + 1,
	}
}
