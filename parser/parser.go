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
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/spreadsheetlab/XLParser/internal/lexer"
	"github.com/spreadsheetlab/XLParser/report"
	"github.com/spreadsheetlab/XLParser/tree"
)

// ErrGrammar is returned by [New] when the grammar fails its construction
// time consistency checks.
var ErrGrammar = lexer.ErrGrammar

// Version selects the set of built-in functions a parser recognizes.
type Version = lexer.Version

// Excel versions, re-exported for convenience.
const (
	Excel2010 = lexer.Excel2010
	Excel2013 = lexer.Excel2013
	Excel2016 = lexer.Excel2016
	Excel2019 = lexer.Excel2019
	Excel365  = lexer.Excel365

	DefaultVersion = lexer.DefaultVersion
)

// ParseVersion parses a version name such as "2016", "excel2016" or "365".
func ParseVersion(s string) (Version, error) {
	return lexer.ParseVersion(s)
}

// Functions returns the built-in function names known to v, sorted. The
// reference functions INDEX, OFFSET, INDIRECT, IF and CHOOSE are not
// included.
func Functions(v Version) []string {
	return lexer.Functions(v)
}

// Parser parses formulas. A Parser is immutable and safe for concurrent
// use.
type Parser struct {
	grammar   *lexer.Grammar
	maxLength int
}

// Option configures a [Parser].
type Option func(*config)

type config struct {
	version   Version
	maxLength int
}

// WithVersion selects the Excel version whose built-in functions are
// recognized. Names of newer functions lex as user-defined functions.
func WithVersion(v Version) Option {
	return func(c *config) { c.version = v }
}

// WithMaxLength rejects formulas longer than n characters. Zero, the
// default, means no limit.
func WithMaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// New builds a parser. It fails with [ErrGrammar] if the grammar is
// inconsistent.
func New(opts ...Option) (*Parser, error) {
	c := config{version: DefaultVersion}
	for _, opt := range opts {
		opt(&c)
	}
	if c.maxLength < 0 {
		return nil, fmt.Errorf("parser: negative max length %d", c.maxLength)
	}
	if err := validateOnce(); err != nil {
		return nil, err
	}
	g, err := lexer.Compile(c.version)
	if err != nil {
		return nil, err
	}
	return &Parser{grammar: g, maxLength: c.maxLength}, nil
}

// MustNew is like [New], but panics on error.
func MustNew(opts ...Option) *Parser {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

var (
	validateOnce = sync.OnceValue(validate)
	defaultOnce  = sync.OnceValue(func() *Parser { return MustNew() })
)

// Default returns the shared parser for [DefaultVersion].
func Default() *Parser {
	return defaultOnce()
}

// Version returns the Excel version this parser targets.
func (p *Parser) Version() Version {
	return p.grammar.Version()
}

// IsFunction returns whether name, without its opening parenthesis, is a
// built-in function for this parser's version.
func (p *Parser) IsFunction(name string) bool {
	return p.grammar.IsFunction(name)
}

// ParseToTree parses text, returning the tree on success or the
// diagnostics explaining why it is not a valid formula.
//
// The tree is nil whenever the report contains an error.
func (p *Parser) ParseToTree(text string) (*tree.Tree, report.Report) {
	var r report.Report
	if n := utf8.RuneCountInString(text); p.maxLength > 0 && n > p.maxLength {
		r.Error(ErrTooLong{Length: n, Max: p.maxLength})
		return nil, r
	}

	st := &state{
		lex:    p.grammar.Lex(text),
		b:      tree.NewBuilder(text),
		Report: &r,
	}
	root, ok := st.run()
	if !ok || r.HasErrors() {
		return nil, r
	}
	return root, r
}

// Parse parses text, returning an [*report.ErrInvalidFormula] if it is not
// a valid formula.
func (p *Parser) Parse(text string) (*tree.Tree, error) {
	t, r := p.ParseToTree(text)
	if err := r.AsError(); err != nil {
		return nil, err
	}
	return t, nil
}

// IsInvalidFormula returns whether err reports an invalid formula, as
// opposed to a configuration problem.
func IsInvalidFormula(err error) bool {
	var invalid *report.ErrInvalidFormula
	return errors.As(err, &invalid)
}
