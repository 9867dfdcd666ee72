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

package lexer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/spreadsheetlab/XLParser/internal/trie"
)

// ErrGrammar is returned when the lexical grammar is inconsistent. It is a
// configuration error: it can only happen while building a [Grammar], never
// while lexing a formula.
var ErrGrammar = errors.New("inconsistent formula grammar")

func grammarErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGrammar, fmt.Sprintf(format, args...))
}

// refFunctions are the functions that return references. They have their own
// terminals and must not appear in the built-in function tables.
var refFunctions = []string{"INDEX", "OFFSET", "INDIRECT", "IF", "CHOOSE"}

// Grammar is the compiled lexical grammar for one Excel version. It is
// immutable and safe for concurrent use.
type Grammar struct {
	version   Version
	functions *trie.Trie[string]
	terminals []terminal
}

var (
	compiledTerminals = sync.OnceValues(compileTerminals)

	grammarCache [len(versionNames)]struct {
		once sync.Once
		g    *Grammar
		err  error
	}
)

// Compile returns the grammar for v. Grammars are built once per version and
// shared.
func Compile(v Version) (*Grammar, error) {
	if v < 0 || int(v) >= len(grammarCache) {
		return nil, grammarErrorf("unknown version %v", v)
	}
	entry := &grammarCache[v]
	entry.once.Do(func() {
		entry.g, entry.err = build(v)
	})
	return entry.g, entry.err
}

func build(v Version) (*Grammar, error) {
	terms, err := compiledTerminals()
	if err != nil {
		return nil, err
	}
	g := &Grammar{
		version:   v,
		functions: new(trie.Trie[string]),
		terminals: terms,
	}

	names := Functions(v)
	for i, name := range names {
		if i > 0 && strings.EqualFold(names[i-1], name) {
			return nil, grammarErrorf("function %s is listed twice", name)
		}
		if slices.Contains(refFunctions, strings.ToUpper(name)) {
			return nil, grammarErrorf("reference function %s is listed as a plain function", name)
		}
		g.functions.Insert(name+"(", name)
		for _, prefix := range functionPrefixes {
			g.functions.Insert(prefix+name+"(", name)
		}
	}

	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// validate checks that every mode can produce each of its kinds, and that the
// terminal table is ordered the way the scanner relies on.
func (g *Grammar) validate() error {
	for i := 1; i < len(g.terminals); i++ {
		if g.terminals[i].priority > g.terminals[i-1].priority {
			return grammarErrorf("terminal %v is out of priority order", g.terminals[i].kind)
		}
	}

	var producible Set
	for _, t := range g.terminals {
		if producible.Has(t.kind) {
			return grammarErrorf("terminal %v is declared twice", t.kind)
		}
		producible |= NewSet(t.kind)
	}
	producible |= NewSet(symbols...)

	for _, m := range Modes() {
		if missing := m.set &^ producible; missing != 0 {
			return grammarErrorf("mode %s expects %v, which nothing produces", m.name, missing)
		}
	}
	return nil
}

// Version returns the Excel version g was compiled for.
func (g *Grammar) Version() Version {
	return g.version
}

// IsFunction returns whether name, without a trailing "(", is a built-in
// function in this grammar.
func (g *Grammar) IsFunction(name string) bool {
	return g.functions.Has(name + "(")
}

// Lex creates a lexer over text.
func (g *Grammar) Lex(text string) *Lexer {
	return newLexer(g, text)
}

// NewLexer is a convenience for lexing text with the default grammar. It
// panics if the grammar is inconsistent.
func NewLexer(text string) *Lexer {
	g, err := Compile(DefaultVersion)
	if err != nil {
		panic(err)
	}
	return g.Lex(text)
}
