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
	"fmt"
	"strings"

	"github.com/spreadsheetlab/XLParser/token"
)

// Set is a set of token kinds.
type Set uint64

// NewSet returns a set containing kinds.
func NewSet(kinds ...token.Kind) Set {
	var s Set
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has returns whether k is in s.
func (s Set) Has(k token.Kind) bool {
	return s&(1<<k) != 0
}

// Union returns the union of s and other.
func (s Set) Union(other Set) Set {
	return s | other
}

// Without returns s with kinds removed.
func (s Set) Without(kinds ...token.Kind) Set {
	return s &^ NewSet(kinds...)
}

// Kinds returns the members of s in declaration order.
func (s Set) Kinds() []token.Kind {
	var out []token.Kind
	for _, k := range token.Kinds() {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// String implements [fmt.Stringer].
func (s Set) String() string {
	var names []string
	for _, k := range s.Kinds() {
		names = append(names, k.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Mode selects which tokens may appear at the current position. The parser
// always knows what it expects next, so the lexer never has to guess between
// readings that only make sense in different places.
type Mode struct {
	name string
	set  Set

	// If set, whitespace before the token is insignificant.
	skipSpace bool
	// If set, whitespace followed by something that is not an operator is
	// reported as a zero-width [token.Intersect].
	intersect bool
}

// Set returns the token kinds m accepts.
func (m Mode) Set() Set { return m.set }

// String implements [fmt.Stringer].
func (m Mode) String() string {
	return fmt.Sprintf("%s%v", m.name, m.set)
}

var referenceItems = NewSet(
	token.Cell, token.Name, token.NamedRangeCombination, token.VRange,
	token.HRange, token.RefError, token.UDF,
)

// The lexer modes used by the parser.
var (
	// Operand is the start of an expression.
	Operand = Mode{
		name: "operand",
		set: referenceItems.Union(NewSet(
			token.Bool, token.Number, token.Text, token.Error,
			token.ExcelFunction, token.RefFunction, token.CondRefFunction,
			token.ReservedName, token.Sheet, token.MultipleSheets,
			token.FileNameNumeric, token.FileNameEnclosed, token.FilePath,
			token.LParen, token.LBrace, token.Plus, token.Minus, token.At,
			token.Quote, token.LBracket, token.Comma, token.RParen,
		)),
		skipSpace: true,
	}

	// Continuation follows a complete operand.
	Continuation = Mode{
		name: "continuation",
		set: NewSet(
			token.Colon, token.Hash, token.Percent, token.Plus, token.Minus,
			token.Star, token.Slash, token.Caret, token.Amp, token.Eq,
			token.Lt, token.Gt, token.Le, token.Ge, token.Ne, token.Comma,
			token.RParen, token.RBrace, token.Semicolon,
		),
		skipSpace: true,
		intersect: true,
	}

	// Quoted follows the opening quote of a quoted prefix.
	Quoted = Mode{
		name: "quoted",
		set: NewSet(
			token.SheetQuoted, token.MultipleSheetsQuoted, token.FileNameNumeric,
			token.FileNameEnclosed, token.FilePath,
		),
	}

	// AfterFile follows an unquoted file designator.
	AfterFile = Mode{
		name: "after file",
		set:  NewSet(token.Sheet, token.MultipleSheets, token.Bang),
	}

	// AfterQuotedFile follows a file designator inside quotes.
	AfterQuotedFile = Mode{
		name: "after quoted file",
		set:  NewSet(token.SheetQuoted, token.MultipleSheetsQuoted),
	}

	// AfterFilePath follows a file path.
	AfterFilePath = Mode{
		name: "after file path",
		set:  NewSet(token.FileNameEnclosed, token.FileName),
	}

	// AfterFileBang follows "file!", where either a DDE string or a
	// workbook-level name may appear.
	AfterFileBang = Mode{
		name: "after file bang",
		set:  referenceItems.Union(NewSet(token.SingleQuotedString)),
	}

	// AfterPrefix follows a sheet prefix.
	AfterPrefix = Mode{
		name: "after prefix",
		set:  referenceItems.Union(NewSet(token.LBracket)),
	}

	// Qualifier follows a name that may qualify a structured reference.
	Qualifier = Mode{
		name: "qualifier",
		set:  NewSet(token.LBracket),
	}

	// StructuredOpen follows the outer "[" of a structured reference.
	StructuredOpen = Mode{
		name: "structured reference",
		set: NewSet(
			token.LBracket, token.At, token.SRSpecifier, token.SRColumn,
			token.RBracket,
		),
		skipSpace: true,
	}

	// StructuredInner follows a nested "[".
	StructuredInner = Mode{
		name:      "structured reference item",
		set:       NewSet(token.SRSpecifier, token.SRColumn),
		skipSpace: true,
	}

	// StructuredAfterAt follows "@" in a structured reference.
	StructuredAfterAt = Mode{
		name:      "structured reference column",
		set:       NewSet(token.LBracket, token.SRColumn, token.RBracket),
		skipSpace: true,
	}

	// StructuredAfterItem follows a specifier or column.
	StructuredAfterItem = Mode{
		name:      "structured reference separator",
		set:       NewSet(token.Comma, token.Colon, token.RBracket),
		skipSpace: true,
	}

	// ArrayElement is an element of a constant array.
	ArrayElement = Mode{
		name: "array element",
		set: NewSet(
			token.Bool, token.Number, token.Text, token.Error, token.RefError,
			token.Plus, token.Minus,
		),
		skipSpace: true,
	}

	// ArrayStart follows a leading "{", which opens either an array formula
	// or a constant array.
	ArrayStart = Mode{
		name:      "array start",
		set:       ArrayElement.set.Union(NewSet(token.Eq)),
		skipSpace: true,
	}

	// ArraySeparator follows an element of a constant array.
	ArraySeparator = Mode{
		name:      "array separator",
		set:       NewSet(token.Comma, token.Semicolon, token.RBrace),
		skipSpace: true,
	}

	// Start is the very beginning of a formula.
	Start = Mode{
		name:      "start",
		set:       Operand.set.Union(NewSet(token.Eq)).Without(token.Comma, token.RParen),
		skipSpace: true,
	}
)

// Modes returns every mode, for validation and diagnostics.
func Modes() []Mode {
	return []Mode{
		Start, Operand, Continuation, Quoted, AfterFile, AfterQuotedFile,
		AfterFilePath, AfterFileBang, AfterPrefix, Qualifier, StructuredOpen,
		StructuredInner, StructuredAfterAt, StructuredAfterItem, ArrayStart,
		ArrayElement, ArraySeparator,
	}
}
