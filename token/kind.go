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


// Package token defines the lexical vocabulary of Excel formulas.
package token

import "fmt"

// Kind identifies the terminal a [Token] was lexed as.
type Kind uint8

const (
	Unknown Kind = iota

	Bool
	Number
	Text
	SingleQuotedString
	Error
	RefError

	ExcelFunction
	RefFunction
	CondRefFunction
	UDF

	Cell
	VRange
	HRange
	Name
	NamedRangeCombination
	ReservedName
	SRSpecifier
	SRColumn

	Sheet
	SheetQuoted
	MultipleSheets
	MultipleSheetsQuoted
	FileNameNumeric
	FileNameEnclosed
	FileName
	FilePath

	// Intersect and EmptyArgument are zero-width tokens synthesized by the
	// lexer from context.
	Intersect
	EmptyArgument

	Eq
	Lt
	Gt
	Le
	Ge
	Ne
	Amp
	Plus
	Minus
	Star
	Slash
	Caret
	Percent
	Hash
	At
	Colon
	Comma
	Semicolon
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Bang
	Quote

	EOF

	kindCount
)

var names = [...]string{
	Unknown:               "Unknown",
	Bool:                  "BoolToken",
	Number:                "NumberToken",
	Text:                  "TextToken",
	SingleQuotedString:    "SingleQuotedString",
	Error:                 "ErrorToken",
	RefError:              "RefErrorToken",
	ExcelFunction:         "ExcelFunction",
	RefFunction:           "ExcelRefFunctionToken",
	CondRefFunction:       "ExcelConditionalRefFunctionToken",
	UDF:                   "UDFToken",
	Cell:                  "CellToken",
	VRange:                "VRangeToken",
	HRange:                "HRangeToken",
	Name:                  "NameToken",
	NamedRangeCombination: "NamedRangeCombinationToken",
	ReservedName:          "ReservedNameToken",
	SRSpecifier:           "SRSpecifierToken",
	SRColumn:              "SRColumnToken",
	Sheet:                 "SheetNameToken",
	SheetQuoted:           "SheetNameQuotedToken",
	MultipleSheets:        "MultipleSheetsToken",
	MultipleSheetsQuoted:  "MultipleSheetsQuotedToken",
	FileNameNumeric:       "FileNameNumericToken",
	FileNameEnclosed:      "FileNameEnclosedInBracketsToken",
	FileName:              "FileNameToken",
	FilePath:              "FilePathToken",
	Intersect:             "INTERSECT",
	EmptyArgument:         "EmptyArgumentToken",
	Eq:                    "=",
	Lt:                    "<",
	Gt:                    ">",
	Le:                    "<=",
	Ge:                    ">=",
	Ne:                    "<>",
	Amp:                   "&",
	Plus:                  "+",
	Minus:                 "-",
	Star:                  "*",
	Slash:                 "/",
	Caret:                 "^",
	Percent:               "%",
	Hash:                  "#",
	At:                    "@",
	Colon:                 ":",
	Comma:                 ",",
	Semicolon:             ";",
	LParen:                "(",
	RParen:                ")",
	LBrace:                "{",
	RBrace:                "}",
	LBracket:              "[",
	RBracket:              "]",
	Bang:                  "!",
	Quote:                 "'",
	EOF:                   "EOF",
}

// String implements [fmt.Stringer].
//
// Symbols print as their literal text; other kinds print the terminal name
// used in tree projections, such as "CellToken".
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

// GoString implements [fmt.GoStringer].
func (k Kind) GoString() string {
	return "token." + k.String()
}

// IsSymbol returns whether this kind is a fixed punctuation or operator symbol.
func (k Kind) IsSymbol() bool {
	return k >= Eq && k <= Quote
}

// IsOperator returns whether tokens of this kind act as operators in
// function-call nodes. This includes the synthetic intersection token.
func (k Kind) IsOperator() bool {
	switch k {
	case Eq, Lt, Gt, Le, Ge, Ne, Amp, Plus, Minus, Star, Slash, Caret,
		Percent, Hash, At, Colon, Intersect:
		return true
	default:
		return false
	}
}

// Symbol returns the fixed text of a symbol kind, or "" for other kinds.
func (k Kind) Symbol() string {
	if !k.IsSymbol() {
		return ""
	}
	return names[k]
}

// Kinds returns every valid kind except [Unknown].
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Unknown + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
