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
	"fmt"

	"github.com/spreadsheetlab/XLParser/internal/lexer"
	"github.com/spreadsheetlab/XLParser/report"
	"github.com/spreadsheetlab/XLParser/token"
)

// Diagnostic tags attached by the parser.
const (
	TagLex     report.Tag = "lex-error"
	TagSyntax  report.Tag = "syntax-error"
	TagTooLong report.Tag = "too-long"
)

// ErrUnrecognized diagnoses text at which no terminal matches.
type ErrUnrecognized struct {
	Token token.Token // The offending character, of kind [token.Unknown].
	Why   string      // Explanation from the lexer.
}

// Error implements [error].
func (e ErrUnrecognized) Error() string {
	return e.Why
}

// Diagnose implements [report.Diagnose].
func (e ErrUnrecognized) Diagnose(d *report.Diagnostic) {
	d.With(TagLex, report.Message("%s", e.Why), report.At(e.Token.Span))
	switch e.Token.Text {
	case `"`:
		d.With(report.Help("strings end with a matching `\"`; write `\"\"` for a literal quote"))
	case "'":
		d.With(report.Help("quoted names end with `'`; write `''` for a literal quote"))
	}
}

// ErrUnexpected diagnoses a token that is valid on its own but cannot appear
// where it was found.
type ErrUnexpected struct {
	Token token.Token
	Where string // What the parser was looking for, e.g. "operand".
}

// Error implements [error].
func (e ErrUnexpected) Error() string {
	return fmt.Sprintf("unexpected %s", lexer.Describe(e.Token))
}

// Diagnose implements [report.Diagnose].
func (e ErrUnexpected) Diagnose(d *report.Diagnostic) {
	d.With(TagSyntax, report.Message("%s", e.Error()), report.At(e.Token.Span))
	if e.Where != "" {
		d.With(report.Note("expected %s", e.Where))
	}
}

// ErrNotReference diagnoses a non-reference operand of a reference-only
// operator, such as range or union.
type ErrNotReference struct {
	Span     token.Span // The offending operand.
	Operator string     // The operator requiring a reference.
}

// Error implements [error].
func (e ErrNotReference) Error() string {
	return fmt.Sprintf("operand of %s must be a reference", e.Operator)
}

// Diagnose implements [report.Diagnose].
func (e ErrNotReference) Diagnose(d *report.Diagnostic) {
	d.With(TagSyntax, report.Message("%s", e.Error()), report.At(e.Span))
}

// ErrTooLong diagnoses a formula that exceeds the configured length limit.
type ErrTooLong struct {
	Length, Max int
}

// Error implements [error].
func (e ErrTooLong) Error() string {
	return fmt.Sprintf("formula is %d characters long, limit is %d", e.Length, e.Max)
}

// Diagnose implements [report.Diagnose].
func (e ErrTooLong) Diagnose(d *report.Diagnostic) {
	d.With(TagTooLong, report.Message("%s", e.Error()), report.At(token.Span{Line: 1, Column: 1}))
}
