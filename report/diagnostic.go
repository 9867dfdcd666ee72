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


// Package report provides positioned diagnostics for formula parsing.
package report

import (
	"fmt"

	"github.com/spreadsheetlab/XLParser/token"
)

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Red. Indicates the formula is invalid.
	Error Level = 1 + iota
	// Yellow. Indicates something that probably should not be ignored.
	Warning
	// Cyan. This is the diagnostics version of "info".
	Remark

	noteLevel // Used internally within the diagnostic renderer.
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	case noteLevel:
		return "note"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Tag is a machine-readable identification for a diagnostic.
//
// Tags are lowercase identifiers separated by dashes, e.g. unterminated-string.
type Tag string

// Apply implements [DiagnosticOption].
func (t Tag) Apply(d *Diagnostic) {
	if d.tag != "" {
		panic("xlparser/report: set diagnostic tag more than once")
	}
	d.tag = t
}

// Diagnostic is a single message about a formula, with the position it
// applies to.
//
// To construct a diagnostic, push one onto a [Report] with a function like
// [Report.Errorf], then call [Diagnostic.With] to apply options to it.
type Diagnostic struct {
	tag     Tag
	level   Level
	message string
	span    token.Span

	notes, help []string
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
//
// Nil values passed to [Diagnostic.With] are ignored.
type DiagnosticOption interface {
	Apply(*Diagnostic)
}

// Diagnose is implemented by error types that know how to describe
// themselves as a diagnostic.
type Diagnose interface {
	Diagnose(*Diagnostic)
}

type optionFunc func(*Diagnostic)

func (f optionFunc) Apply(d *Diagnostic) { f(d) }

// Message sets the diagnostic's message.
func Message(format string, args ...any) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) {
		d.message = fmt.Sprintf(format, args...)
	})
}

// At sets the source position a diagnostic points to.
func At(span token.Span) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) {
		d.span = span
	})
}

// Note returns a DiagnosticOption that provides the user with context about the
// diagnostic.
func Note(format string, args ...any) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) {
		d.notes = append(d.notes, fmt.Sprintf(format, args...))
	})
}

// Help returns a DiagnosticOption that provides the user with a helpful prose
// suggestion for resolving the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) {
		d.help = append(d.help, fmt.Sprintf(format, args...))
	})
}

// With applies the given options to this diagnostic.
func (d *Diagnostic) With(options ...DiagnosticOption) *Diagnostic {
	for _, option := range options {
		if option != nil {
			option.Apply(d)
		}
	}
	return d
}

// Level returns this diagnostic's severity.
func (d Diagnostic) Level() Level { return d.level }

// Message returns this diagnostic's message.
func (d Diagnostic) Message() string { return d.message }

// Span returns the span this diagnostic points to.
func (d Diagnostic) Span() token.Span { return d.span }

// Line returns the one-based line this diagnostic points to.
func (d Diagnostic) Line() int { return d.span.Line }

// Column returns the one-based column this diagnostic points to.
func (d Diagnostic) Column() int { return d.span.Column }

// Notes returns this diagnostic's notes.
func (d Diagnostic) Notes() []string { return d.notes }

// HelpText returns this diagnostic's help suggestions.
func (d Diagnostic) HelpText() []string { return d.help }

// Is checks whether this diagnostic has a particular tag.
func (d Diagnostic) Is(tag Tag) bool { return d.tag == tag }

// String implements [fmt.Stringer], in the form "line:col: level: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %v: %s", d.span.Line, d.span.Column, d.level, d.message)
}
