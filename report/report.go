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


package report

import (
	"fmt"
	"slices"
)

// Report is an ordered collection of diagnostics.
type Report []Diagnostic

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) *Diagnostic {
	d := r.push(Error)
	err.Diagnose(d)
	return d
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) *Diagnostic {
	d := r.push(Warning)
	err.Diagnose(d)
	return d
}

// Errorf creates a new error diagnostic with the given message; analogous to
// [fmt.Errorf].
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(Error).With(Message(format, args...))
}

// Warnf creates a new warning diagnostic with the given message.
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(Warning).With(Message(format, args...))
}

// Remarkf creates a new remark diagnostic with the given message.
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(Remark).With(Message(format, args...))
}

func (r *Report) push(level Level) *Diagnostic {
	*r = append(*r, Diagnostic{level: level})
	return &(*r)[len(*r)-1]
}

// HasErrors returns whether any diagnostic in the report is an error.
func (r Report) HasErrors() bool {
	return slices.ContainsFunc(r, func(d Diagnostic) bool {
		return d.level == Error
	})
}

// Sort sorts the diagnostics by position, keeping the relative order of
// diagnostics at the same position.
func (r Report) Sort() {
	slices.SortStableFunc(r, func(a, b Diagnostic) int {
		return a.span.Offset - b.span.Offset
	})
}

// AsError returns this report as an error if it contains any errors, or nil
// otherwise.
func (r Report) AsError() error {
	if !r.HasErrors() {
		return nil
	}
	return &ErrInvalidFormula{Report: r}
}

// Strings renders each diagnostic with [Diagnostic.String].
func (r Report) Strings() []string {
	out := make([]string, len(r))
	for i, d := range r {
		out[i] = d.String()
	}
	return out
}

// ErrInvalidFormula wraps a [Report] containing at least one error as an
// [error].
type ErrInvalidFormula struct {
	Report Report
}

// Error implements [error], describing the first error diagnostic.
func (e *ErrInvalidFormula) Error() string {
	for _, d := range e.Report {
		if d.level == Error {
			if n := len(e.Report); n > 1 {
				return fmt.Sprintf("invalid formula: %v (and %d more)", d, n-1)
			}
			return fmt.Sprintf("invalid formula: %v", d)
		}
	}
	return "invalid formula"
}

// First returns the first error diagnostic.
func (e *ErrInvalidFormula) First() Diagnostic {
	for _, d := range e.Report {
		if d.level == Error {
			return d
		}
	}
	return Diagnostic{}
}
