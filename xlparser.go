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

package xlparser

import (
	"github.com/spreadsheetlab/XLParser/parser"
	"github.com/spreadsheetlab/XLParser/report"
	"github.com/spreadsheetlab/XLParser/tree"
)

// Parse parses a formula.
//
// Returns an [*report.ErrInvalidFormula] if text is not a valid formula.
func Parse(text string) (*tree.Tree, error) {
	return parser.Default().Parse(text)
}

// ParseToTree parses a formula, returning its diagnostics rather than an
// error. The tree is nil if the report contains any errors.
func ParseToTree(text string) (*tree.Tree, report.Report) {
	return parser.Default().ParseToTree(text)
}

// MustParse is like [Parse], but panics if text is not a valid formula.
//
// Intended for formulas known at compile time.
func MustParse(text string) *tree.Tree {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Print reconstructs the formula text of a node.
func Print(n tree.Node) (string, error) {
	return n.Print()
}

// Normalize parses a formula and prints it back, collapsing insignificant
// whitespace.
func Normalize(text string) (string, error) {
	t, err := Parse(text)
	if err != nil {
		return "", err
	}
	return t.Print()
}
