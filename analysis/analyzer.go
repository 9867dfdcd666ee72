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

// Package analysis computes metrics over parsed formulas, such as how
// deeply they nest and which functions and references they use.
package analysis

import (
	"errors"
	"slices"
	"strconv"
	"sync"

	"github.com/spreadsheetlab/XLParser/parser"
	"github.com/spreadsheetlab/XLParser/reference"
	"github.com/spreadsheetlab/XLParser/tree"
)

// ConditionalFunctions are the functions counted by
// [Analyzer.ConditionalComplexity].
var ConditionalFunctions = []string{
	"IF",
	"COUNTIF",
	"COUNTIFS",
	"SUMIF",
	"SUMIFS",
	"AVERAGEIF",
	"AVERAGEIFS",
	"IFERROR",
}

// Analyzer answers questions about a single parsed formula. An Analyzer is
// safe for concurrent use.
type Analyzer struct {
	tree  *tree.Tree
	nodes func() []tree.Node
}

// New parses text with the default parser and returns an analyzer for it.
func New(text string) (*Analyzer, error) {
	t, err := parser.Default().Parse(text)
	if err != nil {
		return nil, err
	}
	return FromTree(t), nil
}

// FromTree returns an analyzer for an already parsed formula.
func FromTree(t *tree.Tree) *Analyzer {
	a := &Analyzer{tree: t}
	a.nodes = sync.OnceValue(func() []tree.Node {
		return slices.Collect(t.Root().AllNodes())
	})
	return a
}

// Tree returns the analyzed tree.
func (a *Analyzer) Tree() *tree.Tree {
	return a.tree
}

// Formula returns the text of the analyzed formula.
func (a *Analyzer) Formula() string {
	return a.tree.Source()
}

// References returns the reference nodes of the formula that are not part
// of a larger reference.
func (a *Analyzer) References() []tree.Node {
	return reference.Nodes(a.tree.Root())
}

// ParserReferences describes every location the formula refers to.
func (a *Analyzer) ParserReferences() []reference.Reference {
	return reference.References(a.tree.Root())
}

// Functions returns the name of every function and operator applied by the
// formula, in source order. Repeated uses are listed repeatedly.
func (a *Analyzer) Functions() []string {
	var out []string
	for _, n := range a.nodes() {
		if !n.IsFunction() {
			continue
		}
		if name, err := n.Function(); err == nil {
			out = append(out, name)
		}
	}
	return out
}

// Constants returns the text of every constant in the formula. A number's
// sign is part of its constant.
func (a *Analyzer) Constants() []string {
	var out []string
	for n := range a.tree.Root().AllNodesConditional(tree.Node.IsNumberWithSign) {
		if n.Is(tree.Constant) || n.IsNumberWithSign() {
			out = append(out, n.MustPrint())
		}
	}
	return out
}

// Numbers returns the value of every number in the formula. A number's sign
// is part of its value.
func (a *Analyzer) Numbers() []float64 {
	var out []float64
	for n := range a.tree.Root().AllNodesConditional(tree.Node.IsNumberWithSign) {
		if !n.Is(tree.Number) && !n.IsNumberWithSign() {
			continue
		}
		v, err := strconv.ParseFloat(n.MustPrint(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Depth returns the greatest number of nested Formula nodes.
func (a *Analyzer) Depth() int {
	return depth(a.tree.Root(), func(n tree.Node) bool { return n.Is(tree.Formula) })
}

// OperatorDepth returns the greatest number of nested functions and
// operators. If any names are given, only functions with those names are
// counted.
func (a *Analyzer) OperatorDepth(names ...string) int {
	return depth(a.tree.Root(), func(n tree.Node) bool {
		if !n.IsFunction() {
			return false
		}
		if len(names) == 0 {
			return true
		}
		name, err := n.Function()
		return err == nil && slices.Contains(names, name)
	})
}

// ConditionalComplexity returns the greatest number of nested conditional
// functions.
func (a *Analyzer) ConditionalComplexity() int {
	return a.OperatorDepth(ConditionalFunctions...)
}

func depth(n tree.Node, counts func(tree.Node) bool) int {
	var d int
	for _, c := range n.Children() {
		d = max(d, depth(c, counts))
	}
	if counts(n) {
		d++
	}
	return d
}
