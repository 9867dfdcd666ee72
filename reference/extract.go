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

package reference

import (
	"slices"
	"strings"

	"github.com/spreadsheetlab/XLParser/token"
	"github.com/spreadsheetlab/XLParser/tree"
)

// Nodes returns the outermost Reference nodes under n, in source order,
// each with its wrappers skipped. The endpoints of a range are not
// reported separately from the range.
func Nodes(n tree.Node) []tree.Node {
	var out []tree.Node
	stop := func(n tree.Node) bool { return n.Is(tree.Reference) }
	for n := range n.AllNodesConditional(stop) {
		if n.Is(tree.Reference) {
			out = append(out, n.SkipToRelevant())
		}
	}
	return out
}

// References describes every location n refers to, in source order.
//
// A range between two cells is reported as one CellRange, and a range
// between two structured references to the same table as one Table
// reference. Ranges whose endpoints are computed, such as A1:INDEX(...),
// are reported as their parts. Arguments of reference-returning functions
// are searched as well.
func References(n tree.Node) []Reference {
	var out []Reference
	collect(n, &out)
	return out
}

func collect(n tree.Node, out *[]Reference) {
	for n.Is(tree.Reference) && n.NumChildren() == 1 {
		n = n.Child(0)
	}

	switch n.Kind() {
	case tree.Cell, tree.NamedRange, tree.HRange, tree.VRange, tree.RefError,
		tree.StructuredReference:
		appendNew(n, out)
		return

	case tree.Reference:
		if item := n.Child(1); item.IsFunction() {
			// A user-defined function from another workbook.
			collect(item, out)
			return
		}
		appendNew(n, out)
		return

	case tree.DynamicDataExchange:
		return
	}

	if isRange(n) {
		start := References(n.Child(0))
		end := References(n.Child(2))
		if r, ok := merge(n, start, end); ok {
			*out = append(*out, r)
			return
		}
		*out = append(*out, start...)
		*out = append(*out, end...)
		return
	}

	for _, c := range n.Children() {
		collect(c, out)
	}
}

func appendNew(n tree.Node, out *[]Reference) {
	if r, err := New(n); err == nil {
		*out = append(*out, r)
	}
}

// samePlace returns whether end, the second endpoint of a range, lies on
// the sheet and workbook of start. An end without a prefix always does.
func samePlace(start, end Reference) bool {
	if end.Worksheet == "" && end.LastWorksheet == "" && end.FileName == "" && end.FilePath == "" {
		return true
	}
	return strings.EqualFold(start.Worksheet, end.Worksheet) &&
		strings.EqualFold(start.LastWorksheet, end.LastWorksheet) &&
		strings.EqualFold(start.FileName, end.FileName) &&
		strings.EqualFold(start.FilePath, end.FilePath)
}

func isRange(n tree.Node) bool {
	return n.IsBinaryReferenceOperation() && n.Child(1).IsToken(token.Colon)
}

// merge combines the two sides of the range n into a single reference, if
// both are a single cell or both are the same table, and the end is on the
// same sheet and workbook as the start.
func merge(n tree.Node, start, end []Reference) (Reference, bool) {
	if len(start) != 1 || len(end) != 1 {
		return Reference{}, false
	}
	from, to := start[0], end[0]
	if !samePlace(from, to) {
		return Reference{}, false
	}

	switch {
	case from.Kind == Cell && to.Kind == Cell:
		from.Kind = CellRange
		from.MaxLocation = to.MinLocation

	case from.Kind == Table && to.Kind == Table && strings.EqualFold(from.Name, to.Name):
		if !slices.Equal(from.TableSpecifiers, to.TableSpecifiers) {
			from.TableSpecifiers = []string{}
		}
		from.TableColumns = slices.Concat(from.TableColumns, to.TableColumns)

	default:
		return Reference{}, false
	}

	location, err := n.Print()
	if err != nil {
		return Reference{}, false
	}
	from.Node = n
	from.Location = location
	return from, true
}
