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

// Package reference extracts the cells, ranges, names, and tables a formula
// refers to.
//
// Extraction works on parse trees and never enumerates cells: a range is
// described by its two endpoints, however many cells it spans.
package reference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/spreadsheetlab/XLParser/token"
	"github.com/spreadsheetlab/XLParser/tree"
)

// ErrNotReference is returned by [New] for nodes that do not denote a
// single reference.
var ErrNotReference = errors.New("node is not a reference")

// Kind is the kind of location a [Reference] denotes.
type Kind int8

const (
	Cell Kind = iota
	CellRange
	UserDefinedName
	HorizontalRange
	VerticalRange
	RefError
	Table
)

var kindNames = [...]string{
	Cell:            "Cell",
	CellRange:       "CellRange",
	UserDefinedName: "UserDefinedName",
	HorizontalRange: "HorizontalRange",
	VerticalRange:   "VerticalRange",
	RefError:        "RefError",
	Table:           "Table",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Reference is a location mentioned by a formula.
type Reference struct {
	Kind Kind `json:"kind"`
	// Node is the parse tree node the reference was extracted from.
	Node tree.Node `json:"-"`
	// Location is the reference exactly as printed from the formula.
	Location string `json:"location"`

	Worksheet     string `json:"worksheet,omitempty"`
	LastWorksheet string `json:"lastWorksheet,omitempty"`
	FilePath      string `json:"filePath,omitempty"`
	FileName      string `json:"fileName,omitempty"`

	// Name is the defined name or table name, if any.
	Name string `json:"name,omitempty"`

	// MinLocation and MaxLocation are the corners of a cell range, or the
	// bounds of a row or column range, as written. For a single cell both
	// are the cell.
	MinLocation string `json:"minLocation,omitempty"`
	MaxLocation string `json:"maxLocation,omitempty"`

	// TableSpecifiers and TableColumns list the special items (such as
	// #Headers or @) and the columns of a structured reference, in source
	// order.
	TableSpecifiers []string `json:"tableSpecifiers,omitempty"`
	TableColumns    []string `json:"tableColumns,omitempty"`
}

// String returns r.Location.
func (r Reference) String() string {
	return r.Location
}

// New describes the reference rooted at n: a Reference node, possibly
// prefixed by a sheet or workbook, or a bare reference item.
func New(n tree.Node) (Reference, error) {
	for n.Is(tree.Reference) && n.NumChildren() == 1 {
		n = n.Child(0)
	}

	var r Reference
	item := n
	if n.Is(tree.Reference) {
		info, err := NewPrefixInfo(n.Child(0))
		if err != nil {
			return Reference{}, fmt.Errorf("%w: %v", ErrNotReference, err)
		}
		r.setPrefix(info)
		item = n.Child(1)
	}
	if err := r.setItem(item); err != nil {
		return Reference{}, err
	}

	r.Node = n
	location, err := n.Print()
	if err != nil {
		return Reference{}, err
	}
	r.Location = location
	return r, nil
}

func (r *Reference) setPrefix(info PrefixInfo) {
	r.Worksheet = info.Sheet
	if info.HasMultipleSheets() {
		first, last, _ := strings.Cut(info.MultipleSheets, ":")
		r.Worksheet = first
		r.LastWorksheet = last
	}

	r.FilePath = info.FilePath
	if info.HasFileNumber {
		r.FileName = fmt.Sprint(info.FileNumber)
	} else {
		r.FileName = info.FileName
	}
}

func (r *Reference) setItem(item tree.Node) error {
	text := item.Child(0).Token().Text
	switch item.Kind() {
	case tree.Cell:
		r.Kind = Cell
		r.MinLocation = text
		r.MaxLocation = text
	case tree.NamedRange:
		r.Kind = UserDefinedName
		r.Name = text
	case tree.HRange:
		r.Kind = HorizontalRange
		r.MinLocation, r.MaxLocation, _ = strings.Cut(text, ":")
	case tree.VRange:
		r.Kind = VerticalRange
		r.MinLocation, r.MaxLocation, _ = strings.Cut(text, ":")
	case tree.RefError:
		r.Kind = RefError
	case tree.StructuredReference:
		r.Kind = Table
		r.setTable(item)
	default:
		return fmt.Errorf("%w: %s", ErrNotReference, item.Name())
	}
	return nil
}

func (r *Reference) setTable(item tree.Node) {
	if q := item.Child(0); q.Is(tree.StructuredReferenceQualifier) {
		r.Name = q.Child(0).Token().Text
	}

	r.TableSpecifiers = []string{}
	r.TableColumns = []string{}
	for n := range item.AllNodes() {
		switch {
		case n.IsToken(token.SRSpecifier), n.IsToken(token.At):
			r.TableSpecifiers = append(r.TableSpecifiers, unescapeColumn(n.Token().Text))
		case n.IsToken(token.SRColumn):
			r.TableColumns = append(r.TableColumns, unescapeColumn(n.Token().Text))
		}
	}
}

// columnEscape matches the ' that escapes the next character of a column
// name. A doubled '' stands for one literal quote.
var columnEscape = regexp2.MustCompile(`'(?!')`, regexp2.None)

func unescapeColumn(text string) string {
	if !strings.Contains(text, "'") {
		return text
	}
	out, err := columnEscape.Replace(text, "", -1, -1)
	if err != nil {
		return text
	}
	return out
}
