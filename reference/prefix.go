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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spreadsheetlab/XLParser/token"
	"github.com/spreadsheetlab/XLParser/tree"
)

// ErrNotPrefix is returned by [NewPrefixInfo] for nodes that are not a
// Prefix.
var ErrNotPrefix = errors.New("node is not a prefix")

// PrefixInfo describes the sheet and workbook qualifying a reference, as in
// the '[1]Sheet 1'! of '[1]Sheet 1'!A1.
type PrefixInfo struct {
	// FilePath is the directory or URL of an external workbook, including
	// its trailing separator.
	FilePath string
	// FileName is the name of an external workbook, without brackets.
	FileName string
	// FileNumber is the index of an external workbook written as [n].
	FileNumber    int
	HasFileNumber bool

	// Sheet is the sheet name, with quote escapes undone.
	Sheet string
	// MultipleSheets is the range of sheets of a 3-D reference, such as
	// Sheet1:Sheet3, with quote escapes undone.
	MultipleSheets string

	// Quoted is set if the prefix was enclosed in single quotes.
	Quoted bool
}

// NewPrefixInfo extracts the parts of a Prefix node.
func NewPrefixInfo(prefix tree.Node) (PrefixInfo, error) {
	if !prefix.Is(tree.Prefix) {
		return PrefixInfo{}, fmt.Errorf("%w: %s", ErrNotPrefix, prefix.Name())
	}

	var info PrefixInfo
	i := 0
	if prefix.Child(i).IsToken(token.Quote) {
		info.Quoted = true
		i++
	}

	if file := prefix.Child(i); file.Is(tree.File) {
		info.setFile(file)
		i++
	}

	part := prefix.Child(i)
	text := part.Token().Text
	switch {
	case part.IsToken(token.Sheet):
		info.Sheet = strings.TrimSuffix(text, "!")
	case part.IsToken(token.SheetQuoted):
		info.Sheet = unquoteSheet(text)
		// A sheet name made only of whitespace cannot be told apart from
		// the whitespace around it, so all such names read as one space.
		if info.Sheet != "" && strings.TrimSpace(info.Sheet) == "" {
			info.Sheet = " "
		}
	case part.IsToken(token.MultipleSheets):
		info.MultipleSheets = strings.TrimSuffix(text, "!")
	case part.IsToken(token.MultipleSheetsQuoted):
		info.MultipleSheets = unquoteSheet(text)
	}
	return info, nil
}

func (p *PrefixInfo) setFile(file tree.Node) {
	first := file.Child(0)
	switch {
	case first.IsToken(token.FileNameNumeric):
		n, err := strconv.Atoi(trimBrackets(first.Token().Text))
		if err == nil {
			p.FileNumber = n
			p.HasFileNumber = true
		}
		return
	case first.IsToken(token.FilePath):
		p.FilePath = first.Token().Text
		first = file.Child(1)
	}

	if first.IsToken(token.FileNameEnclosed) {
		p.FileName = trimBrackets(first.Token().Text)
	} else {
		p.FileName = first.Token().Text
	}
}

// HasFile returns whether the prefix names an external workbook.
func (p PrefixInfo) HasFile() bool {
	return p.FileName != "" || p.HasFileNumber
}

// HasSheet returns whether the prefix names a single sheet.
func (p PrefixInfo) HasSheet() bool {
	return p.Sheet != ""
}

// HasMultipleSheets returns whether the prefix names a range of sheets.
func (p PrefixInfo) HasMultipleSheets() bool {
	return p.MultipleSheets != ""
}

// Equal reports whether two prefixes designate the same location. Names are
// compared case-insensitively, and quoting is ignored.
func (p PrefixInfo) Equal(q PrefixInfo) bool {
	return p.HasFileNumber == q.HasFileNumber && p.FileNumber == q.FileNumber &&
		strings.EqualFold(p.FilePath, q.FilePath) &&
		strings.EqualFold(p.FileName, q.FileName) &&
		strings.EqualFold(p.Sheet, q.Sheet) &&
		strings.EqualFold(p.MultipleSheets, q.MultipleSheets)
}

// String renders the prefix as it would appear in a formula, including the
// trailing !.
func (p PrefixInfo) String() string {
	var b strings.Builder
	quote := func(s string) string {
		if p.Quoted {
			return strings.ReplaceAll(s, "'", "''")
		}
		return s
	}

	if p.Quoted {
		b.WriteByte('\'')
	}
	b.WriteString(p.FilePath)
	if p.HasFileNumber {
		fmt.Fprintf(&b, "[%d]", p.FileNumber)
	}
	if p.FileName != "" {
		fmt.Fprintf(&b, "[%s]", p.FileName)
	}
	b.WriteString(quote(p.Sheet))
	b.WriteString(quote(p.MultipleSheets))
	if p.Quoted {
		b.WriteByte('\'')
	}
	b.WriteByte('!')
	return b.String()
}

// unquoteSheet strips the closing '! of a quoted sheet token and undoes
// doubled quotes.
func unquoteSheet(text string) string {
	text = strings.TrimSuffix(text, "'!")
	return strings.ReplaceAll(text, "''", "'")
}

func trimBrackets(text string) string {
	return strings.TrimSuffix(strings.TrimPrefix(text, "["), "]")
}
