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
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"
)

// TabstopWidth is the size we render all tabstops as.
const TabstopWidth = 4

// Renderer configures how a [Report] is rendered as text.
type Renderer struct {
	// If set, uses ANSI color codes.
	Colorize bool
	// If set, renders each diagnostic on a single line without a snippet.
	Compact bool
	// If set, remarks are rendered too.
	ShowRemarks bool
}

// styleSheet is the set of colors used for rendering diagnostics.
type styleSheet struct {
	levels map[Level]*color.Color
	bold   *color.Color
	accent *color.Color
}

func newStyleSheet(r Renderer) styleSheet {
	s := styleSheet{
		levels: map[Level]*color.Color{
			Error:     color.New(color.Bold, color.FgRed),
			Warning:   color.New(color.Bold, color.FgYellow),
			Remark:    color.New(color.Bold, color.FgCyan),
			noteLevel: color.New(color.Bold, color.FgBlue),
		},
		bold:   color.New(color.Bold),
		accent: color.New(color.FgBlue),
	}
	all := []*color.Color{s.bold, s.accent}
	for _, c := range s.levels {
		all = append(all, c)
	}
	for _, c := range all {
		if r.Colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// RenderString renders every diagnostic in report against the formula text it
// was produced from.
func (r Renderer) RenderString(report Report, source string) string {
	ss := newStyleSheet(r)
	lines := strings.Split(source, "\n")

	var out strings.Builder
	for _, d := range report {
		if d.level == Remark && !r.ShowRemarks {
			continue
		}
		if r.Compact {
			fmt.Fprintf(&out, "%s %s\n",
				ss.levels[d.level].Sprintf("%v:", d.level),
				ss.bold.Sprintf("%d:%d: %s", d.span.Line, d.span.Column, d.message))
			continue
		}
		r.renderOne(&out, ss, d, lines)
	}
	return out.String()
}

func (r Renderer) renderOne(out *strings.Builder, ss styleSheet, d Diagnostic, lines []string) {
	fmt.Fprintf(out, "%s %s\n", ss.levels[d.level].Sprintf("%v:", d.level), ss.bold.Sprint(d.message))

	gutter := strings.Repeat(" ", len(strconv.Itoa(d.span.Line)))
	fmt.Fprintf(out, "%s%s %d:%d\n", gutter, ss.accent.Sprint("-->"), d.span.Line, d.span.Column)

	if d.span.Line >= 1 && d.span.Line <= len(lines) {
		line := strings.TrimSuffix(lines[d.span.Line-1], "\r")
		before, at := splitAtColumn(line, d.span.Column)

		underline := d.span.Len
		if underline > len(at) {
			underline = len(at)
		}
		start := stringWidth(0, before)
		width := max(1, stringWidth(start, at[:underline])-start)

		fmt.Fprintf(out, "%s %s\n", gutter, ss.accent.Sprint("|"))
		fmt.Fprintf(out, "%s %s %s\n", ss.accent.Sprint(d.span.Line), ss.accent.Sprint("|"), expandTabs(line))
		fmt.Fprintf(out, "%s %s %s%s\n", gutter, ss.accent.Sprint("|"),
			strings.Repeat(" ", start), ss.levels[d.level].Sprint(strings.Repeat("^", width)))
	}

	for _, note := range d.notes {
		fmt.Fprintf(out, "%s %s %s\n", gutter, ss.accent.Sprint("="), ss.levels[noteLevel].Sprint("note: ")+note)
	}
	for _, help := range d.help {
		fmt.Fprintf(out, "%s %s %s\n", gutter, ss.accent.Sprint("="), ss.levels[noteLevel].Sprint("help: ")+help)
	}
	out.WriteByte('\n')
}

// splitAtColumn splits line before the given one-based rune column.
func splitAtColumn(line string, column int) (string, string) {
	n := 1
	for i := range line {
		if n == column {
			return line[:i], line[i:]
		}
		n++
	}
	return line, ""
}

// stringWidth calculates the rendered width of text if placed at the given
// column, accounting for tabstops.
func stringWidth(column int, text string) int {
	for text != "" {
		next, rest, haveTab := strings.Cut(text, "\t")
		text = rest
		column += uniseg.StringWidth(next)
		if haveTab {
			column += TabstopWidth - (column % TabstopWidth)
		}
	}
	return column
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var out strings.Builder
	column := 0
	for line != "" {
		next, rest, haveTab := strings.Cut(line, "\t")
		line = rest
		out.WriteString(next)
		column += uniseg.StringWidth(next)
		if haveTab {
			tab := TabstopWidth - (column % TabstopWidth)
			out.WriteString(strings.Repeat(" ", tab))
			column += tab
		}
	}
	return out.String()
}
