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

package lexer

import (
	"github.com/dlclark/regexp2"

	"github.com/spreadsheetlab/XLParser/token"
)

// Priorities decide between terminals that match at the same position. A
// higher priority wins regardless of match length; equal priorities prefer
// the longer match, then the terminal declared first.
const (
	priorityFunction      = 1200
	priorityUDF           = 1150
	priorityNRC           = 1100
	priorityCell          = 1000
	priorityMultiSheet    = 100
	priorityNormal        = 0
	prioritySingleQuoted  = -100
	priorityFileName      = -500
	priorityStructuredRef = -500
	priorityReservedName  = -700
	priorityName          = -800
)

const (
	columnPattern = `(?:[A-W][A-Z]{1,2}|X[A-E][A-Z]|XF[A-D]|[A-Z]{1,2})`
	rowPattern    = `(?:104857[0-6]|10485[0-6][0-9]|1048[0-4][0-9]{2}|104[0-7][0-9]{3}|10[0-3][0-9]{4}|[1-9][0-9]{1,5}|[1-9])`
	bigRowPattern = `(?:104857[7-9]|10485[89][0-9]|1048[6-9][0-9]{2}|1049[0-9]{3}|10[5-9][0-9]{4}|1[1-9][0-9]{5}|[2-9][0-9]{6}|[0-9]{8,})`
	cellPattern   = `\$?` + columnPattern + `\$?` + rowPattern

	nameStartPattern = `[\p{L}\\_]`
	nameCharPattern  = `[\w\\_.?€]`

	// Non-word Latin-1 characters VBA accepts in identifiers.
	udfSpecialChars = "¡-©«-´¶-¹»-¿×÷"
	udfCharPattern  = `[` + udfSpecialChars + `\\.\w]`
	udfPrefix       = `(?:'[^<>"/\|?*]+\.xla'!|_xll\.)`

	sheetPattern       = `[^'*\[\]\\:/?();{}#"=<>&+\-*/^%, ]+`
	quotedSheetPattern = `(?:[^'*\[\]\\:/?]|'')*`

	windowsPathPattern = `(?:[a-zA-Z]:|\\?\\?[\w\-.$ @]+)\\(?:(?:[^<>" /|?*\\']| |'')*\\)*`
	urlPathPattern     = `https?://[0-9a-zA-Z](?:[-.\w]*[0-9a-zA-Z])*(?::[0-9]*)?/(?:[a-zA-Z0-9\-.?,'+&%$#_ ()]*/)*`
)

// terminal is a single lexical rule.
type terminal struct {
	kind     token.Kind
	priority int
	pattern  string // Empty for terminals matched by the function trie.

	re *regexp2.Regexp
}

// terminals is the table of regular terminals, sorted by descending priority.
// Within a priority, earlier entries win ties.
var terminals = []terminal{
	{kind: token.ExcelFunction, priority: priorityFunction},
	{kind: token.RefFunction, priority: priorityFunction, pattern: `(?:INDEX|OFFSET|INDIRECT)\(`},
	{kind: token.CondRefFunction, priority: priorityFunction, pattern: `(?:IF|CHOOSE)\(`},
	{kind: token.FileNameNumeric, priority: priorityFunction, pattern: `\[[0-9]+\](?!,)(?=.*!)`},
	{kind: token.Sheet, priority: priorityFunction, pattern: sheetPattern + `!`},
	{kind: token.SheetQuoted, priority: priorityFunction, pattern: quotedSheetPattern + `'!`},

	{kind: token.UDF, priority: priorityUDF, pattern: `(?:(?![CR])` + udfCharPattern +
		`|` + udfPrefix + udfCharPattern +
		`|` + udfPrefix + `?` + udfCharPattern + `{2,1023})\(`},

	{kind: token.NamedRangeCombination, priority: priorityNRC, pattern: `(?:TRUE|FALSE)` + nameCharPattern + `+` +
		`|` + cellPattern + `[\p{Ll}\p{Lu}\p{Lt}\p{Lo}\p{Lm}\p{Pc}\\_.?]` + nameCharPattern + `*` +
		`|` + columnPattern + bigRowPattern + nameCharPattern + `*`},

	{kind: token.Cell, priority: priorityCell, pattern: cellPattern},

	{kind: token.MultipleSheets, priority: priorityMultiSheet, pattern: sheetPattern + `:` + sheetPattern + `!`},
	{kind: token.MultipleSheetsQuoted, priority: priorityMultiSheet, pattern: quotedSheetPattern + `:` + quotedSheetPattern + `'!`},

	{kind: token.Bool, priority: priorityNormal, pattern: `TRUE|FALSE`},
	{kind: token.VRange, priority: priorityNormal, pattern: `\$?` + columnPattern + `:\$?` + columnPattern},
	{kind: token.HRange, priority: priorityNormal, pattern: `\$?` + rowPattern + `:\$?` + rowPattern},
	{kind: token.Number, priority: priorityNormal, pattern: `(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:E[+-]?[0-9]+)?`},
	{kind: token.Text, priority: priorityNormal, pattern: `"(?:[^"]|"")*"`},
	{kind: token.Error, priority: priorityNormal, pattern: `#NULL!|#DIV/0!|#VALUE!|#NAME\?|#NUM!|#N/A|#GETTING_DATA|#SPILL!`},
	{kind: token.RefError, priority: priorityNormal, pattern: `#REF!`},

	{kind: token.SingleQuotedString, priority: prioritySingleQuoted, pattern: `'(?:[^']|'')*'`},

	{kind: token.FileNameEnclosed, priority: priorityFileName, pattern: `\[[^\[\]]+\](?!,)(?=.*!)`},
	{kind: token.FileName, priority: priorityFileName, pattern: `[^.\\\[\]]+\.[^'!\\\[\]]{1,4}`},
	{kind: token.SRSpecifier, priority: priorityStructuredRef, pattern: `#(?:All|Data|Headers|Totals|This Row)`},
	{kind: token.SRColumn, priority: priorityStructuredRef, pattern: `(?:[^\[\]'#@]|'['\[\]#@])+`},

	{kind: token.ReservedName, priority: priorityReservedName, pattern: `_xlnm\.[a-zA-Z_]+`},

	{kind: token.FilePath, priority: priorityName, pattern: `(?:` + windowsPathPattern + `|` + urlPathPattern + `)`},
	{kind: token.Name, priority: priorityName, pattern: nameStartPattern + nameCharPattern + `*`},
}

// symbols are the fixed-text tokens, longest first so that "<=" is preferred
// over "<".
var symbols = []token.Kind{
	token.Le, token.Ge, token.Ne,
	token.Eq, token.Lt, token.Gt, token.Amp, token.Plus, token.Minus,
	token.Star, token.Slash, token.Caret, token.Percent, token.Hash, token.At,
	token.Colon, token.Comma, token.Semicolon, token.LParen, token.RParen,
	token.LBrace, token.RBrace, token.LBracket, token.RBracket, token.Bang,
	token.Quote,
}

// compileTerminals compiles every pattern in the table, anchored at the
// start of the input it is matched against.
func compileTerminals() ([]terminal, error) {
	out := make([]terminal, len(terminals))
	copy(out, terminals)
	for i := range out {
		t := &out[i]
		if t.pattern == "" {
			continue
		}
		re, err := regexp2.Compile(`^(?:`+t.pattern+`)`, regexp2.IgnoreCase)
		if err != nil {
			return nil, grammarErrorf("terminal %v: %v", t.kind, err)
		}
		t.re = re
	}
	return out, nil
}
