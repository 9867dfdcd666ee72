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

package parser_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadsheetlab/XLParser/parser"
	"github.com/spreadsheetlab/XLParser/report"
	"github.com/spreadsheetlab/XLParser/tree"
)

// sexpr renders a subtree compactly, e.g. Formula(Constant(Number(NumberToken["1"]))).
func sexpr(n tree.Node) string {
	if n.IsTerminal() {
		return n.String()
	}
	var b strings.Builder
	b.WriteString(n.Name())
	b.WriteByte('(')
	for i, c := range n.Children() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sexpr(c))
	}
	b.WriteByte(')')
	return b.String()
}

func mustParse(t *testing.T, text string) *tree.Tree {
	t.Helper()
	tr, err := parser.Default().Parse(text)
	require.NoError(t, err, "parsing %q", text)
	return tr
}

const (
	one = `Formula(Constant(Number(NumberToken["1"])))`
	two = `Formula(Constant(Number(NumberToken["2"])))`
	a1  = `Reference(Cell(CellToken["A1"]))`
	b1  = `Reference(Cell(CellToken["B1"]))`
)

func TestShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want string
	}{
		{"1", one},
		{"A1", `Formula(` + a1 + `)`},
		{"=1+2", `FormulaWithEq(= Formula(FunctionCall(` + one + ` + ` + two + `)))`},
		{"1-2*2", `Formula(FunctionCall(` + one + ` - Formula(FunctionCall(` + two + ` * ` + two + `))))`},
		{"1-2-1", `Formula(FunctionCall(Formula(FunctionCall(` + one + ` - ` + two + `)) - ` + one + `))`},
		{"2^1^2", `Formula(FunctionCall(Formula(FunctionCall(` + two + ` ^ ` + one + `)) ^ ` + two + `))`},
		{"-1", `Formula(FunctionCall(- ` + one + `))`},
		{"1%", `Formula(FunctionCall(` + one + ` %))`},
		{"-1%", `Formula(FunctionCall(Formula(FunctionCall(- ` + one + `)) %))`},
		{"@A1", `Formula(FunctionCall(@ Formula(` + a1 + `)))`},
		{"(1)", `Formula(` + one + `)`},
		{"(A1)", `Formula(Reference(` + a1 + `))`},
		{"((A1))", `Formula(Reference(Reference(` + a1 + `)))`},
		{"(A1,B1)", `Formula(Reference(ReferenceFunctionCall(Union(` + a1 + ` ` + b1 + `))))`},
		{"A1:B1", `Formula(Reference(ReferenceFunctionCall(` + a1 + ` : ` + b1 + `)))`},
		{"A1 B1", `Formula(Reference(ReferenceFunctionCall(` + a1 + ` INTERSECT[""] ` + b1 + `)))`},
		{"A1#", `Formula(Reference(ReferenceFunctionCall(` + a1 + ` #)))`},
		{"A1:B1#", `Formula(Reference(ReferenceFunctionCall(Reference(ReferenceFunctionCall(` + a1 + ` : ` + b1 + `)) #)))`},
		{
			"A1 B1:A1",
			`Formula(Reference(ReferenceFunctionCall(` + a1 + ` INTERSECT[""] Reference(ReferenceFunctionCall(` + b1 + ` : ` + a1 + `)))))`,
		},
		{"A1+1", `Formula(FunctionCall(Formula(` + a1 + `) + ` + one + `))`},
		{
			"SUM(1,,2)",
			`Formula(FunctionCall(FunctionName(ExcelFunction["SUM("]) Arguments(Argument(` + one +
				`) Argument(EmptyArgument(EmptyArgumentToken[""])) Argument(` + two + `))))`,
		},
		{"SUM()", `Formula(FunctionCall(FunctionName(ExcelFunction["SUM("]) Arguments()))`},
		{
			"SUM(1,)",
			`Formula(FunctionCall(FunctionName(ExcelFunction["SUM("]) Arguments(Argument(` + one +
				`) Argument(EmptyArgument(EmptyArgumentToken[""])))))`,
		},
		{
			"INDEX(A1,1)",
			`Formula(Reference(ReferenceFunctionCall(RefFunctionName(ExcelRefFunctionToken["INDEX("]) Arguments(Argument(Formula(` +
				a1 + `)) Argument(` + one + `)))))`,
		},
		{
			"MYFUNC(1)",
			`Formula(Reference(UDFunctionCall(UDFName(UDFToken["MYFUNC("]) Arguments(Argument(` + one + `)))))`,
		},
		{"Sheet1!A1", `Formula(Reference(Prefix(SheetNameToken["Sheet1!"]) Cell(CellToken["A1"])))`},
		{"'Sheet 1'!A1", `Formula(Reference(Prefix(' SheetNameQuotedToken["Sheet 1'!"]) Cell(CellToken["A1"])))`},
		{
			"[1]Sheet1!X1",
			`Formula(Reference(Prefix(File(FileNameNumericToken["[1]"]) SheetNameToken["Sheet1!"]) Cell(CellToken["X1"])))`,
		},
		{
			"[1]!'INDU Index'",
			`Formula(Reference(DynamicDataExchange(File(FileNameNumericToken["[1]"]) ! SingleQuotedString["'INDU Index'"])))`,
		},
		{"#REF!A1", `Formula(Reference(Prefix(RefErrorToken["#REF!"]) Cell(CellToken["A1"])))`},
		{"#REF!", `Formula(Reference(RefError(RefErrorToken["#REF!"])))`},
		{"A:B", `Formula(Reference(VRange(VRangeToken["A:B"])))`},
		{"1:3", `Formula(Reference(HRange(HRangeToken["1:3"])))`},
		{"XFE1", `Formula(Reference(NamedRange(NameToken["XFE1"])))`},
		{"_xlnm.Print_Area", `Formula(ReservedName(ReservedNameToken["_xlnm.Print_Area"]))`},
		{`"a"`, `Formula(Constant(Text(TextToken[""a""])))`},
		{"TRUE", `Formula(Constant(Bool(BoolToken["TRUE"])))`},
		{"#N/A", `Formula(Constant(Error(ErrorToken["#N/A"])))`},
		{
			"{1,2;-1,#REF!}",
			`Formula(ConstantArray(ArrayColumns(ArrayRows(ArrayConstant(Constant(Number(NumberToken["1"]))) ArrayConstant(Constant(Number(NumberToken["2"])))) ` +
				`ArrayRows(ArrayConstant(- Number(NumberToken["1"])) ArrayConstant(RefError(RefErrorToken["#REF!"]))))))`,
		},
		{"{=A1}", `ArrayFormula(= Formula(` + a1 + `))`},
		{"=A1,B1", `MultiRangeFormula(= Union(` + a1 + ` ` + b1 + `))`},
		{
			"Table1[#Headers]",
			`Formula(Reference(StructuredReference(StructuredReferenceQualifier(NameToken["Table1"]) [ ` +
				`StructuredReferenceExpression(StructuredReferenceSpecifier(SRSpecifierToken["#Headers"])) ])))`,
		},
		{
			"Table1[]",
			`Formula(Reference(StructuredReference(StructuredReferenceQualifier(NameToken["Table1"]) [ ])))`,
		},
		{
			"[@Jan]",
			`Formula(Reference(StructuredReference([ StructuredReferenceExpression(@ StructuredReferenceColumn(SRColumnToken["Jan"])) ])))`,
		},
		{
			"Table1[@]",
			`Formula(Reference(StructuredReference(StructuredReferenceQualifier(NameToken["Table1"]) [ ` +
				`StructuredReferenceExpression(StructuredReferenceSpecifier(@)) ])))`,
		},
		{
			"Table1[[#This Row],[b]]",
			`Formula(Reference(StructuredReference(StructuredReferenceQualifier(NameToken["Table1"]) [ ` +
				`StructuredReferenceExpression(StructuredReferenceSpecifier([ SRSpecifierToken["#This Row"] ]) , ` +
				`StructuredReferenceColumn([ SRColumnToken["b"] ])) ])))`,
		},
		{
			"Table1[[Date]:[Color]]",
			`Formula(Reference(StructuredReference(StructuredReferenceQualifier(NameToken["Table1"]) [ ` +
				`StructuredReferenceExpression(StructuredReferenceColumn([ SRColumnToken["Date"] ]) : ` +
				`StructuredReferenceColumn([ SRColumnToken["Color"] ])) ])))`,
		},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, sexpr(mustParse(t, test.text).Root()))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want string
	}{
		{"=SUM(A1:B2)+1", "=SUM(A1:B2) + 1"},
		{"  =SUM( A1 ,B1 )", "=SUM(A1,B1)"},
		{"A1   B1", "A1 B1"},
		{"-A1:B2", "-A1:B2"},
		{"SUM(1,,2)", "SUM(1,,2)"},
		{"LARGE((F38,C38),1)", "LARGE((F38,C38),1)"},
		{"'Sheet 1'!A1:Z1048576", "'Sheet 1'!A1:Z1048576"},
		{"Sheet1:Sheet3!A1", "Sheet1:Sheet3!A1"},
		{`='C:\Users\Test\Desktop\[Book1.xlsx]Sheet1'!$A$1`, `='C:\Users\Test\Desktop\[Book1.xlsx]Sheet1'!$A$1`},
		{"'[1]Stacey''s Reconciliation'!C3", "'[1]Stacey''s Reconciliation'!C3"},
		{"[1]!Name", "[1]!Name"},
		{"Table1[[#Headers],[Jan]:[Feb]]", "Table1[[#Headers],[Jan]:[Feb]]"},
		{"{1,2;3,4}", "{1,2;3,4}"},
		{"{=SUM(A1:A3*B1:B3)}", "{=SUM(A1:A3 * B1:B3)}"},
		{"=A1:A3,C1:C3", "=A1:A3,C1:C3"},
		{"IF(A1>0,\"yes\",\"no\")", "IF(A1 > 0,\"yes\",\"no\")"},
		{"A1#", "A1#"},
		{"(1+2)*3", "(1 + 2) * 3"},
		{"@A1:A3", "@A1:A3"},
		{"_xll.MYFUNC(1)", "_xll.MYFUNC(1)"},
		{"SUM(A1 #REF!)", "SUM(A1 #REF!)"},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			first := mustParse(t, test.text)
			printed, err := first.Print()
			require.NoError(t, err)
			assert.Equal(t, test.want, printed)

			second := mustParse(t, printed)
			assert.Empty(t, cmp.Diff(first.Root().JSON(), second.Root().JSON()))
		})
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		message string
		column  int
		tag     report.Tag
	}{
		{"]", `unrecognized character "]"`, 1, parser.TagLex},
		{`"abc`, "unterminated string literal", 1, parser.TagLex},
		{"'Sheet1!A1", "unterminated quoted name", 2, parser.TagLex},
		{"", "unexpected end of formula", 1, parser.TagSyntax},
		{"=SUM(1", "unexpected end of formula", 7, parser.TagSyntax},
		{"1 2", "operand of intersection must be a reference", 1, parser.TagSyntax},
		{"A1:1", "operand of `:` must be a reference", 4, parser.TagSyntax},
		{"(1,2)", "operand of union must be a reference", 2, parser.TagSyntax},
		{"1#", "operand of `#` must be a reference", 1, parser.TagSyntax},
		{"=1,2", "unexpected `,`", 3, parser.TagSyntax},
		{"Sheet1!", "unexpected end of formula", 8, parser.TagSyntax},
		{"Table1[]]", `unrecognized character "]"`, 9, parser.TagLex},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			tr, r := parser.Default().ParseToTree(test.text)
			assert.Nil(t, tr)
			require.True(t, r.HasErrors())
			d := r[0]
			assert.Equal(t, test.message, d.Message())
			assert.Equal(t, 1, d.Line())
			assert.Equal(t, test.column, d.Column())
			assert.True(t, d.Is(test.tag), "tag of %v", d)

			_, err := parser.Default().Parse(test.text)
			require.Error(t, err)
			assert.True(t, parser.IsInvalidFormula(err))
			var invalid *report.ErrInvalidFormula
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, test.message, invalid.First().Message())
		})
	}
}

func TestGridBounds(t *testing.T) {
	t.Parallel()

	assert.True(t, mustParse(t, "XFD1").Root().Child(0).Child(0).Is(tree.Cell))
	assert.True(t, mustParse(t, "XFE1").Root().Child(0).Child(0).Is(tree.NamedRange))
	assert.True(t, mustParse(t, "A1048576").Root().Child(0).Child(0).Is(tree.Cell))
	assert.True(t, mustParse(t, "A1048577").Root().Child(0).Child(0).Is(tree.NamedRange))
}

func TestVersion(t *testing.T) {
	t.Parallel()

	old, err := parser.New(parser.WithVersion(parser.Excel2010))
	require.NoError(t, err)
	assert.Equal(t, parser.Excel2010, old.Version())
	assert.False(t, old.IsFunction("XLOOKUP"))

	tr, err := old.Parse("XLOOKUP(1,A:A,B:B)")
	require.NoError(t, err)
	assert.True(t, tr.Root().Child(0).Child(0).Is(tree.UDFunctionCall))

	tr = mustParse(t, "XLOOKUP(1,A:A,B:B)")
	assert.True(t, tr.Root().Child(0).Is(tree.FunctionCall))
	assert.Equal(t, parser.DefaultVersion, parser.Default().Version())

	_, err = parser.New(parser.WithVersion(parser.Version(42)))
	require.ErrorIs(t, err, parser.ErrGrammar)
	assert.Panics(t, func() { parser.MustNew(parser.WithVersion(-1)) })
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	p := parser.MustNew(parser.WithMaxLength(5))
	_, err := p.Parse("1+2+3")
	require.NoError(t, err)

	_, r := p.ParseToTree("1+2+3+4")
	require.Len(t, r, 1)
	assert.True(t, r[0].Is(parser.TagTooLong))
	assert.Equal(t, "formula is 7 characters long, limit is 5", r[0].Message())

	_, err = parser.New(parser.WithMaxLength(-1))
	require.Error(t, err)
	assert.False(t, errors.Is(err, parser.ErrGrammar))
}

func TestSpans(t *testing.T) {
	t.Parallel()

	tr := mustParse(t, "=SUM(A1, B2)")
	call := tr.Root().Child(1).Child(0)
	require.True(t, call.Is(tree.FunctionCall))
	assert.Equal(t, "SUM(A1, B2", call.Text())

	var cells []string
	for n := range tr.Root().AllNodes() {
		if n.Is(tree.Cell) {
			cells = append(cells, n.Span().String())
			assert.Equal(t, tree.Reference, n.Parent().Kind())
		}
	}
	assert.Equal(t, []string{"1:6", "1:10"}, cells)
}

func TestJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(mustParse(t, "1"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"name":"Formula","children":[{"name":"Constant","children":[{"name":"Number","children":[{"name":"NumberToken[\"1\"]"}]}]}]}`,
		string(data),
	)

	data, err = json.Marshal(mustParse(t, "-1").Root())
	require.NoError(t, err)
	assert.Contains(t, string(data), `{"name":"-"}`)
}
