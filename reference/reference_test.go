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

package reference_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadsheetlab/XLParser/parser"
	"github.com/spreadsheetlab/XLParser/reference"
	"github.com/spreadsheetlab/XLParser/tree"
)

func parse(t *testing.T, text string) *tree.Tree {
	t.Helper()
	tr, err := parser.Default().Parse(text)
	require.NoError(t, err, "parsing %q", text)
	return tr
}

func refs(t *testing.T, text string) []reference.Reference {
	t.Helper()
	return reference.References(parse(t, text).Root())
}

func TestReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []reference.Reference
	}{
		{
			text: "B1",
			want: []reference.Reference{{Kind: reference.Cell, Location: "B1", MinLocation: "B1", MaxLocation: "B1"}},
		},
		{
			text: "SUM(B1:C5)",
			want: []reference.Reference{{Kind: reference.CellRange, Location: "B1:C5", MinLocation: "B1", MaxLocation: "C5"}},
		},
		{
			text: "SUM(A:B)",
			want: []reference.Reference{{Kind: reference.VerticalRange, Location: "A:B", MinLocation: "A", MaxLocation: "B"}},
		},
		{
			text: "SUM(XEZ:XFD)",
			want: []reference.Reference{{Kind: reference.VerticalRange, Location: "XEZ:XFD", MinLocation: "XEZ", MaxLocation: "XFD"}},
		},
		{
			text: "$1:$1",
			want: []reference.Reference{{Kind: reference.HorizontalRange, Location: "$1:$1", MinLocation: "$1", MaxLocation: "$1"}},
		},
		{
			text: "SUM(TestRange)",
			want: []reference.Reference{{Kind: reference.UserDefinedName, Location: "TestRange", Name: "TestRange"}},
		},
		{
			text: "_XX1/100",
			want: []reference.Reference{{Kind: reference.UserDefinedName, Location: "_XX1", Name: "_XX1"}},
		},
		{
			text: "SUM(Sheet1!TestRange)",
			want: []reference.Reference{{
				Kind: reference.UserDefinedName, Location: "Sheet1!TestRange",
				Worksheet: "Sheet1", Name: "TestRange",
			}},
		},
		{
			text: "Sheet1!F7",
			want: []reference.Reference{{
				Kind: reference.Cell, Location: "Sheet1!F7",
				Worksheet: "Sheet1", MinLocation: "F7", MaxLocation: "F7",
			}},
		},
		{
			text: "[2]Sheet1!X1",
			want: []reference.Reference{{
				Kind: reference.Cell, Location: "[2]Sheet1!X1",
				Worksheet: "Sheet1", FileName: "2", MinLocation: "X1", MaxLocation: "X1",
			}},
		},
		{
			text: "[2]Sheet1!X1:X10",
			want: []reference.Reference{{
				Kind: reference.CellRange, Location: "[2]Sheet1!X1:X10",
				Worksheet: "Sheet1", FileName: "2", MinLocation: "X1", MaxLocation: "X10",
			}},
		},
		{
			text: "'[2]Sheet1'!X1",
			want: []reference.Reference{{
				Kind: reference.Cell, Location: "'[2]Sheet1'!X1",
				Worksheet: "Sheet1", FileName: "2", MinLocation: "X1", MaxLocation: "X1",
			}},
		},
		{
			text: "[externalFile.xlsx]Book1!C3",
			want: []reference.Reference{{
				Kind: reference.Cell, Location: "[externalFile.xlsx]Book1!C3",
				Worksheet: "Book1", FileName: "externalFile.xlsx", MinLocation: "C3", MaxLocation: "C3",
			}},
		},
		{
			text: "'Owner''s Engineer'!$A$2",
			want: []reference.Reference{{
				Kind: reference.Cell, Location: "'Owner''s Engineer'!$A$2",
				Worksheet: "Owner's Engineer", MinLocation: "$A$2", MaxLocation: "$A$2",
			}},
		},
		{
			text: "'[1]Stacey''s Reconciliation'!C3",
			want: []reference.Reference{{
				Kind: reference.Cell, Location: "'[1]Stacey''s Reconciliation'!C3",
				Worksheet: "Stacey's Reconciliation", FileName: "1", MinLocation: "C3", MaxLocation: "C3",
			}},
		},
		{
			text: "SUM(Sheet1:Sheet2!A1:A3)",
			want: []reference.Reference{{
				Kind: reference.CellRange, Location: "Sheet1:Sheet2!A1:A3",
				Worksheet: "Sheet1", LastWorksheet: "Sheet2", MinLocation: "A1", MaxLocation: "A3",
			}},
		},
		{
			text: "SUM([1]Sheet1:Sheet2!B15)",
			want: []reference.Reference{{
				Kind: reference.Cell, Location: "[1]Sheet1:Sheet2!B15",
				Worksheet: "Sheet1", LastWorksheet: "Sheet2", FileName: "1", MinLocation: "B15", MaxLocation: "B15",
			}},
		},
		{
			text: "SUM(Deals!F9:'Deals'!F16)",
			want: []reference.Reference{{
				Kind: reference.CellRange, Location: "Deals!F9:'Deals'!F16",
				Worksheet: "Deals", MinLocation: "F9", MaxLocation: "F16",
			}},
		},
		{
			text: "'B-Com'!A1:Z1048576",
			want: []reference.Reference{{
				Kind: reference.CellRange, Location: "'B-Com'!A1:Z1048576",
				Worksheet: "B-Com", MinLocation: "A1", MaxLocation: "Z1048576",
			}},
		},
		{
			text: `='C:\Users\Test\Desktop\[Book1.xlsx]Sheet1'!$A$1`,
			want: []reference.Reference{{
				Kind: reference.Cell, Location: `'C:\Users\Test\Desktop\[Book1.xlsx]Sheet1'!$A$1`,
				Worksheet: "Sheet1", FilePath: `C:\Users\Test\Desktop\`, FileName: "Book1.xlsx",
				MinLocation: "$A$1", MaxLocation: "$A$1",
			}},
		},
		{
			text: `='c:\My documents\[Book 1 (copy).xlsx]Sheet1'!$A$1`,
			want: []reference.Reference{{
				Kind: reference.Cell, Location: `'c:\My documents\[Book 1 (copy).xlsx]Sheet1'!$A$1`,
				Worksheet: "Sheet1", FilePath: `c:\My documents\`, FileName: "Book 1 (copy).xlsx",
				MinLocation: "$A$1", MaxLocation: "$A$1",
			}},
		},
		{
			text: `='http://example.com/test/[Book1.xlsx]Sheet1'!$A$1`,
			want: []reference.Reference{{
				Kind: reference.Cell, Location: `'http://example.com/test/[Book1.xlsx]Sheet1'!$A$1`,
				Worksheet: "Sheet1", FilePath: "http://example.com/test/", FileName: "Book1.xlsx",
				MinLocation: "$A$1", MaxLocation: "$A$1",
			}},
		},
		{
			text: `='C:\Users\Test\Desktop\Book1.xlsx'!Items`,
			want: []reference.Reference{{
				Kind: reference.UserDefinedName, Location: `'C:\Users\Test\Desktop\Book1.xlsx'!Items`,
				FilePath: `C:\Users\Test\Desktop\`, FileName: "Book1.xlsx", Name: "Items",
			}},
		},
		{
			text: `='[Book1''s.xlsm]Sheet1'!$A$1`,
			want: []reference.Reference{{
				Kind: reference.Cell, Location: `'[Book1''s.xlsm]Sheet1'!$A$1`,
				Worksheet: "Sheet1", FileName: "Book1''s.xlsm", MinLocation: "$A$1", MaxLocation: "$A$1",
			}},
		},
		{
			text: "#REF!",
			want: []reference.Reference{{Kind: reference.RefError, Location: "#REF!"}},
		},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			got := refs(t, test.text)
			require.Len(t, got, len(test.want))
			for i := range got {
				assert.False(t, got[i].Node.IsNil())
				got[i].Node = tree.Node{}
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestTableReferences(t *testing.T) {
	t.Parallel()

	type table struct {
		name       string
		specifiers []string
		columns    []string
	}
	tests := []struct {
		text string
		want []table
	}{
		{"COUNTA(Table1[#Headers])", []table{{"Table1", []string{"#Headers"}, []string{}}}},
		{"COUNTA(Table1[[#This Row],[b]])", []table{{"Table1", []string{"#This Row"}, []string{"b"}}}},
		{"COUNTA(Table1[@Region])", []table{{"Table1", []string{"@"}, []string{"Region"}}}},
		{"=INDEX(Table1[@],2)", []table{{"Table1", []string{"@"}, []string{}}}},
		{"COUNTA(Table1[[Date]:[Color]])", []table{{"Table1", []string{}, []string{"Date", "Color"}}}},
		{"Table1[[#Totals],[Qty]]", []table{{"Table1", []string{"#Totals"}, []string{"Qty"}}}},
		{"=SUBTOTAL(109,Table1['#NumItems])", []table{{"Table1", []string{}, []string{"#NumItems"}}}},
		{"COUNTA(Table1['[Header']])", []table{{"Table1", []string{}, []string{"[Header]"}}}},
		{"COUNTA(Table1[''Test''])", []table{{"Table1", []string{}, []string{"'Test'"}}}},
		{"=SUBTOTAL(109,[Sales])", []table{{"", []string{}, []string{"Sales"}}}},
		{"=SUBTOTAL(109,[Sales Amount])", []table{{"", []string{}, []string{"Sales Amount"}}}},
		{"=SUBTOTAL(109,[2016])", []table{{"", []string{}, []string{"2016"}}}},
		{
			"=DeptSales[[#All],[Sales Amount]:[Commission Amount]]",
			[]table{{"DeptSales", []string{"#All"}, []string{"Sales Amount", "Commission Amount"}}},
		},
		{
			"=DeptSales[[#Headers],[#Data],[% Commission]]",
			[]table{{"DeptSales", []string{"#Headers", "#Data"}, []string{"% Commission"}}},
		},
		{"=SUM([@Jan]:[@Feb])", []table{{"", []string{"@"}, []string{"Jan", "Feb"}}}},
		{
			"=COUNTA(Sales_5[[#Headers],[Jan]]:Sales_5[[#Headers],[Mar]])",
			[]table{{"Sales_5", []string{"#Headers"}, []string{"Jan", "Mar"}}},
		},
		{"=SUM(Sales_2[Jan]:Sales_2[Feb])", []table{{"Sales_2", []string{}, []string{"Jan", "Feb"}}}},
		{
			"=COUNTA(Sales_2[[#Headers],[Jan]]:Sales_2[[#Data],[Feb]])",
			[]table{{"Sales_2", []string{}, []string{"Jan", "Feb"}}},
		},
		{
			"=COUNTA(Sales_2[Jan]:Sales_4[Feb])",
			[]table{{"Sales_2", []string{}, []string{"Jan"}}, {"Sales_4", []string{}, []string{"Feb"}}},
		},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			got := refs(t, test.text)
			require.Len(t, got, len(test.want))
			for i, want := range test.want {
				assert.Equal(t, reference.Table, got[i].Kind)
				assert.Equal(t, want.name, got[i].Name)
				assert.Equal(t, want.specifiers, got[i].TableSpecifiers)
				assert.Equal(t, want.columns, got[i].TableColumns)
			}
		})
	}
}

func TestMixedReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []string
	}{
		{"ROUND(INDEX(A:A,1,1:1),1)", []string{"A:A", "1:1"}},
		{"SUM(A1:INDEX(A:A,1,1:1))", []string{"A1", "A:A", "1:1"}},
		{"LARGE((F38,C38:C48),1)", []string{"F38", "C38:C48"}},
		{"=(A1:A3,C1:C3)", []string{"A1:A3", "C1:C3"}},
		{"=A1:A3,C1:C3", []string{"A1:A3", "C1:C3"}},
		{"=Sheet1!$A$1,Sheet1!$B$2", []string{"Sheet1!$A$1", "Sheet1!$B$2"}},
		{"=XLOOKUP($G7,Sales[[Region]:[Region]],Sales[Mar])", []string{"$G7", "Sales[[Region]:[Region]]", "Sales[Mar]"}},
		{"=VLOOKUP([@ProductNumber],Sheet2!A:B,1,FALSE)", []string{"[@ProductNumber]", "Sheet2!A:B"}},
		{"A1 B1", []string{"A1", "B1"}},
		{"A1#", []string{"A1"}},
		{"[1]!MYFUNC(A1,2)", []string{"A1"}},
		{"Sheet1!A1:Sheet2!B2", []string{"Sheet1!A1", "Sheet2!B2"}},
		{"[1]Sheet1!A1:[2]Sheet1!B2", []string{"[1]Sheet1!A1", "[2]Sheet1!B2"}},
		{"1+2", nil},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			var got []string
			for _, r := range refs(t, test.text) {
				got = append(got, r.Location)
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestNodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []string
	}{
		{"SUM(A1:A10)", []string{"A1:A10"}},
		{"(A1)+2", []string{"A1"}},
		{"Sheet1!A1+B2", []string{"Sheet1!A1", "B2"}},
		{"1", nil},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			var got []string
			for _, n := range reference.Nodes(parse(t, test.text).Root()) {
				got = append(got, n.MustPrint())
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	root := parse(t, "Sheet1!B2").Root()
	r, err := reference.New(root.Child(0))
	require.NoError(t, err)
	assert.Equal(t, reference.Cell, r.Kind)
	assert.Equal(t, "Sheet1", r.Worksheet)
	assert.Equal(t, "Sheet1!B2", r.String())

	_, err = reference.New(parse(t, "1+1").Root())
	require.ErrorIs(t, err, reference.ErrNotReference)

	_, err = reference.New(parse(t, "SUM(A1)").Root().SkipToRelevant())
	require.ErrorIs(t, err, reference.ErrNotReference)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CellRange", reference.CellRange.String())
	assert.Equal(t, "Table", reference.Table.String())
	assert.Equal(t, "Kind(42)", reference.Kind(42).String())

	text, err := reference.VerticalRange.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "VerticalRange", string(text))
}
