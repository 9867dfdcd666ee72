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

package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadsheetlab/XLParser/analysis"
	"github.com/spreadsheetlab/XLParser/parser"
)

func analyze(t *testing.T, text string) *analysis.Analyzer {
	t.Helper()
	a, err := analysis.New(text)
	require.NoError(t, err, "parsing %q", text)
	return a
}

func TestDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text      string
		depth     int
		operators int
		nestedIf  int
	}{
		{"1", 1, 0, 0},
		{"SUM(1,2+SUM(3),3)", 4, 3, 0},
		{"IF(TRUE,IF(FALSE,1,0),0)", 3, 2, 2},
		{"SUMIF(A:A,1,B:B)+IFERROR(IF(A1,1,0),0)", 4, 3, 2},
		{"=A1", 1, 0, 0},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			a := analyze(t, test.text)
			assert.Equal(t, test.depth, a.Depth())
			assert.Equal(t, test.operators, a.OperatorDepth())
			assert.Equal(t, test.nestedIf, a.ConditionalComplexity())
		})
	}

	a := analyze(t, "SUM(1,2+SUM(3),3)")
	assert.Equal(t, 2, a.OperatorDepth("SUM"))
	assert.Equal(t, 1, a.OperatorDepth("+"))
	assert.Equal(t, 0, a.OperatorDepth("MAX"))
}

func TestConstants(t *testing.T) {
	t.Parallel()

	a := analyze(t, `1*3-8-(-9)+VLOOKUP($A:$B,5,10)&"ABC"+TRUE*-3`)
	assert.Equal(t,
		[]string{"1", "3", "8", "-9", "5", "10", `"ABC"`, "TRUE", "-3"},
		a.Constants(),
	)
	assert.Equal(t, []float64{1, 3, 8, -9, 5, 10, -3}, a.Numbers())

	a = analyze(t, "A1*2.5%+1E3")
	assert.Equal(t, []float64{2.5, 1000}, a.Numbers())

	a = analyze(t, "@1+2")
	assert.Equal(t, []string{"1", "2"}, a.Constants())
	assert.Equal(t, []float64{1, 2}, a.Numbers())

	assert.Empty(t, analyze(t, "A1").Constants())
}

func TestFunctions(t *testing.T) {
	t.Parallel()

	a := analyze(t, "SUM(A1:A3)+sum(1)*-B1%")
	assert.Equal(t, []string{"+", "SUM", ":", "*", "SUM", "%", "-"}, a.Functions())
}

func TestReferences(t *testing.T) {
	t.Parallel()

	a := analyze(t, "SUM(A1:A10)+Sheet1!B2")

	var nodes []string
	for _, n := range a.References() {
		nodes = append(nodes, n.MustPrint())
	}
	assert.Equal(t, []string{"A1:A10", "Sheet1!B2"}, nodes)

	refs := a.ParserReferences()
	require.Len(t, refs, 2)
	assert.Equal(t, "A1", refs[0].MinLocation)
	assert.Equal(t, "A10", refs[0].MaxLocation)
	assert.Equal(t, "Sheet1", refs[1].Worksheet)
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	tr, err := parser.Default().Parse("=IF(A1>0,SUM(B1:B3),-1)")
	require.NoError(t, err)

	m := analysis.FromTree(tr).Metrics()
	assert.Equal(t, analysis.Metrics{
		Formula:               "=IF(A1>0,SUM(B1:B3),-1)",
		Depth:                 3,
		OperatorDepth:         3,
		ConditionalComplexity: 1,
		Functions:             []string{"IF", ">", "SUM", ":", "-"},
		References:            []string{"A1", "B1:B3"},
		Constants:             []string{"0", "-1"},
		Numbers:               []float64{0, -1},
	}, m)
}

func TestInvalid(t *testing.T) {
	t.Parallel()

	_, err := analysis.New("SUM(")
	require.Error(t, err)
	assert.True(t, parser.IsInvalidFormula(err))
}
