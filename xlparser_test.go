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

package xlparser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xlparser "github.com/spreadsheetlab/XLParser"
	"github.com/spreadsheetlab/XLParser/report"
	"github.com/spreadsheetlab/XLParser/tree"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tr, err := xlparser.Parse("=SUM(A1)")
	require.NoError(t, err)
	assert.Equal(t, tree.FormulaWithEq, tr.Root().Kind())
	assert.Equal(t, "=SUM(A1)", tr.Source())

	text, err := xlparser.Print(tr.Root())
	require.NoError(t, err)
	assert.Equal(t, "=SUM(A1)", text)
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"]", `"abc`, "SUM(1", "1+"} {
		tr, err := xlparser.Parse(text)
		assert.Nil(t, tr, text)

		var invalid *report.ErrInvalidFormula
		require.True(t, errors.As(err, &invalid), text)
		assert.NotEmpty(t, invalid.Report, text)
		assert.Equal(t, report.Error, invalid.First().Level(), text)
		assert.Equal(t, 1, invalid.First().Line(), text)

		tr, r := xlparser.ParseToTree(text)
		assert.Nil(t, tr, text)
		assert.True(t, r.HasErrors(), text)
	}

	assert.Panics(t, func() { xlparser.MustParse("]") })
	assert.NotPanics(t, func() { xlparser.MustParse("1") })
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want string
	}{
		{"=SUM( A1 , B1 )", "=SUM(A1,B1)"},
		{"1+2", "1 + 2"},
		{" =A1&B1", "=A1 & B1"},
		{"A1:A3 A2:A3", "A1:A3 A2:A3"},
		{"{1,2;3,4}", "{1,2;3,4}"},
		{"[Book1.xlsx]Sheet1!A1+[1]!MYFUNC(2)", "[Book1.xlsx]Sheet1!A1 + [1]!MYFUNC(2)"},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			got, err := xlparser.Normalize(test.text)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)

			again, err := xlparser.Normalize(got)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}

	_, err := xlparser.Normalize("SUM(")
	require.Error(t, err)
}
