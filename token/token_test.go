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


package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spreadsheetlab/XLParser/token"
)

func TestKindNames(t *testing.T) {
	t.Parallel()

	seen := map[string]token.Kind{}
	for _, k := range token.Kinds() {
		name := k.String()
		assert.NotEmpty(t, name, "%d", int(k))
		prev, dup := seen[name]
		assert.False(t, dup, "%v and %v share a name", prev, k)
		seen[name] = k
	}
	assert.Equal(t, "Kind(200)", token.Kind(200).String())
}

func TestOperators(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.True(token.Plus.IsOperator())
	assert.True(token.Intersect.IsOperator())
	assert.True(token.Colon.IsOperator())
	assert.False(token.Comma.IsOperator())
	assert.False(token.Cell.IsOperator())

	assert.Equal("<>", token.Ne.Symbol())
	assert.Empty(token.Cell.Symbol())
	assert.True(token.Quote.IsSymbol())
	assert.False(token.Intersect.IsSymbol())
}

func TestTokenString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `CellToken["A1"]`, token.Token{Kind: token.Cell, Text: "A1"}.String())
	assert.Equal(t, "+", token.Token{Kind: token.Plus, Text: "+"}.String())
	assert.Equal(t, "1:3", token.Span{Line: 1, Column: 3}.String())
	assert.Equal(t, 7, token.Span{Offset: 4, Len: 3}.End())
}
