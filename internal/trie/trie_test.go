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


package trie_test

import (
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spreadsheetlab/XLParser/internal/trie"
)

func values[V any](seq iter.Seq2[string, V]) []V {
	var out []V
	for _, v := range seq {
		out = append(out, v)
	}
	return out
}

func TestTrie(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data []string
		keys []string
		want [][]int
	}{
		{
			data: []string{"fo", "foo", "ba", "bar", "baz"},
			keys: []string{"fo", "foo", "ba", "bar", "baz"},
			want: [][]int{{0}, {0, 1}, {2}, {2, 3}, {2, 4}},
		},
		{
			data: []string{"fo", "foo", "ba", "bar", "baz"},
			keys: []string{"f", "fooo", "barr", "bazr", "baar"},
			want: [][]int{nil, {0, 1}, {2, 3}, {2, 4}, {2}},
		},
		{
			data: []string{"SUM", "SUMIF", "SUMIFS"},
			keys: []string{"sum(", "SumIfs(", "SUMX"},
			want: [][]int{{0}, {0, 1, 2}, {0}},
		},
	}

	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			t.Parallel()

			trie := new(trie.Trie[int])
			for i, s := range test.data {
				trie.Insert(s, i)
			}
			t.Log(trie.Dump())

			for i, key := range test.keys {
				assert.Equal(t, test.want[i], values(trie.Prefixes(key)), "#%d", i)
			}
		})
	}
}

func TestGetKeepsQueryCase(t *testing.T) {
	t.Parallel()

	trie := new(trie.Trie[string])
	trie.Insert("_XLFN.CONCAT", "concat")
	trie.Insert("COUNT", "count")

	prefix, v := trie.Get("_xlfn.concat(A1)")
	assert.Equal(t, "_xlfn.concat", prefix)
	assert.Equal(t, "concat", v)

	prefix, v = trie.Get("COUNTA(")
	assert.Equal(t, "COUNT", prefix)
	assert.Equal(t, "count", v)

	prefix, v = trie.Get("AVERAGE(")
	assert.Empty(t, prefix)
	assert.Empty(t, v)

	assert.True(t, trie.Has("count"))
	assert.False(t, trie.Has("coun"))
	assert.Equal(t, 2, trie.Len())
}

func TestInsertReplaces(t *testing.T) {
	t.Parallel()

	trie := new(trie.Trie[int])
	trie.Insert("abc", 1)
	trie.Insert("ABC", 2)
	assert.Equal(t, 1, trie.Len())
	_, v := trie.Get("abc")
	assert.Equal(t, 2, v)
}

func TestHammerTrie(t *testing.T) {
	t.Parallel()

	trie := new(trie.Trie[int])

	for i := range 1000 {
		trie.Insert(strings.Repeat("a", i), i+1)
	}

	for i := range 1000 {
		k := strings.Repeat("a", i)
		_, v := trie.Get(k)
		assert.Equal(t, i+1, v, len(k))
	}
	assert.Len(t, slices.Collect(func(yield func(int) bool) {
		for _, v := range trie.Prefixes(strings.Repeat("a", 10)) {
			if !yield(v) {
				return
			}
		}
	}), 11)
}
