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


// Package trie provides a case-insensitive longest-prefix map over strings.
package trie

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Trie implements a map from strings to V, except lookups return the key
// which is the longest prefix of a given query. Keys are compared with simple
// upper-case folding, so "sum" and "SUM" are the same key.
//
// The zero value is empty and ready to use.
type Trie[V any] struct {
	nodes  []node
	values []V
}

type node struct {
	edges []edge
	value int // Index into values, or -1.
}

type edge struct {
	r    rune
	next int32
}

func (n *node) find(r rune) (int, bool) {
	return slices.BinarySearchFunc(n.edges, r, func(e edge, r rune) int {
		return int(e.r) - int(r)
	})
}

// Get returns the value corresponding to the longest prefix of key present
// in the trie. The match is exact when len(key) == len(prefix). The returned
// prefix is a slice of key, not of the inserted string.
//
// If no key in the trie is a prefix of key, returns "" and the zero value of v.
func (t *Trie[V]) Get(key string) (prefix string, value V) {
	for p, v := range t.Prefixes(key) {
		prefix, value = p, v
	}
	return prefix, value
}

// Has returns whether key itself is present in the trie.
func (t *Trie[V]) Has(key string) bool {
	for p := range t.Prefixes(key) {
		if len(p) == len(key) {
			return true
		}
	}
	return false
}

// Prefixes returns an iterator over every key in the trie which is a prefix
// of key, from shortest to longest.
func (t *Trie[V]) Prefixes(key string) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if len(t.nodes) == 0 {
			return
		}

		cur := 0
		for i := 0; ; {
			if n := t.nodes[cur]; n.value >= 0 {
				if !yield(key[:i], t.values[n.value]) {
					return
				}
			}
			if i == len(key) {
				return
			}

			r, size := utf8.DecodeRuneInString(key[i:])
			j, ok := t.nodes[cur].find(unicode.ToUpper(r))
			if !ok {
				return
			}
			cur = int(t.nodes[cur].edges[j].next)
			i += size
		}
	}
}

// Insert adds a new value to this trie, replacing any value already stored
// under an equivalent key.
func (t *Trie[V]) Insert(key string, value V) {
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, node{value: -1})
	}

	cur := 0
	for _, r := range key {
		r = unicode.ToUpper(r)
		j, ok := t.nodes[cur].find(r)
		if !ok {
			next := int32(len(t.nodes))
			t.nodes = append(t.nodes, node{value: -1})
			t.nodes[cur].edges = slices.Insert(t.nodes[cur].edges, j, edge{r, next})
		}
		cur = int(t.nodes[cur].edges[j].next)
	}

	if n := &t.nodes[cur]; n.value >= 0 {
		t.values[n.value] = value
		return
	}
	t.nodes[cur].value = len(t.values)
	t.values = append(t.values, value)
}

// Len returns the number of keys in the trie.
func (t *Trie[V]) Len() int {
	return len(t.values)
}

// Dump returns a textual representation of the trie, for debugging.
func (t *Trie[V]) Dump() string {
	var out strings.Builder
	if len(t.nodes) > 0 {
		t.dump(&out, 0, 0)
	}
	return out.String()
}

func (t *Trie[V]) dump(out *strings.Builder, cur, depth int) {
	n := t.nodes[cur]
	if n.value >= 0 {
		fmt.Fprintf(out, "%s= %v\n", strings.Repeat("  ", depth), t.values[n.value])
	}
	for _, e := range n.edges {
		fmt.Fprintf(out, "%s%q\n", strings.Repeat("  ", depth), e.r)
		t.dump(out, int(e.next), depth+1)
	}
}
