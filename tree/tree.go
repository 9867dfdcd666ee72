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

// Package tree defines the concrete parse tree produced by the formula
// parser, along with the predicates and printer that operate on it.
//
// A [Tree] owns all of its nodes; a [Node] is a small value that refers to
// a node inside its tree. Nonterminal nodes are named after grammar
// productions (see [Kind]); leaves are [Terminal] nodes that wrap a single
// [token.Token].
package tree

import (
	"iter"

	"github.com/spreadsheetlab/XLParser/internal/arena"
	"github.com/spreadsheetlab/XLParser/token"
)

type rawNode struct {
	kind  Kind
	tok   token.Token
	span  token.Span
	first int // Index into Tree.children.
	count int
}

type ptr = arena.Pointer[rawNode]

// Tree is a parsed formula.
//
// Trees are immutable once built, and are safe for concurrent reads.
type Tree struct {
	source   string
	nodes    arena.Arena[rawNode]
	children []ptr
	parents  []ptr // Indexed by ptr.Index().
	root     ptr
}

// Source returns the text this tree was parsed from.
func (t *Tree) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// Root returns the root node of the tree.
func (t *Tree) Root() Node {
	if t == nil {
		return Node{}
	}
	return Node{t, t.root}
}

// Len returns the number of nodes in the tree, terminals included.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.nodes.Len()
}

// Print prints the root of the tree. See [Node.Print].
func (t *Tree) Print() (string, error) {
	return t.Root().Print()
}

// Builder constructs a [Tree] bottom-up.
//
// Children must be created before their parents, and every node passed to
// a Builder must have been created by that same Builder.
type Builder struct {
	t *Tree
}

// NewBuilder returns a builder for a tree over the given source text.
func NewBuilder(source string) *Builder {
	return &Builder{t: &Tree{source: source}}
}

// Token adds a terminal node wrapping tok.
func (b *Builder) Token(tok token.Token) Node {
	p := b.t.nodes.New(rawNode{kind: Terminal, tok: tok, span: tok.Span})
	return Node{b.t, p}
}

// New adds a nonterminal node with the given children.
func (b *Builder) New(kind Kind, children ...Node) Node {
	raw := rawNode{kind: kind, first: len(b.t.children), count: len(children)}
	for _, c := range children {
		if c.t != b.t {
			panic("tree: child node belongs to another tree")
		}
		b.t.children = append(b.t.children, c.p)
	}
	if len(children) > 0 {
		first := children[0].Span()
		last := children[len(children)-1].Span()
		raw.span = first
		raw.span.Len = last.End() - first.Offset
	}
	return Node{b.t, b.t.nodes.New(raw)}
}

// Finish completes the tree, making root its root node.
//
// The builder must not be used afterwards.
func (b *Builder) Finish(root Node) *Tree {
	t := b.t
	b.t = nil
	t.root = root.p
	t.parents = make([]ptr, t.nodes.Len())
	for p, raw := range t.nodes.All() {
		for _, c := range t.children[raw.first : raw.first+raw.count] {
			t.parents[c.Index()] = p
		}
	}
	return t
}

// Node is a node in a [Tree]. The zero Node is nil; methods on a nil node
// return zero values.
type Node struct {
	t *Tree
	p ptr
}

// IsNil returns whether this is the nil node.
func (n Node) IsNil() bool {
	return n.t == nil || n.p.Nil()
}

// Tree returns the tree this node belongs to.
func (n Node) Tree() *Tree {
	return n.t
}

func (n Node) raw() *rawNode {
	return n.t.nodes.At(n.p)
}

// Kind returns this node's kind. Nil nodes report [Terminal].
func (n Node) Kind() Kind {
	if n.IsNil() {
		return Terminal
	}
	return n.raw().kind
}

// Is returns whether this is a non-nil node of the given kind.
func (n Node) Is(k Kind) bool {
	return !n.IsNil() && n.raw().kind == k
}

// IsTerminal returns whether this is a non-nil terminal node.
func (n Node) IsTerminal() bool {
	return n.Is(Terminal)
}

// IsToken returns whether this is a terminal node wrapping a token of the
// given kind.
func (n Node) IsToken(k token.Kind) bool {
	return n.IsTerminal() && n.raw().tok.Kind == k
}

// IsOperator returns whether this is a terminal node wrapping an operator.
func (n Node) IsOperator() bool {
	return n.IsTerminal() && n.raw().tok.Kind.IsOperator()
}

// Token returns the token of a terminal node, or the zero token.
func (n Node) Token() token.Token {
	if !n.IsTerminal() {
		return token.Token{}
	}
	return n.raw().tok
}

// Name returns the grammar name of this node: the production name for a
// nonterminal, or the token kind's name for a terminal.
func (n Node) Name() string {
	switch {
	case n.IsNil():
		return ""
	case n.IsTerminal():
		return n.raw().tok.Kind.String()
	default:
		return n.raw().kind.String()
	}
}

// Span returns the source span covered by this node.
func (n Node) Span() token.Span {
	if n.IsNil() {
		return token.Span{}
	}
	return n.raw().span
}

// Text returns the source text covered by this node.
func (n Node) Text() string {
	if n.IsNil() {
		return ""
	}
	s := n.Span()
	return n.t.source[s.Offset:s.End()]
}

// NumChildren returns the number of children of this node.
func (n Node) NumChildren() int {
	if n.IsNil() {
		return 0
	}
	return n.raw().count
}

// Child returns the i-th child, or the nil node if there is none.
func (n Node) Child(i int) Node {
	if i < 0 || i >= n.NumChildren() {
		return Node{}
	}
	return Node{n.t, n.t.children[n.raw().first+i]}
}

// Children returns an iterator over this node's children.
func (n Node) Children() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i := range n.NumChildren() {
			if !yield(i, n.Child(i)) {
				return
			}
		}
	}
}

// ChildSlice returns this node's children as a fresh slice.
func (n Node) ChildSlice() []Node {
	out := make([]Node, 0, n.NumChildren())
	for _, c := range n.Children() {
		out = append(out, c)
	}
	return out
}

// Parent returns this node's parent, or the nil node for the root.
func (n Node) Parent() Node {
	if n.IsNil() || n.t.parents == nil {
		return Node{}
	}
	p := n.t.parents[n.p.Index()]
	if p.Nil() {
		return Node{}
	}
	return Node{n.t, p}
}

// String implements [fmt.Stringer], returning the node's JSON name.
func (n Node) String() string {
	if n.IsNil() {
		return "<nil>"
	}
	return n.jsonName()
}
