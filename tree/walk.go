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

package tree

import "iter"

// AllNodes returns a pre-order iterator over n and all of its descendants.
func (n Node) AllNodes() iter.Seq[Node] {
	return n.AllNodesConditional(nil)
}

// AllNodesConditional is like [Node.AllNodes], but does not descend into
// the children of nodes for which stop returns true. Such nodes are still
// yielded. A nil stop descends everywhere.
func (n Node) AllNodesConditional(stop func(Node) bool) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if n.IsNil() {
			return
		}
		stack := []Node{n}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(top) {
				return
			}
			if stop != nil && stop(top) {
				continue
			}
			for i := top.NumChildren() - 1; i >= 0; i-- {
				stack = append(stack, top.Child(i))
			}
		}
	}
}

// Ancestors returns an iterator over the parents of n, nearest first.
func (n Node) Ancestors() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for p := n.Parent(); !p.IsNil(); p = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

// Depth returns the number of edges between n and the root.
func (n Node) Depth() int {
	var d int
	for range n.Ancestors() {
		d++
	}
	return d
}
