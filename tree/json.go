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

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// JSON is the serializable projection of a parse tree node.
//
// Nonterminals are named after their production. Terminals whose kind name
// is at most two characters long (punctuation and operators) are named by
// their text; other terminals are named Kind["text"].
type JSON struct {
	Name     string `json:"name"`
	Children []JSON `json:"children,omitempty"`
}

// JSON returns the JSON projection of the subtree rooted at n.
func (n Node) JSON() JSON {
	out := JSON{Name: n.jsonName()}
	if k := n.NumChildren(); k > 0 {
		out.Children = make([]JSON, 0, k)
		for _, c := range n.Children() {
			out.Children = append(out.Children, c.JSON())
		}
	}
	return out
}

// MarshalJSON implements [json.Marshaler].
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.JSON())
}

// MarshalJSON implements [json.Marshaler] by marshaling the root node.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return t.Root().MarshalJSON()
}

func (n Node) jsonName() string {
	if !n.IsTerminal() {
		return n.Name()
	}
	name := n.Name()
	tok := n.Token()
	if utf8.RuneCountInString(name) <= 2 {
		return tok.Text
	}
	return fmt.Sprintf(`%s["%s"]`, name, tok.Text)
}
