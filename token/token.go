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


package token

import "fmt"

// Span is a region of formula text.
//
// Line and Column are one-based and count runes; Offset is a zero-based
// byte offset.
type Span struct {
	Offset, Len  int
	Line, Column int
}

// End returns the byte offset just past the span.
func (s Span) End() int {
	return s.Offset + s.Len
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Token is a single lexed terminal.
//
// Text is the exact source text of the token. Zero-width tokens, such as
// [Intersect] and [EmptyArgument], have empty text and a zero-length span.
type Token struct {
	Kind Kind
	Text string
	Span Span
}

// IsZero returns whether this is the zero token.
func (t Token) IsZero() bool {
	return t.Kind == Unknown
}

// Is returns whether the token is of the given kind.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	if t.Kind.IsSymbol() || t.Kind == EOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%v[%q]", t.Kind, t.Text)
}
