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

package parser

import (
	"fmt"

	"github.com/spreadsheetlab/XLParser/internal/lexer"
	"github.com/spreadsheetlab/XLParser/token"
)

// Binding powers, lowest to highest. Every operator is left-associative.
const (
	precNone = iota
	precComparison
	precConcat
	precAdditive
	precMultiplicative
	precExponent
	precPostfix
	precPrefix
	_ // Reserved between prefix and union.
	precUnion
	precIntersect
	precRange
)

// operator describes how a token behaves after a complete operand.
type operator struct {
	prec    int
	postfix bool
	ref     bool // Operands must be references, producing a reference.
}

var infix = map[token.Kind]operator{
	token.Eq: {prec: precComparison},
	token.Lt: {prec: precComparison},
	token.Gt: {prec: precComparison},
	token.Le: {prec: precComparison},
	token.Ge: {prec: precComparison},
	token.Ne: {prec: precComparison},

	token.Amp: {prec: precConcat},

	token.Plus:  {prec: precAdditive},
	token.Minus: {prec: precAdditive},

	token.Star:  {prec: precMultiplicative},
	token.Slash: {prec: precMultiplicative},

	token.Caret: {prec: precExponent},

	token.Percent: {prec: precPostfix, postfix: true},
	token.Hash:    {prec: precPostfix, postfix: true, ref: true},

	token.Comma:     {prec: precUnion, ref: true},
	token.Intersect: {prec: precIntersect, ref: true},
	token.Colon:     {prec: precRange, ref: true},
}

var prefix = map[token.Kind]int{
	token.Plus:  precPrefix,
	token.Minus: precPrefix,
	token.At:    precPrefix,
}

// validate checks that the precedence table and the lexer modes agree.
//
// Reference operators are applied greedily as soon as a reference is
// complete, which is only equivalent to precedence climbing if every
// reference operator other than spill binds tighter than every value
// operator. Spill shares the postfix level with %, and % never applies to a
// reference-only operand, so the two never compete.
func validate() error {
	var maxValue, maxBinary int
	for kind, op := range infix {
		if !lexer.Continuation.Set().Has(kind) && kind != token.Intersect {
			return fmt.Errorf("%w: operator %v cannot be lexed after an operand", ErrGrammar, kind)
		}
		if op.prec <= precNone {
			return fmt.Errorf("%w: operator %v has no precedence", ErrGrammar, kind)
		}
		if !kind.IsOperator() && kind != token.Comma {
			return fmt.Errorf("%w: %v is not an operator token", ErrGrammar, kind)
		}
		if !op.ref {
			maxValue = max(maxValue, op.prec)
			if !op.postfix {
				maxBinary = max(maxBinary, op.prec)
			}
		}
	}
	for kind, op := range infix {
		if op.ref && !op.postfix && op.prec <= maxValue {
			return fmt.Errorf("%w: reference operator %v must bind tighter than %d", ErrGrammar, kind, maxValue)
		}
	}
	for kind, prec := range prefix {
		if !lexer.Operand.Set().Has(kind) {
			return fmt.Errorf("%w: prefix operator %v cannot be lexed before an operand", ErrGrammar, kind)
		}
		if prec <= maxBinary {
			return fmt.Errorf("%w: prefix operator %v must bind tighter than %d", ErrGrammar, kind, maxBinary)
		}
	}
	return nil
}
