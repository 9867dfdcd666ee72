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

// Package parser turns Excel formula text into a lossless [tree.Tree].
//
// The parser is a hand-written precedence-climbing parser over the
// contextual lexer in internal/lexer. Every valid formula has exactly one
// parse: all operators are left-associative, reference operators (range,
// intersection, union, spill) bind tighter than value operators, and the
// grammar's ambiguities are resolved at fixed points:
//
//   - (A1) is a parenthesized reference, not a union of one reference.
//   - A postfix % always applies to the operand before it.
//   - Prefix +, - and @ bind tighter than every binary value operator, but
//     looser than reference operators, so -A1:B2 negates the whole range.
//   - A name immediately followed by [ is the table of a structured
//     reference.
//
// Syntax errors are reported as diagnostics; the parser never returns a
// partial tree.
package parser
