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

// Package xlparser parses Excel formulas into concrete syntax trees.
//
// Parsing happens in two phases:
//  1. Lexing. Formula text is split into tokens. The lexer is contextual:
//     which tokens are possible depends on what the parser expects next.
//     Also see: parser
//  2. Parsing. Tokens are assembled into a [tree.Tree] whose node kinds
//     mirror the productions of the formula grammar.
//     Also see: tree
//
// The functions in this package use a shared parser for the newest Excel
// version. Use [parser.New] to target an older version or to limit formula
// length.
//
// Trees
//
// A [tree.Tree] is immutable and keeps every token of the formula except
// parentheses, braces, and the commas that separate arguments. Printing a
// tree with [Print] reproduces the formula with whitespace normalized, so
// that parsing the printed text yields the same tree.
//
// Nodes can be classified with the predicates on [tree.Node], such as
// [tree.Node.IsFunction] and [tree.Node.IsBinaryOperation], and the
// references a formula mentions can be extracted with the reference
// package. The analysis package computes metrics such as nesting depth.
//
// Errors
//
// A formula that does not parse yields an [*report.ErrInvalidFormula],
// carrying one diagnostic for each problem found. [ParseToTree] returns the
// diagnostics directly instead.
package xlparser
