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

import "fmt"

// Kind is the kind of a parse tree node: either one of the grammar's
// nonterminals, or [Terminal] for a node that wraps a single token.
type Kind uint8

const (
	Terminal Kind = iota

	Argument
	Arguments
	ArrayColumns
	ArrayConstant
	ArrayFormula
	ArrayRows
	Bool
	Cell
	Constant
	ConstantArray
	DynamicDataExchange
	EmptyArgument
	Error
	File
	Formula
	FormulaWithEq
	FunctionCall
	FunctionName
	HRange
	MultiRangeFormula
	NamedRange
	Number
	Prefix
	Reference
	ReferenceFunctionCall
	RefError
	RefFunctionName
	ReservedName
	StructuredReference
	StructuredReferenceColumn
	StructuredReferenceExpression
	StructuredReferenceQualifier
	StructuredReferenceSpecifier
	Text
	UDFName
	UDFunctionCall
	Union
	VRange

	kindCount
)

var kindNames = [...]string{
	Terminal:                      "Terminal",
	Argument:                      "Argument",
	Arguments:                     "Arguments",
	ArrayColumns:                  "ArrayColumns",
	ArrayConstant:                 "ArrayConstant",
	ArrayFormula:                  "ArrayFormula",
	ArrayRows:                     "ArrayRows",
	Bool:                          "Bool",
	Cell:                          "Cell",
	Constant:                      "Constant",
	ConstantArray:                 "ConstantArray",
	DynamicDataExchange:           "DynamicDataExchange",
	EmptyArgument:                 "EmptyArgument",
	Error:                         "Error",
	File:                          "File",
	Formula:                       "Formula",
	FormulaWithEq:                 "FormulaWithEq",
	FunctionCall:                  "FunctionCall",
	FunctionName:                  "FunctionName",
	HRange:                        "HRange",
	MultiRangeFormula:             "MultiRangeFormula",
	NamedRange:                    "NamedRange",
	Number:                        "Number",
	Prefix:                        "Prefix",
	Reference:                     "Reference",
	ReferenceFunctionCall:         "ReferenceFunctionCall",
	RefError:                      "RefError",
	RefFunctionName:               "RefFunctionName",
	ReservedName:                  "ReservedName",
	StructuredReference:           "StructuredReference",
	StructuredReferenceColumn:     "StructuredReferenceColumn",
	StructuredReferenceExpression: "StructuredReferenceExpression",
	StructuredReferenceQualifier:  "StructuredReferenceQualifier",
	StructuredReferenceSpecifier:  "StructuredReferenceSpecifier",
	Text:                          "Text",
	UDFName:                       "UDFName",
	UDFunctionCall:                "UDFunctionCall",
	Union:                         "Union",
	VRange:                        "VRange",
}

// String returns the grammar name of this kind.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// GoString implements [fmt.GoStringer].
func (k Kind) GoString() string {
	return "tree." + k.String()
}

// Kinds returns every nonterminal kind.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Terminal + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
