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

package analysis

// Metrics is a summary of an [Analyzer]'s results, suitable for reporting.
type Metrics struct {
	Formula               string    `json:"formula" yaml:"formula"`
	Depth                 int       `json:"depth" yaml:"depth"`
	OperatorDepth         int       `json:"operatorDepth" yaml:"operatorDepth"`
	ConditionalComplexity int       `json:"conditionalComplexity" yaml:"conditionalComplexity"`
	Functions             []string  `json:"functions,omitempty" yaml:"functions,omitempty"`
	References            []string  `json:"references,omitempty" yaml:"references,omitempty"`
	Constants             []string  `json:"constants,omitempty" yaml:"constants,omitempty"`
	Numbers               []float64 `json:"numbers,omitempty" yaml:"numbers,omitempty"`
}

// Metrics computes every metric of the formula.
func (a *Analyzer) Metrics() Metrics {
	m := Metrics{
		Formula:               a.Formula(),
		Depth:                 a.Depth(),
		OperatorDepth:         a.OperatorDepth(),
		ConditionalComplexity: a.ConditionalComplexity(),
		Functions:             a.Functions(),
		Constants:             a.Constants(),
		Numbers:               a.Numbers(),
	}
	for _, r := range a.ParserReferences() {
		m.References = append(m.References, r.Location)
	}
	return m
}
