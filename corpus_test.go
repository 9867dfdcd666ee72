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

package xlparser_test

import (
	"strings"
	"testing"

	"github.com/spreadsheetlab/XLParser/internal/corpora"
	"github.com/spreadsheetlab/XLParser/parser"
	"github.com/spreadsheetlab/XLParser/reference"
)

const invalid = "!invalid"

// TestCorpus checks the normalized form and references of every formula
// in testdata/corpus. Run with XLPARSER_REFRESH=<glob> to rewrite outputs.
func TestCorpus(t *testing.T) {
	t.Parallel()

	corpora.Corpus{
		Root:      "testdata/corpus",
		Refresh:   "XLPARSER_REFRESH",
		Extension: "xlf",
		Outputs: []corpora.Output{
			{Extension: "print"},
			{Extension: "refs"},
		},
		Test: func(t *testing.T, _ string, formulas []string) []string {
			var printed, refs strings.Builder
			for _, text := range formulas {
				tr, err := parser.Default().Parse(text)
				if err != nil {
					printed.WriteString(invalid + "\n")
					refs.WriteString(invalid + "\n")
					continue
				}

				normalized, err := tr.Print()
				if err != nil {
					t.Errorf("printing %q: %v", text, err)
				}
				printed.WriteString(normalized + "\n")

				var locations []string
				for _, r := range reference.References(tr.Root()) {
					locations = append(locations, r.Location)
				}
				if len(locations) == 0 {
					locations = []string{"-"}
				}
				refs.WriteString(strings.Join(locations, " ") + "\n")
			}
			return []string{printed.String(), refs.String()}
		},
	}.Run(t)
}
