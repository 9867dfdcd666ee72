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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spreadsheetlab/XLParser/analysis"
	"github.com/spreadsheetlab/XLParser/batch"
	"github.com/spreadsheetlab/XLParser/tree"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "analyze [formula...]",
		Short: "Report metrics of formulas",
		Long: `Report metrics of formulas: nesting depth, operator depth, conditional
complexity, and the functions, references and constants they use.`,
		PreRunE: func(*cobra.Command, []string) error {
			switch format {
			case "text", "json", "yaml":
				return nil
			}
			return fmt.Errorf("invalid format %q: want text, json or yaml", format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var all []analysis.Metrics
			err := a.each(cmd, args, func(_ batch.Formula, t *tree.Tree) error {
				m := analysis.FromTree(t).Metrics()
				switch format {
				case "json":
					return json.NewEncoder(out).Encode(m)
				case "yaml":
					all = append(all, m)
				default:
					a.writeMetrics(out, m)
				}
				return nil
			})
			if len(all) > 0 {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(all); err != nil {
					return err
				}
				if err := enc.Close(); err != nil {
					return err
				}
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml")
	return cmd
}

func (a *app) writeMetrics(out io.Writer, m analysis.Metrics) {
	s := a.styles
	field := func(name, value string) {
		fmt.Fprintf(out, "  %s %s\n", s.name.Sprintf("%-24s", name+":"), value)
	}

	fmt.Fprintln(out, s.heading.Sprint(m.Formula))
	field("depth", strconv.Itoa(m.Depth))
	field("operator depth", strconv.Itoa(m.OperatorDepth))
	field("conditional complexity", strconv.Itoa(m.ConditionalComplexity))
	field("functions", s.value.Sprint(strings.Join(m.Functions, " ")))
	field("references", s.value.Sprint(strings.Join(m.References, " ")))
	field("constants", s.value.Sprint(strings.Join(m.Constants, " ")))
}
