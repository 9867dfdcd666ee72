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
	"strings"

	"github.com/spf13/cobra"

	"github.com/spreadsheetlab/XLParser/batch"
	"github.com/spreadsheetlab/XLParser/tree"
)

func newParseCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "parse [formula...]",
		Short: "Print the syntax tree of formulas",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return a.each(cmd, args, func(_ batch.Formula, t *tree.Tree) error {
				if asJSON {
					return json.NewEncoder(out).Encode(t)
				}
				a.outline(out, t.Root(), 0)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print each tree as a line of JSON")
	return cmd
}

func newPrintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "print [formula...]",
		Short: "Print formulas in normalized form",
		Long: `Print formulas in normalized form: without insignificant whitespace,
and with a single space around binary operators.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return a.each(cmd, args, func(_ batch.Formula, t *tree.Tree) error {
				text, err := t.Print()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			})
		},
	}
}

// outline writes the subtree at n with one node per line, indented by
// depth.
func (a *app) outline(out io.Writer, n tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsTerminal() {
		fmt.Fprintf(out, "%s%s\n", indent, a.styles.value.Sprint(n))
		return
	}
	fmt.Fprintf(out, "%s%s\n", indent, a.styles.name.Sprint(n.Name()))
	for _, c := range n.Children() {
		a.outline(out, c, depth+1)
	}
}
