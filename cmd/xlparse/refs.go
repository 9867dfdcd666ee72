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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spreadsheetlab/XLParser/batch"
	"github.com/spreadsheetlab/XLParser/reference"
	"github.com/spreadsheetlab/XLParser/tree"
)

func newRefsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "refs [formula...]",
		Short: "List the references of formulas",
		Long: `List the references of formulas. Ranges between two cells or two parts
of the same table are merged into a single reference.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return a.each(cmd, args, func(f batch.Formula, t *tree.Tree) error {
				refs := reference.References(t.Root())
				if asJSON {
					if refs == nil {
						refs = []reference.Reference{}
					}
					return json.NewEncoder(out).Encode(refs)
				}

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, r := range refs {
					fmt.Fprintf(tw, "%s\t%s\t%s\n",
						a.styles.value.Sprint(r.Location),
						a.styles.name.Sprint(r.Kind),
						a.styles.muted.Sprint(describe(r)))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print each formula's references as a line of JSON")
	return cmd
}

// describe summarizes where a reference points.
func describe(r reference.Reference) string {
	var parts []string
	if r.FilePath != "" || r.FileName != "" {
		parts = append(parts, "file="+r.FilePath+r.FileName)
	}
	switch {
	case r.LastWorksheet != "":
		parts = append(parts, "sheets="+r.Worksheet+":"+r.LastWorksheet)
	case r.Worksheet != "":
		parts = append(parts, "sheet="+r.Worksheet)
	}
	if r.Name != "" {
		parts = append(parts, "name="+r.Name)
	}
	if r.MinLocation != "" {
		loc := r.MinLocation
		if r.MaxLocation != "" && r.MaxLocation != r.MinLocation {
			loc += ".." + r.MaxLocation
		}
		parts = append(parts, "cells="+loc)
	}
	if len(r.TableColumns) > 0 {
		parts = append(parts, fmt.Sprintf("columns=%q", r.TableColumns))
	}
	return strings.Join(parts, " ")
}
