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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spreadsheetlab/XLParser/parser"
)

func newFunctionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "functions [prefix]",
		Short: "List the built-in functions of an Excel version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prefix string
			if len(args) > 0 {
				prefix = strings.ToUpper(args[0])
			}
			out := cmd.OutOrStdout()
			for _, name := range parser.Functions(a.parser.Version()) {
				if strings.HasPrefix(name, prefix) {
					fmt.Fprintln(out, name)
				}
			}
			return nil
		},
	}
}
