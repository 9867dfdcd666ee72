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
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spreadsheetlab/XLParser/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		root     string
		database string
		opts     batch.Options
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "batch [pattern...]",
		Short: "Parse a corpus of formulas",
		Long: `Parse a corpus of formulas concurrently and summarize the results.

Each pattern selects files under --root, one formula per line; ** matches
any number of directories. With no patterns, formulas are read from standard
input. The run stops early once --max-failures formulas are invalid.`,
		Example: `  xlparse batch --db results.db 'enron/**/*.txt'
  xlparse batch --functions VLOOKUP,HLOOKUP < formulas.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed
			if !changed("workers") {
				opts.Workers = a.cfg.Workers
			}
			if !changed("max-failures") {
				opts.MaxFailures = a.cfg.MaxFailures
			}
			if !changed("functions") {
				opts.Functions = a.cfg.Functions
			}
			if !changed("db") {
				database = a.cfg.Database
			}

			var (
				formulas []batch.Formula
				err      error
			)
			if len(args) > 0 {
				formulas, err = batch.ReadCorpus(os.DirFS(root), args...)
			} else {
				formulas, err = batch.ReadFormulas(cmd.InOrStdin(), "<stdin>")
			}
			if err != nil {
				return err
			}
			a.logger.Info("read corpus", slog.Int("formulas", len(formulas)))

			if database != "" {
				store, err := batch.NewSQLiteStore(cmd.Context(), database)
				if err != nil {
					return err
				}
				defer store.Close()
				opts.Store = store
			}
			opts.Parser = a.parser
			opts.Logger = a.logger

			summary, runErr := batch.Run(cmd.Context(), formulas, opts)

			out := cmd.OutOrStdout()
			if asJSON {
				if err := json.NewEncoder(out).Encode(summary); err != nil {
					return err
				}
			} else {
				a.writeSummary(cmd, summary)
			}

			if errors.Is(runErr, batch.ErrTooManyFailures) {
				return fmt.Errorf("stopped early: %w", runErr)
			}
			return runErr
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&root, "root", ".", "Directory that patterns are relative to")
	flags.StringVar(&database, "db", "", "SQLite database to write results to")
	flags.IntVarP(&opts.Workers, "workers", "w", 0, "Number of formulas to parse at once (default GOMAXPROCS)")
	flags.IntVar(&opts.MaxFailures, "max-failures", batch.DefaultMaxFailures, "Stop after this many invalid formulas; negative for no limit")
	flags.StringSliceVar(&opts.Functions, "functions", nil, "Only parse formulas that call one of these functions")
	flags.BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

func (a *app) writeSummary(cmd *cobra.Command, s batch.Summary) {
	out := cmd.OutOrStdout()
	st := a.styles
	fmt.Fprintf(out, "%s %d formulas\n", st.heading.Sprint("total:  "), s.Total)
	fmt.Fprintf(out, "%s %d\n", st.ok.Sprint("parsed: "), s.Parsed)
	fmt.Fprintf(out, "%s %d\n", st.failed.Sprint("failed: "), s.Failed)
	if s.Skipped > 0 {
		fmt.Fprintf(out, "%s %d\n", st.muted.Sprint("skipped:"), s.Skipped)
	}
}
