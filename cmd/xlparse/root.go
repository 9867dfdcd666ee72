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
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spreadsheetlab/XLParser/batch"
	"github.com/spreadsheetlab/XLParser/parser"
	"github.com/spreadsheetlab/XLParser/report"
	"github.com/spreadsheetlab/XLParser/tree"
)

// app is the state shared by every subcommand, set up once flags and the
// config file have been read.
type app struct {
	configPath string
	verbose    bool
	quiet      bool
	color      string
	version    string

	cfg    config
	parser *parser.Parser
	logger *slog.Logger
	styles *styles
	colors bool
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "xlparse",
		Short: "Parse and analyze Excel formulas",
		Long: `xlparse parses Excel formulas into syntax trees and reports on them:
the references they use, the functions they call, and how deeply nested
they are.

Formulas are given as arguments, or read one per line from standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", defaultConfigPath, "Config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "Quiet mode (errors only)")
	flags.StringVar(&a.color, "color", "auto", "Colorize output: auto, always, never")
	flags.StringVar(&a.version, "excel", parser.DefaultVersion.String(), "Excel version whose functions are recognized")

	root.AddCommand(
		newParseCmd(a),
		newPrintCmd(a),
		newRefsCmd(a),
		newAnalyzeCmd(a),
		newBatchCmd(a),
		newFunctionsCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	changed := cmd.Flags().Changed

	cfg, err := loadConfig(a.configPath, changed("config"))
	if err != nil {
		return err
	}
	a.cfg = cfg
	if !changed("color") && cfg.Color != "" {
		a.color = cfg.Color
	}
	if !changed("excel") && cfg.Version != "" {
		a.version = cfg.Version
	}

	if a.colors, err = colorEnabled(a.color); err != nil {
		return err
	}
	a.styles = newStyles(a.colors)

	level := slog.LevelInfo
	switch {
	case a.quiet:
		level = slog.LevelError
	case a.verbose:
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	v, err := parser.ParseVersion(a.version)
	if err != nil {
		return err
	}
	if a.parser, err = parser.New(parser.WithVersion(v)); err != nil {
		return err
	}
	a.logger.Debug("parser ready", slog.String("version", v.String()))
	return nil
}

// formulas returns the formulas named on the command line, or those read
// from standard input if there are none.
func (a *app) formulas(cmd *cobra.Command, args []string) ([]batch.Formula, error) {
	if len(args) > 0 {
		out := make([]batch.Formula, len(args))
		for i, arg := range args {
			out[i] = batch.Formula{Text: arg}
		}
		return out, nil
	}
	return batch.ReadFormulas(cmd.InOrStdin(), "")
}

// parse parses a formula, rendering diagnostics to standard error if it is
// invalid.
func (a *app) parse(cmd *cobra.Command, f batch.Formula) (*tree.Tree, error) {
	t, r := a.parser.ParseToTree(f.Text)
	if t != nil {
		return t, nil
	}

	renderer := report.Renderer{Colorize: a.colors, Compact: a.quiet}
	if f.Source != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", f)
	}
	io.WriteString(cmd.ErrOrStderr(), renderer.RenderString(r, f.Text))
	return nil, r.AsError()
}

// each parses every formula and calls fn with the valid ones. Invalid
// formulas are reported, and make each return an error once all have been
// tried.
func (a *app) each(cmd *cobra.Command, args []string, fn func(batch.Formula, *tree.Tree) error) error {
	formulas, err := a.formulas(cmd, args)
	if err != nil {
		return err
	}

	var invalid int
	for _, f := range formulas {
		t, err := a.parse(cmd, f)
		if err != nil {
			invalid++
			continue
		}
		if err := fn(f, t); err != nil {
			return err
		}
	}
	switch {
	case invalid == 1 && len(formulas) == 1:
		return fmt.Errorf("invalid formula")
	case invalid > 0:
		return fmt.Errorf("%d of %d formulas are invalid", invalid, len(formulas))
	}
	return nil
}
