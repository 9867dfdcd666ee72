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

// Package batch parses and analyzes large collections of formulas
// concurrently.
//
// A run stops early once too many formulas have failed to parse, since a
// corpus with many failures usually means it was extracted incorrectly.
// Invalid formulas are never retried: parsing is a pure function of the
// formula text.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/spreadsheetlab/XLParser/analysis"
	"github.com/spreadsheetlab/XLParser/parser"
)

// DefaultMaxFailures is the number of invalid formulas after which a run
// stops, unless configured otherwise.
const DefaultMaxFailures = 10

// ErrTooManyFailures is returned by [Run] when it stops early because of
// invalid formulas.
var ErrTooManyFailures = errors.New("too many invalid formulas")

// Formula is a formula together with where it was found.
type Formula struct {
	Source string `json:"source,omitempty"`
	Line   int    `json:"line,omitempty"`
	Text   string `json:"text"`
}

// String implements [fmt.Stringer].
func (f Formula) String() string {
	if f.Source == "" {
		return f.Text
	}
	return fmt.Sprintf("%s:%d", f.Source, f.Line)
}

// Result is the outcome of parsing one formula.
type Result struct {
	Formula     Formula          `json:"formula"`
	OK          bool             `json:"ok"`
	Diagnostics []string         `json:"diagnostics,omitempty"`
	Metrics     analysis.Metrics `json:"metrics"`
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total   int `json:"total"`
	Parsed  int `json:"parsed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Options configures [Run].
type Options struct {
	// Workers bounds the number of formulas parsed at once. Zero means
	// GOMAXPROCS.
	Workers int
	// MaxFailures is the number of invalid formulas after which the run
	// stops with [ErrTooManyFailures]. Zero means [DefaultMaxFailures];
	// negative means no limit.
	MaxFailures int
	// Functions, if set, restricts the run to formulas that mention at
	// least one of these functions. Others are counted as skipped.
	Functions []string

	// Parser parses the formulas. Nil means [parser.Default].
	Parser *parser.Parser
	// Store receives every result. It may be nil.
	Store Store
	// Logger receives progress. Nil means nothing is logged.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MaxFailures == 0 {
		o.MaxFailures = DefaultMaxFailures
	}
	if o.Parser == nil {
		o.Parser = parser.Default()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Run parses and analyzes formulas concurrently, sending each result to
// opts.Store.
//
// Run returns early with [ErrTooManyFailures] once opts.MaxFailures
// formulas have failed to parse, or with the error of a failed store. The
// summary counts the formulas processed before that.
func Run(ctx context.Context, formulas []Formula, opts Options) (Summary, error) {
	opts = opts.withDefaults()
	r := &runner{opts: opts}

	prefilter := NewPrefilter(opts.Functions)
	sem := semaphore.NewWeighted(int64(opts.Workers))
	g, gctx := errgroup.WithContext(ctx)

	var skipped int
	for _, f := range formulas {
		if !prefilter.Match(f.Text) {
			skipped++
			continue
		}
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			return r.process(gctx, f)
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	summary := Summary{
		Total:   len(formulas),
		Parsed:  int(r.parsed.Load()),
		Failed:  int(r.failed.Load()),
		Skipped: skipped,
	}
	opts.Logger.Info("batch finished",
		slog.Int("total", summary.Total),
		slog.Int("parsed", summary.Parsed),
		slog.Int("failed", summary.Failed),
		slog.Int("skipped", summary.Skipped),
	)
	return summary, err
}

type runner struct {
	opts   Options
	parsed atomic.Int64
	failed atomic.Int64
}

func (r *runner) limited() bool {
	return r.opts.MaxFailures > 0 && r.failed.Load() >= int64(r.opts.MaxFailures)
}

func (r *runner) process(ctx context.Context, f Formula) error {
	if r.limited() || ctx.Err() != nil {
		return nil
	}

	res := Result{Formula: f}
	t, rep := r.opts.Parser.ParseToTree(f.Text)
	if t == nil {
		res.Diagnostics = rep.Strings()
		n := r.failed.Add(1)
		r.opts.Logger.Warn("invalid formula",
			slog.String("formula", f.String()),
			slog.Any("diagnostics", res.Diagnostics),
		)
		if err := r.store(ctx, res); err != nil {
			return err
		}
		if r.opts.MaxFailures > 0 && n >= int64(r.opts.MaxFailures) {
			return fmt.Errorf("%w: %d formulas failed to parse", ErrTooManyFailures, n)
		}
		return nil
	}

	res.OK = true
	res.Metrics = analysis.FromTree(t).Metrics()
	r.parsed.Add(1)
	r.opts.Logger.Debug("parsed formula",
		slog.String("formula", f.String()),
		slog.Int("depth", res.Metrics.Depth),
	)
	return r.store(ctx, res)
}

func (r *runner) store(ctx context.Context, res Result) error {
	if r.opts.Store == nil {
		return nil
	}
	if err := r.opts.Store.Add(ctx, res); err != nil {
		return fmt.Errorf("storing result for %s: %w", res.Formula, err)
	}
	return nil
}
