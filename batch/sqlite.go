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

package batch

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // Registers the "sqlite" driver.
)

// SQLiteStore writes results to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates the database at path. Use ":memory:" for
// a database that lives only as long as the store.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Add implements [Store].
func (s *SQLiteStore) Add(ctx context.Context, r Result) (err error) {
	diagnostics, err := json.Marshal(r.Diagnostics)
	if err != nil {
		return fmt.Errorf("marshaling diagnostics: %w", err)
	}
	metrics, err := json.Marshal(r.Metrics)
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO formulas (source, line, formula, ok, diagnostics_json,
			depth, operator_depth, conditional_complexity, metrics_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.Formula.Source,
		r.Formula.Line,
		r.Formula.Text,
		r.OK,
		string(diagnostics),
		r.Metrics.Depth,
		r.Metrics.OperatorDepth,
		r.Metrics.ConditionalComplexity,
		string(metrics),
	)
	if err != nil {
		return fmt.Errorf("inserting formula: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, name := range r.Metrics.Functions {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO formula_functions (formula_id, name) VALUES (?, ?)", id, name)
		if err != nil {
			return fmt.Errorf("inserting function: %w", err)
		}
	}
	return tx.Commit()
}

// Results returns every stored result, in insertion order.
func (s *SQLiteStore) Results(ctx context.Context) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, line, formula, ok, diagnostics_json, metrics_json
		FROM formulas ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying formulas: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r                    Result
			diagnostics, metrics string
		)
		if err := rows.Scan(&r.Formula.Source, &r.Formula.Line, &r.Formula.Text,
			&r.OK, &diagnostics, &metrics); err != nil {
			return nil, fmt.Errorf("scanning formula: %w", err)
		}
		if err := json.Unmarshal([]byte(diagnostics), &r.Diagnostics); err != nil {
			return nil, fmt.Errorf("unmarshaling diagnostics: %w", err)
		}
		if err := json.Unmarshal([]byte(metrics), &r.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshaling metrics: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FunctionCounts returns how many stored formulas call each function.
func (s *SQLiteStore) FunctionCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, COUNT(DISTINCT formula_id) FROM formula_functions GROUP BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying functions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		out[name] = count
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
