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
	"errors"
	"fmt"
)

// SchemaVersion is the version of the database schema written by
// [SQLiteStore].
const SchemaVersion = 1

// CreateSchema creates the tables of a results database, if they do not
// already exist.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if err := createSchemaVersionTable(ctx, db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}
	if err := createFormulasTable(ctx, db); err != nil {
		return fmt.Errorf("creating formulas table: %w", err)
	}
	if err := createFunctionsTable(ctx, db); err != nil {
		return fmt.Errorf("creating formula_functions table: %w", err)
	}
	return nil
}

func createSchemaVersionTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	var version int
	err = db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	case err != nil:
		return err
	case version != SchemaVersion:
		return fmt.Errorf("unsupported schema version %d, want %d", version, SchemaVersion)
	}
	return nil
}

func createFormulasTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS formulas (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			line INTEGER NOT NULL,
			formula TEXT NOT NULL,
			ok INTEGER NOT NULL,
			diagnostics_json TEXT NOT NULL,
			depth INTEGER NOT NULL,
			operator_depth INTEGER NOT NULL,
			conditional_complexity INTEGER NOT NULL,
			metrics_json TEXT NOT NULL
		)
	`)
	return err
}

func createFunctionsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS formula_functions (
			formula_id INTEGER NOT NULL REFERENCES formulas(id),
			name TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS formula_functions_name
		ON formula_functions (name)
	`)
	return err
}
