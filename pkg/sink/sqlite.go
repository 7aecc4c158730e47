package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	flatten "github.com/goliatone/go-flatten"
	_ "modernc.org/sqlite"
)

// DefaultTable is the table SQLite sinks write to when none is configured.
const DefaultTable = "records"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSink inserts records as rows of a single table. Columns are created
// from record keys; column affinity follows the first non-null value seen.
type SQLiteSink struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" for a
// private in-memory database.
func OpenSQLite(path, table string) (*SQLiteSink, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sink: open sqlite %q: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	return &SQLiteSink{db: db, table: table}, nil
}

// Table returns the destination table name.
func (s *SQLiteSink) Table() string {
	return s.table
}

// Write inserts records in one transaction.
func (s *SQLiteSink) Write(ctx context.Context, records []flatten.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	columns := flatten.DescribeColumns(records)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sink: begin: %w", err)
	}
	defer tx.Rollback()

	if err := s.ensureTable(ctx, tx, columns); err != nil {
		return 0, err
	}

	names := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, column := range columns {
		names[i] = quoteIdent(column.Name)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(s.table), strings.Join(names, ", "), strings.Join(marks, ", "),
	))
	if err != nil {
		return 0, fmt.Errorf("sink: prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	for i, record := range records {
		for j, column := range columns {
			args[j] = sqlValue(record[column.Name])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("sink: insert record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sink: commit: %w", err)
	}
	return len(records), nil
}

func (s *SQLiteSink) ensureTable(ctx context.Context, tx *sql.Tx, columns []flatten.Column) error {
	existing, err := s.tableColumns(ctx, tx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		defs := make([]string, len(columns))
		for i, column := range columns {
			defs[i] = quoteIdent(column.Name) + " " + columnType(column)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(s.table), strings.Join(defs, ", "),
		)); err != nil {
			return fmt.Errorf("sink: create table %q: %w", s.table, err)
		}
		return nil
	}
	for _, column := range columns {
		if _, ok := existing[column.Name]; ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(
			"ALTER TABLE %s ADD COLUMN %s %s", quoteIdent(s.table), quoteIdent(column.Name), columnType(column),
		)); err != nil {
			return fmt.Errorf("sink: add column %q: %w", column.Name, err)
		}
	}
	return nil
}

func (s *SQLiteSink) tableColumns(ctx context.Context, tx *sql.Tx) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(s.table)))
	if err != nil {
		return nil, fmt.Errorf("sink: inspect table %q: %w", s.table, err)
	}
	defer rows.Close()

	names := map[string]struct{}{}
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("sink: inspect table %q: %w", s.table, err)
		}
		names[name] = struct{}{}
	}
	return names, rows.Err()
}

// Query runs a read statement and returns each row as a record keyed by
// column name.
func (s *SQLiteSink) Query(ctx context.Context, query string, args ...any) ([]flatten.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sink: query: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sink: query columns: %w", err)
	}
	out := []flatten.Record{}
	for rows.Next() {
		values := make([]any, len(names))
		targets := make([]any, len(names))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("sink: scan row: %w", err)
		}
		record := make(flatten.Record, len(names))
		for i, name := range names {
			if raw, ok := values[i].([]byte); ok {
				record[name] = string(raw)
				continue
			}
			record[name] = values[i]
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnType(column flatten.Column) string {
	switch column.Kind {
	case flatten.KindBool:
		return "INTEGER"
	case flatten.KindNumber:
		switch sample := column.Sample.(type) {
		case float64, float32:
			return "REAL"
		case json.Number:
			if _, err := sample.Int64(); err != nil {
				return "REAL"
			}
			return "INTEGER"
		default:
			return "INTEGER"
		}
	default:
		return "TEXT"
	}
}

func sqlValue(value any) any {
	switch typed := value.(type) {
	case nil:
		return nil
	case bool:
		if typed {
			return int64(1)
		}
		return int64(0)
	case json.Number:
		if n, err := typed.Int64(); err == nil {
			return n
		}
		if f, err := typed.Float64(); err == nil {
			return f
		}
		return typed.String()
	case string, int64, float64:
		return typed
	case int, int8, int16, int32, uint8, uint16, uint32, float32:
		return value
	default:
		if flatten.KindOf(value) == flatten.KindNumber {
			return value
		}
		return flatten.ScalarString(value)
	}
}
