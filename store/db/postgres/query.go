package postgres

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/acadassist/acadassist/store"
)

// RunQuery executes a generated SQL statement and returns ordered row maps.
// The statement text is produced upstream (LLM output plus the server-side
// scope predicate); it runs on a dedicated connection that is released on
// every exit path.
func (d *DB) RunQuery(ctx context.Context, query string) (*store.QueryResult, error) {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire connection")
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read columns")
	}

	result := &store.QueryResult{Rows: []store.QueryRow{}}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}

		row := store.QueryRow{}
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// normalizeValue converts driver values to JSON-friendly scalars.
// Dates become ISO-8601 strings.
func normalizeValue(v any) any {
	switch value := v.(type) {
	case time.Time:
		return value.Format(time.RFC3339)
	case []byte:
		return string(value)
	default:
		return v
	}
}
