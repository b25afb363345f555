package store

// QueryRow maps a column name to its scalar value. Dates are normalized to
// ISO-8601 strings before leaving the store layer.
type QueryRow map[string]any

// QueryResult is the ordered result of executing a generated SQL statement.
// It is produced per request and never cached.
type QueryResult struct {
	Rows []QueryRow `json:"rows"`
}
