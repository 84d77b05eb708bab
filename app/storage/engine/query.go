package engine

import "fmt"

// DBCmd identifies a store operation in a QueryMap. Each store claims its own
// numeric range (approved users 100+, spam counters 200+, detections 300+) so
// commands stay unique across the package.
type DBCmd int

// Query holds the dialect-specific variants of one statement
type Query struct {
	Sqlite   string
	Postgres string
}

// QueryMap resolves a store command to the statement for the active dialect.
// Stores build their map once at init and pick from it per call.
type QueryMap struct {
	queries map[DBCmd]Query
}

// NewQueryMap makes an empty QueryMap
func NewQueryMap() *QueryMap {
	return &QueryMap{queries: make(map[DBCmd]Query)}
}

// Add registers dialect-specific statements for a command, chainable
func (q *QueryMap) Add(cmd DBCmd, query Query) *QueryMap {
	q.queries[cmd] = query
	return q
}

// AddSame registers one statement shared by all dialects, chainable
func (q *QueryMap) AddSame(cmd DBCmd, query string) *QueryMap {
	return q.Add(cmd, Query{Sqlite: query, Postgres: query})
}

// Pick returns the statement for the given db type and command
func (q *QueryMap) Pick(dbType Type, cmd DBCmd) (string, error) {
	query, ok := q.queries[cmd]
	if !ok {
		return "", fmt.Errorf("unsupported command type %d", cmd)
	}

	switch dbType {
	case Sqlite:
		return query.Sqlite, nil
	case Postgres:
		return query.Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}
