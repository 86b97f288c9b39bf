package database

import (
	"context"
	"strings"

	"frontdesk/internal/metrics"
)

// Result is the outcome of a successful Execute call. A statement that
// produced rows has Rows != nil; a non-row statement reports RowsAffected.
// Failure is a separate non-nil error, so callers never have to guess
// whether an empty result means "zero rows" or "something broke".
type Result struct {
	Columns      []string
	Rows         [][]any
	RowsAffected int64
}

// Empty reports whether the statement succeeded without producing rows.
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}

// Execute runs a single parameterized statement and returns its full result
// set. Row-returning statements (SELECT, WITH, PRAGMA) are collected into
// Result.Rows in column order; everything else reports RowsAffected.
// Failures are logged here and returned to the caller.
func (s *Store) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	verb := statementVerb(query)

	if returnsRows(verb) {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			s.logger.Error().Err(err).Str("query", query).Msg("query failed")
			metrics.IncStatement(verb, "error")
			return Result{}, err
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			metrics.IncStatement(verb, "error")
			return Result{}, err
		}

		var collected [][]any
		for rows.Next() {
			values := make([]any, len(columns))
			pointers := make([]any, len(columns))
			for i := range values {
				pointers[i] = &values[i]
			}
			if err := rows.Scan(pointers...); err != nil {
				metrics.IncStatement(verb, "error")
				return Result{}, err
			}
			collected = append(collected, values)
		}
		if err := rows.Err(); err != nil {
			s.logger.Error().Err(err).Str("query", query).Msg("row iteration failed")
			metrics.IncStatement(verb, "error")
			return Result{}, err
		}

		metrics.IncStatement(verb, "ok")
		return Result{Columns: columns, Rows: collected}, nil
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("statement failed")
		metrics.IncStatement(verb, "error")
		return Result{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		affected = 0
	}

	metrics.IncStatement(verb, "ok")
	return Result{RowsAffected: affected}, nil
}

func statementVerb(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

func returnsRows(verb string) bool {
	switch verb {
	case "select", "with", "pragma":
		return true
	}
	return false
}
