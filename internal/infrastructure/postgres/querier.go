package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so a repository can run
// inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// whereBuilder accumulates "AND col = $n" clauses with their positional args.
type whereBuilder struct {
	clauses []string
	args    []any
}

// add appends a clause; every "?" in cond is replaced by the next placeholder.
func (w *whereBuilder) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = replaceFirst(cond, "?", placeholder(len(w.args)))
	}
	w.clauses = append(w.clauses, cond)
}

// sql renders " WHERE a AND b" or "" when empty.
func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	out := " WHERE " + w.clauses[0]
	for _, c := range w.clauses[1:] {
		out += " AND " + c
	}
	return out
}

// page appends LIMIT/OFFSET placeholders after the filter args.
func (w *whereBuilder) page(limit, offset int) (string, []any) {
	args := append(append([]any(nil), w.args...), limit, offset)
	return " LIMIT " + placeholder(len(w.args)+1) + " OFFSET " + placeholder(len(w.args)+2), args
}
