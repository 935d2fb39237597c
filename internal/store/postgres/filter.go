package postgres

import (
	"fmt"
	"strings"
)

// sqlFilter accumulates AND-combined predicates with positional args.
// Expressions use %d verbs, one per argument, replaced with the final
// placeholder numbers. An empty filter produces no WHERE clause and
// matches everything.
type sqlFilter struct {
	clauses []string
	args    []any
}

func (f *sqlFilter) add(expr string, args ...any) {
	idx := make([]any, len(args))
	for i, a := range args {
		f.args = append(f.args, a)
		idx[i] = len(f.args)
	}
	f.clauses = append(f.clauses, fmt.Sprintf(expr, idx...))
}

// where returns the WHERE clause (with leading space) or "".
func (f *sqlFilter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// paged appends LIMIT/OFFSET placeholders and returns the SQL fragment
// plus the final argument list.
func (f *sqlFilter) paged(limit, offset int) (string, []any) {
	n := len(f.args)
	f.args = append(f.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), f.args
}

// likePattern wraps a search term for a case-insensitive substring
// match.
func likePattern(term string) string {
	return "%" + strings.TrimSpace(term) + "%"
}
