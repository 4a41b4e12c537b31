package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/dennis-koster/dlf-graphql-example/internal/domain"
)

// UserQuery is an unexecuted, composable description of a fetch over users.
// The zero value selects the whole collection. Narrowing methods return a
// copy, so a handle can be shared and extended safely.
type UserQuery struct {
	createdAfter *time.Time
}

// NewUserQuery returns a handle over every user.
func NewUserQuery() UserQuery {
	return UserQuery{}
}

// WhereCreatedAtOrAfter narrows the query to users with created_at >= t.
func (q UserQuery) WhereCreatedAtOrAfter(t time.Time) UserQuery {
	bound := t.UTC()
	q.createdAfter = &bound
	return q
}

// CreatedAfter returns the inclusive lower bound on created_at, if any.
func (q UserQuery) CreatedAfter() (time.Time, bool) {
	if q.createdAfter == nil {
		return time.Time{}, false
	}
	return *q.createdAfter, true
}

// IsUnfiltered reports whether the handle selects the full collection.
func (q UserQuery) IsUnfiltered() bool {
	return q.createdAfter == nil
}

// Matches evaluates the query's predicate against a single user.
func (q UserQuery) Matches(user domain.User) bool {
	if q.createdAfter != nil && user.CreatedAt.Before(*q.createdAfter) {
		return false
	}
	return true
}

// whereClause renders the predicate as a SQL WHERE clause with positional
// arguments starting at $1. It returns an empty clause for the full collection.
func (q UserQuery) whereClause() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.createdAfter != nil {
		args = append(args, *q.createdAfter)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Page bounds a query execution. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}
