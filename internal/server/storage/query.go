package storage

import (
	"fmt"
	"strings"
)

// ListQuery is the validated, typed form of a /find request body:
// an equality/IN filter, paging, a free-text term and one sort column.
// Every referenced column is checked against the entity's TableSpec
// before any SQL is built.
type ListQuery struct {
	// Status filters by the status column when non-empty.
	Status string
	// Field/Values express "Field IN (Values...)" when both are set.
	Field  string
	Values []int64
	// Page is 1-based. PageSize -1 disables the limit.
	Page     int
	PageSize int
	// Term is matched with LIKE against the entity's search columns.
	Term string
	// SortColumn/SortDirection order the result. Empty falls back to
	// id descending.
	SortColumn    string
	SortDirection string
}

// TableSpec declares, per entity, which columns a list query may
// reference. Requests naming anything else are rejected with
// ErrInvalidQuery instead of being passed through to SQL.
type TableSpec struct {
	// Columns is the filter/sort whitelist.
	Columns []string
	// Search lists the columns matched by the free-text term.
	Search []string
	// HasStatus enables the status filter.
	HasStatus bool
}

func (s TableSpec) allows(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// BuildWhere renders the WHERE clause (without the keyword) and its
// arguments. An empty clause means no filtering.
func (s TableSpec) BuildWhere(q ListQuery) (string, []any, error) {
	var conds []string
	var args []any

	if q.Status != "" {
		if !s.HasStatus {
			return "", nil, fmt.Errorf("%w: entity has no status column", ErrInvalidQuery)
		}
		conds = append(conds, "status = ?")
		args = append(args, q.Status)
	}

	if q.Field != "" && len(q.Values) > 0 {
		if !s.allows(q.Field) {
			return "", nil, fmt.Errorf("%w: unknown filter column %q", ErrInvalidQuery, q.Field)
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(q.Values)), ", ")
		conds = append(conds, fmt.Sprintf("%s IN (%s)", q.Field, placeholders))
		for _, v := range q.Values {
			args = append(args, v)
		}
	}

	if q.Term != "" && len(s.Search) > 0 {
		var likes []string
		for _, c := range s.Search {
			likes = append(likes, fmt.Sprintf("%s LIKE ?", c))
			args = append(args, "%"+q.Term+"%")
		}
		conds = append(conds, "("+strings.Join(likes, " OR ")+")")
	}

	return strings.Join(conds, " AND "), args, nil
}

// BuildTail renders the ORDER BY / LIMIT / OFFSET part of the query.
func (s TableSpec) BuildTail(q ListQuery) (string, error) {
	column := q.SortColumn
	if column == "" {
		column = "id"
	}
	if !s.allows(column) {
		return "", fmt.Errorf("%w: unknown sort column %q", ErrInvalidQuery, column)
	}

	direction := strings.ToLower(q.SortDirection)
	switch direction {
	case "":
		direction = "desc"
	case "asc", "desc":
	default:
		return "", fmt.Errorf("%w: sort direction must be asc or desc", ErrInvalidQuery)
	}

	tail := fmt.Sprintf(" ORDER BY %s %s", column, strings.ToUpper(direction))

	if q.PageSize != -1 {
		pageSize := q.PageSize
		if pageSize <= 0 {
			pageSize = 10
		}
		page := q.Page
		if page <= 0 {
			page = 1
		}
		tail += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
	}

	return tail, nil
}
