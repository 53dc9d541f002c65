package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productSpec = TableSpec{
	Columns:   []string{"id", "product_code", "quantity_po"},
	Search:    []string{"product_code"},
	HasStatus: true,
}

func TestTableSpec_BuildWhere(t *testing.T) {
	tests := []struct {
		name      string
		query     ListQuery
		wantSQL   string
		wantArgs  []any
		wantError bool
	}{
		{
			name:     "empty query",
			query:    ListQuery{},
			wantSQL:  "",
			wantArgs: nil,
		},
		{
			name:     "status only",
			query:    ListQuery{Status: "active"},
			wantSQL:  "status = ?",
			wantArgs: []any{"active"},
		},
		{
			name:     "field in values",
			query:    ListQuery{Field: "id", Values: []int64{1, 2, 3}},
			wantSQL:  "id IN (?, ?, ?)",
			wantArgs: []any{int64(1), int64(2), int64(3)},
		},
		{
			name:     "search term",
			query:    ListQuery{Term: "SHIRT"},
			wantSQL:  "(product_code LIKE ?)",
			wantArgs: []any{"%SHIRT%"},
		},
		{
			name:     "combined",
			query:    ListQuery{Status: "active", Field: "quantity_po", Values: []int64{500}, Term: "PO"},
			wantSQL:  "status = ? AND quantity_po IN (?) AND (product_code LIKE ?)",
			wantArgs: []any{"active", int64(500), "%PO%"},
		},
		{
			name:      "unknown filter column rejected",
			query:     ListQuery{Field: "password", Values: []int64{1}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := productSpec.BuildWhere(tt.query)
			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalidQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestTableSpec_BuildWhere_NoStatusColumn(t *testing.T) {
	spec := TableSpec{Columns: []string{"id"}}
	_, _, err := spec.BuildWhere(ListQuery{Status: "active"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestTableSpec_BuildTail(t *testing.T) {
	tests := []struct {
		name      string
		query     ListQuery
		want      string
		wantError bool
	}{
		{
			name:  "defaults",
			query: ListQuery{PageSize: -1},
			want:  " ORDER BY id DESC",
		},
		{
			name:  "explicit sort and page",
			query: ListQuery{SortColumn: "product_code", SortDirection: "asc", Page: 3, PageSize: 20},
			want:  " ORDER BY product_code ASC LIMIT 20 OFFSET 40",
		},
		{
			name:  "zero paging falls back to first page of ten",
			query: ListQuery{},
			want:  " ORDER BY id DESC LIMIT 10 OFFSET 0",
		},
		{
			name:      "unknown sort column rejected",
			query:     ListQuery{SortColumn: "password"},
			wantError: true,
		},
		{
			name:      "bad direction rejected",
			query:     ListQuery{SortColumn: "id", SortDirection: "sideways"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tail, err := productSpec.BuildTail(tt.query)
			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalidQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tail)
		})
	}
}
