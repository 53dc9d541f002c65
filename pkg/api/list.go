package api

// ListRequest is the body of the POST /find endpoints. It mirrors the
// client-side table state: filter, paging, free-text search and sorting.
type ListRequest struct {
	Filter    Filter    `json:"filter"`
	Paginator Paginator `json:"paginator"`
	Search    Search    `json:"search"`
	Sorting   Sorting   `json:"sorting"`
}

// Filter narrows a listing. Status filters by the entity status column
// ("active", "pending", "deleted"); Field/Items express "field IN items"
// against a whitelisted column.
type Filter struct {
	Status string  `json:"status"`
	Field  string  `json:"field"`
	Items  []int64 `json:"items"`
}

// Paginator selects a page. PageSize -1 disables the limit.
type Paginator struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Search holds a free-text term matched against the entity's
// searchable columns.
type Search struct {
	Term string `json:"term"`
}

// Sorting orders the listing by a single whitelisted column.
// Direction is "asc" or "desc".
type Sorting struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}
