package domain

// Pagination is parsed from query parameters; zero values fall back to the
// caller-supplied defaults.
type Pagination struct {
	Limit int `query:"limit" validate:"omitempty,gte=1,lte=100"`
	Page  int `query:"page" validate:"omitempty,gte=1"`
}

// LimitOr returns the requested page size or def when unset.
func (p Pagination) LimitOr(def int) int {
	if p.Limit > 0 {
		return p.Limit
	}
	return def
}

// Offset returns the row offset for the requested page (pages are 1-based).
func (p Pagination) Offset(limit int) int {
	if p.Page > 1 {
		return (p.Page - 1) * limit
	}
	return 0
}

// QueryResponse is the uniform paginated envelope.
type QueryResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
