package domain

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type PageParams struct {
	Page  int
	Limit int
}

// NewPageParams clamps non-positive inputs to the defaults. Pagination is
// deliberately lenient: bad values never reject a request.
func NewPageParams(page, limit int) PageParams {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return PageParams{Page: page, Limit: limit}
}

func (p PageParams) Offset() int { return (p.Page - 1) * p.Limit }
