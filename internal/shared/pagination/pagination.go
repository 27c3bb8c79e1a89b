package pagination

// Window converts (page, limit) into an offset/limit pair for repository
// queries. Upstream validation constrains the ranges; values that slip
// through are not trusted here: non-positive page is treated as page 1,
// non-positive limit falls back to def, limit above max is capped.
func Window(page, limit, def, max int) (offset, window int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return (page - 1) * limit, limit
}

// Meta describes one page of a result set.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

// Describe builds the pagination descriptor for a page over total items.
// An empty result set has zero pages and no navigation in either direction.
func Describe(page, limit, total int) Meta {
	if page < 1 {
		page = 1
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
