package model

// Pagination is the envelope the backend attaches to every paged listing.
// Only the first page's envelope is trusted for a fetch cycle.
type Pagination struct {
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
}

// Pages returns LastPage, treating missing or bogus values as one page.
func (p Pagination) Pages() int {
	if p.LastPage < 1 {
		return 1
	}
	return p.LastPage
}
