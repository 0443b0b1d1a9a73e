package query

// Pagination describes the page window of a list result. Next and Prev are
// present only when the corresponding page exists.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	Limit       int  `json:"limit"`
	Next        *int `json:"next,omitempty"`
	Prev        *int `json:"prev,omitempty"`
}

// Paginate computes the pagination descriptor for a page against the total
// number of matching documents. The caller counts matches before executing
// the page query; that extra scan buys an accurate TotalPages.
func Paginate(total int64, page, limit int) Pagination {
	p := Pagination{
		CurrentPage: page,
		Limit:       limit,
	}
	if limit > 0 {
		p.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	if int64(page*limit) < total {
		next := page + 1
		p.Next = &next
	}
	if limit*(page-1) > 0 {
		prev := page - 1
		p.Prev = &prev
	}
	return p
}
