package page

// Meta describes where a page sits in the collection.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// TotalPages returns the number of pages needed for total items. An unknown
// total yields zero pages.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// NewMeta builds pagination metadata for req given the result it produced.
// When the total is unknown, HasNext is true whenever the page came back full.
func NewMeta(req Request, res Result) Meta {
	m := Meta{
		CurrentPage: req.Number,
		PageSize:    req.Size,
		TotalItems:  res.Total,
		HasPrevious: req.Number > FirstPage,
	}

	if res.Total == TotalUnknown {
		m.HasNext = len(res.Records) == req.Size
		return m
	}

	m.TotalPages = TotalPages(res.Total, req.Size)
	m.HasNext = req.Number < m.TotalPages
	return m
}

// ClampPage keeps number within [1, totalPages]. A zero totalPages means the
// last page is unknown, so only the lower bound applies.
func ClampPage(number, totalPages int) int {
	if totalPages > 0 && number > totalPages {
		number = totalPages
	}
	return max(number, FirstPage)
}
