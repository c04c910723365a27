package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

func NewPagination(page, pageSize int, totalItems int64) *Pagination {
	// Query values arrive unvalidated; a zero pageSize would divide
	// by zero below.
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	totalPages := totalItems / int64(pageSize)
	if totalItems%int64(pageSize) != 0 {
		totalPages++
	}
	from := (page-1)*pageSize + 1
	to := page * pageSize
	if int64(to) > totalItems {
		to = int(totalItems)
	}
	if totalItems == 0 {
		from = 0
	}
	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasMore:    int64(page) < totalPages,
		From:       from,
		To:         to,
	}
}
