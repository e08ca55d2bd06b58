package domain

// UserPage is one page of a user search result. Page carries the page
// number actually served, which may be lower than the one requested when
// overflow correction kicked in.
type UserPage struct {
	Users      []SanitizedUser `json:"users"`
	Page       int64           `json:"page"`
	PageSize   int64           `json:"page_size"`
	TotalPages int64           `json:"total_pages"`
	TotalRows  int64           `json:"total_rows"`
}

// PageCount returns how many pages of size pageSize are needed for
// totalRows rows. Zero rows yield zero pages.
func PageCount(totalRows, pageSize int64) int64 {
	if totalRows <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalRows + pageSize - 1) / pageSize
}
