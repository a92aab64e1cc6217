package dto

type Paging struct {
	CurrentPage int `json:"currentPage"`
	Size        int `json:"size"`
	TotalPages  int `json:"totalPages"`
}

type Page[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}

// NewPaging computes ceil(total/size). Zero matches give zero pages.
func NewPaging(page, size int, total int64) Paging {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Paging{CurrentPage: page, Size: size, TotalPages: pages}
}

// Offset is the number of rows skipped before page.
func Offset(page, size int) int {
	return (page - 1) * size
}
