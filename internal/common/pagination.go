package common

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageRequest struct {
	Page     int
	PageSize int
}

func NewPageRequest(page, pageSize int) PageRequest {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p PageRequest) Limit() int {
	return p.PageSize
}

// CheckPage rejects pages past the last one. The first page is always valid,
// even for an empty result set.
func (p PageRequest) CheckPage(count int64) error {
	if p.Page > 1 && int64(p.Offset()) >= count {
		return NewError(CodeNotFound, "Invalid page.", nil)
	}
	return nil
}

func (p PageRequest) HasNext(count int64) bool {
	return int64(p.Page*p.PageSize) < count
}

func (p PageRequest) HasPrevious() bool {
	return p.Page > 1
}

type Page[T any] struct {
	Items   []T
	Count   int64
	Request PageRequest
}
