package domain

type PaginationParams struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"limit" query:"limit"`
}

type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"limit"`
	TotalItems int64 `json:"total"`
	TotalPages int   `json:"pages"`
}

func NewPaginatedResponse[T any](data []T, page, pageSize int, totalItems int64) PaginatedResponse[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	if data == nil {
		data = []T{}
	}

	return PaginatedResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

func DefaultPagination() PaginationParams {
	return PaginationParams{
		Page:     1,
		PageSize: 10,
	}
}

// Validate rejects non-positive values instead of clamping them.
func (p PaginationParams) Validate() error {
	if p.Page < 1 || p.PageSize < 1 {
		return NewValidationError("Invalid pagination parameters")
	}
	return nil
}

func (p *PaginationParams) Clamp(max int) {
	if p.PageSize > max {
		p.PageSize = max
	}
}

func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
