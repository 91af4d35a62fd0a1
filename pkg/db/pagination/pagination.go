// Package pagination implements page-number pagination over gorm queries.
//
// Pages are 1-indexed at the API surface; out-of-range values are clamped
// rather than rejected.
package pagination

import "gorm.io/gorm"

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 250
)

type Pagination struct {
	Page int `form:"page,default=1"`
	Size int `form:"size,default=10"`
}

// Normalize clamps page and size into valid bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset converts the 1-indexed page into a row offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Size
}

// Apply adds offset/limit clauses for the page to the statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	return stmt.Offset(p.Offset()).Limit(p.Size)
}

// TotalPages returns ceil(totalItems / size); zero items means zero pages.
func TotalPages(totalItems int64, size int) int {
	if totalItems <= 0 || size <= 0 {
		return 0
	}
	return int((totalItems + int64(size) - 1) / int64(size))
}
