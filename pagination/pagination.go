// Package pagination turns page/limit/search/sort request parameters into
// bounded, deterministic GORM scopes and wraps list results in the paginated
// envelope.
package pagination

import (
	"fmt"
	"strconv"
	"strings"

	restful "github.com/emicklei/go-restful/v3"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	// AllPages is the sentinel page value meaning "return every matching
	// record unpaginated". It is a deliberate escape hatch, not an error.
	AllPages = -1
)

// Params is the parsed pagination contract. SortBy is matched against a
// per-endpoint whitelist before it reaches SQL.
type Params struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// FromRequest reads page, limit, search, sortBy and sortOrder query
// parameters. Absent or non-numeric page/limit fall back to the defaults;
// negative pages other than the -1 sentinel collapse to page 1.
func FromRequest(req *restful.Request) Params {
	page, err := strconv.Atoi(req.QueryParameter("page"))
	if err != nil {
		page = DefaultPage
	}
	if page < 1 && page != AllPages {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(req.QueryParameter("limit"))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}

	sortOrder := strings.ToLower(req.QueryParameter("sortOrder"))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return Params{
		Page:      page,
		Limit:     limit,
		Search:    req.QueryParameter("search"),
		SortBy:    req.QueryParameter("sortBy"),
		SortOrder: sortOrder,
	}
}

// Offset returns the number of rows to skip. The sentinel skips nothing.
func (p Params) Offset() int {
	if p.Page == AllPages {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Scope applies offset and limit. For the -1 sentinel the limit clause is
// dropped entirely, so the store returns every matching row.
func (p Params) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Page == AllPages {
			return db
		}
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// SearchScope builds a case-insensitive substring filter OR-combined across
// the given columns. Without a search term it is a no-op (match-all).
func (p Params) SearchScope(columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Search == "" || len(columns) == 0 {
			return db
		}
		term := "%" + strings.ToLower(p.Search) + "%"
		clauses := make([]string, 0, len(columns))
		args := make([]interface{}, 0, len(columns))
		for _, col := range columns {
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", col))
			args = append(args, term)
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// SortScope orders by SortBy when it appears in the allowed column set,
// otherwise by creation time descending. The whitelist keeps user input out
// of the ORDER BY clause.
func (p Params) SortScope(allowed map[string]string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := allowed[p.SortBy]
		if !ok {
			return db.Order("created_at DESC")
		}
		direction := "DESC"
		if p.SortOrder == "asc" {
			direction = "ASC"
		}
		return db.Order(column + " " + direction)
	}
}

// Metadata describes one page of results.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// Result is the paginated envelope carried inside the data field of the
// response.
type Result[T any] struct {
	Data     []T      `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// NewResult wraps items in the envelope. For the -1 sentinel the metadata
// reports page -1, a single page, and the total as the effective limit. A
// non-positive limit means "no limiting" and also collapses to one page,
// guarding the totalPages division.
func NewResult[T any](items []T, total int64, p Params) Result[T] {
	if items == nil {
		items = []T{}
	}
	if p.Page == AllPages {
		return Result[T]{
			Data: items,
			Metadata: Metadata{
				Total:      total,
				Page:       AllPages,
				Limit:      total,
				TotalPages: 1,
			},
		}
	}

	limit := int64(p.Limit)
	totalPages := int64(1)
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	} else {
		limit = total
	}

	return Result[T]{
		Data: items,
		Metadata: Metadata{
			Total:      total,
			Page:       p.Page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
}
