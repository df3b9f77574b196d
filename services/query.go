package services

import (
	"fmt"
	"strings"

	"legaldocs_api_go/models"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize is the page size used when none is requested
	DefaultPageSize = 20
	// MaxPageSize caps the requested page size
	MaxPageSize = 100
)

// ListOptions carries the filter/search/sort/pagination parameters for a
// collection listing.
type ListOptions struct {
	Filters  map[string]string
	Search   string
	OrderBy  string // field name, optionally prefixed with "-" for descending
	Page     int
	PageSize int
}

// querySpec is a per-entity allow-list of filterable, searchable and sortable
// columns. Fields outside the allow-list are rejected, not silently ignored.
type querySpec struct {
	filterable   map[string]string // request field -> column
	searchable   []string          // columns matched by substring OR
	sortable     map[string]string // request field -> column
	defaultOrder string
}

var clientQuerySpec = querySpec{
	filterable: map[string]string{
		"is_active": "is_active",
	},
	searchable: []string{"search_name", "search_email", "identification_number"},
	sortable: map[string]string{
		"full_name":  "full_name",
		"created_at": "created_at",
	},
	defaultOrder: "created_at DESC",
}

var caseQuerySpec = querySpec{
	filterable: map[string]string{
		"status":    "status",
		"case_type": "case_type",
		"priority":  "priority",
		"client_id": "client_id",
	},
	searchable: []string{"case_number", "search_title"},
	sortable: map[string]string{
		"start_date": "start_date",
		"priority":   "priority",
		"created_at": "created_at",
	},
	defaultOrder: "start_date DESC",
}

var documentQuerySpec = querySpec{
	filterable: map[string]string{
		"case_id":         "case_id",
		"document_type":   "document_type",
		"is_confidential": "is_confidential",
	},
	searchable: []string{"search_title", "search_description"},
	sortable: map[string]string{
		"uploaded_at": "uploaded_at",
		"title":       "title",
	},
	defaultOrder: "uploaded_at DESC",
}

// applyListOptions narrows a query according to the entity's allow-lists and
// returns it ordered but not yet paginated (the caller counts first).
func applyListOptions(db *gorm.DB, spec querySpec, opts ListOptions) (*gorm.DB, error) {
	query := db

	for field, value := range opts.Filters {
		column, ok := spec.filterable[field]
		if !ok {
			return nil, &ValidationError{Field: field, Message: "field is not filterable"}
		}
		// Boolean literals must be bound as booleans; SQLite stores them
		// numerically and the string "true" would never match.
		var arg interface{} = value
		if value == "true" {
			arg = true
		} else if value == "false" {
			arg = false
		}
		query = query.Where(fmt.Sprintf("%s = ?", column), arg)
	}

	if search := strings.TrimSpace(opts.Search); search != "" {
		pattern := "%" + models.NormalizeSearchTerm(search) + "%"
		cond := db.Session(&gorm.Session{NewDB: true}).
			Where(fmt.Sprintf("%s LIKE ?", spec.searchable[0]), pattern)
		for _, column := range spec.searchable[1:] {
			cond = cond.Or(fmt.Sprintf("%s LIKE ?", column), pattern)
		}
		query = query.Where(cond)
	}

	order := spec.defaultOrder
	if opts.OrderBy != "" {
		field := opts.OrderBy
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			field = strings.TrimPrefix(field, "-")
			direction = "DESC"
		}
		column, ok := spec.sortable[field]
		if !ok {
			return nil, &ValidationError{Field: field, Message: "field is not sortable"}
		}
		order = column + " " + direction
	}
	query = query.Order(order)

	return query, nil
}

// paginate normalizes page/page-size and applies limit/offset.
func paginate(query *gorm.DB, opts ListOptions) (*gorm.DB, int, int) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize), page, pageSize
}
