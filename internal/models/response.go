// ===============================
// internal/models/response.go - API Envelope and Pagination
// ===============================

package models

// APIResponse is the uniform response envelope.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// PageParams are the normalized paging inputs. Page is 1-based.
type PageParams struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NormalizePage clamps raw paging inputs to sane values.
func NormalizePage(page, limit, defaultLimit, maxLimit int) PageParams {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return PageParams{Page: page, Limit: limit}
}

// TotalPages computes the page count for a total row count.
func TotalPages(totalItems, limit int) int {
	if limit < 1 || totalItems < 1 {
		return 0
	}
	return (totalItems + limit - 1) / limit
}

// PagedList is the shared collection payload shape.
type PagedList struct {
	Items       interface{} `json:"items"`
	TotalItems  int         `json:"totalItems"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}

// NewPagedList assembles a collection payload. Items must never be nil
// so empty pages serialize as [] rather than null.
func NewPagedList(items interface{}, totalItems int, p PageParams) PagedList {
	return PagedList{
		Items:       items,
		TotalItems:  totalItems,
		TotalPages:  TotalPages(totalItems, p.Limit),
		CurrentPage: p.Page,
	}
}
