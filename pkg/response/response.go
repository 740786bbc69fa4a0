package response

import (
	"time"

	"backend/pkg/pagination"
)

// Body is the standard API response envelope.
type Body struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Errors     string      `json:"errors,omitempty"`
	Timestamp  string      `json:"timestamp"`
}

// Pagination carries page metadata alongside a list payload.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// NewPagination derives the full page metadata from the page, limit and total
// row count. totalPages = ceil(totalItems/limit), zero rows means zero pages.
func NewPagination(page, limit int, totalItems int64) *Pagination {
	totalPages := pagination.TotalPages(totalItems, limit)
	return &Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

// Success wraps data in a success envelope.
func Success(message string, data interface{}) Body {
	return Body{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	}
}

// Paginated wraps a page of items plus its pagination metadata.
func Paginated(message string, data interface{}, p *Pagination) Body {
	return Body{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: p,
		Timestamp:  now(),
	}
}

// Error builds a failure envelope with a client-safe message.
func Error(message string) Body {
	return Body{
		Success:   false,
		Message:   message,
		Timestamp: now(),
	}
}

// ErrorWithDetails attaches field-level validation detail to a failure envelope.
func ErrorWithDetails(message, errors string) Body {
	return Body{
		Success:   false,
		Message:   message,
		Errors:    errors,
		Timestamp: now(),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
