package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/portal/pkg/db/pagination"
)

// StatusFilter is one of the portal's high-level status filters. Each filter
// expands to a set of invoice statuses; overdue additionally narrows by due
// dates.
type StatusFilter string

const (
	StatusFilterPaid    StatusFilter = "paid"
	StatusFilterUnpaid  StatusFilter = "unpaid"
	StatusFilterOverdue StatusFilter = "overdue"
)

// ParseStatusFilter validates a caller-supplied filter name.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	switch StatusFilter(raw) {
	case StatusFilterPaid, StatusFilterUnpaid, StatusFilterOverdue:
		return StatusFilter(raw), nil
	default:
		return "", ErrInvalidStatusFilter
	}
}

// Expand returns the invoice statuses the filter covers. The overdue date
// condition is not part of the expansion; it is applied by the repository.
func (f StatusFilter) Expand() []InvoiceStatus {
	switch f {
	case StatusFilterPaid:
		return []InvoiceStatus{InvoiceStatusPaid}
	case StatusFilterUnpaid, StatusFilterOverdue:
		return []InvoiceStatus{InvoiceStatusSent, InvoiceStatusPartial}
	default:
		return nil
	}
}

// SortableFields is the allow-list of invoice columns a caller may sort by.
// Caller input outside this list is rejected before any query executes.
var SortableFields = map[string]bool{
	"date":     true,
	"due_date": true,
	"number":   true,
	"amount":   true,
	"balance":  true,
	"status":   true,
}

const (
	DefaultSortField = "date"
	DefaultPageSize  = 10
	MaxPageSize      = 100
)

// ListingQuery is the full listing state for one page request.
type ListingQuery struct {
	Statuses  []StatusFilter `json:"statuses"`
	SortField string         `json:"sort_field"`
	SortAsc   bool           `json:"sort_asc"`
	pagination.Pagination
}

// DefaultListingQuery returns the initial portal listing state: most recent
// invoices first.
func DefaultListingQuery() ListingQuery {
	return ListingQuery{
		SortField:  DefaultSortField,
		SortAsc:    false,
		Pagination: pagination.Pagination{Page: 1, PageSize: DefaultPageSize},
	}
}

// Normalize fills defaults without touching validated fields.
func (q ListingQuery) Normalize() ListingQuery {
	if q.SortField == "" {
		q.SortField = DefaultSortField
	}
	q.Pagination = q.Pagination.Normalize(DefaultPageSize, MaxPageSize)
	return q
}

// Validate rejects malformed queries before they reach the query layer.
func (q ListingQuery) Validate() error {
	if q.SortField != "" && !SortableFields[q.SortField] {
		return ErrInvalidSortField
	}
	for _, status := range q.Statuses {
		if _, err := ParseStatusFilter(string(status)); err != nil {
			return err
		}
	}
	return nil
}

// HasStatus reports whether the filter is active.
func (q ListingQuery) HasStatus(filter StatusFilter) bool {
	for _, status := range q.Statuses {
		if status == filter {
			return true
		}
	}
	return false
}

// ListInvoicesResponse is one page of the client's invoices.
type ListInvoicesResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// PageIDs returns the hashed IDs present on the page, in page order.
func (r ListInvoicesResponse) PageIDs() []string {
	ids := make([]string, 0, len(r.Invoices))
	for _, invoice := range r.Invoices {
		ids = append(ids, invoice.HashedID)
	}
	return ids
}

// Service lists invoices scoped to the authenticated client.
type Service interface {
	List(ctx context.Context, query ListingQuery) (ListInvoicesResponse, error)
}

var (
	ErrInvalidSortField    = errors.New("invalid_sort_field")
	ErrInvalidStatusFilter = errors.New("invalid_status_filter")
	ErrInvalidClient       = errors.New("invalid_client")
)
