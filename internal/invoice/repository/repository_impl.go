// Package repository implements the portal invoice listing query.
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/smallbiznis/portal/pkg/db/option"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of the client's invoices plus the total row count of
// the filtered set. The scope exclusions (own client only, no proforma, no
// draft or cancelled, business-deleted hidden, archive-trashed listable) are
// unconditional and independent of the active filters.
func (r *Repository) List(ctx context.Context, companyID, clientID snowflake.ID, q domain.ListingQuery, now time.Time) ([]domain.Invoice, int64, error) {
	var total int64
	if err := r.scoped(ctx, companyID, clientID, q, now).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stmt := r.scoped(ctx, companyID, clientID, q, now)
	opts := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{
			Allow:     domain.SortableFields,
			Field:     q.SortField,
			Desc:      !q.SortAsc,
			Secondary: "id",
		}),
		option.WithPage(q.Page, q.PageSize),
	}
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var invoices []domain.Invoice
	if err := stmt.Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *Repository) scoped(ctx context.Context, companyID, clientID snowflake.ID, q domain.ListingQuery, now time.Time) *gorm.DB {
	// Unscoped keeps archive-trashed rows listable; the is_deleted business
	// flag is a separate, unconditional exclusion.
	stmt := option.WithUnscoped().Apply(r.db.WithContext(ctx).Model(&domain.Invoice{})).
		Where("company_id = ?", companyID).
		Where("client_id = ?", clientID).
		Where("is_deleted = ?", false).
		Where("is_proforma = ?", false).
		Where("status <> ?", domain.InvoiceStatusDraft).
		Where("status <> ?", domain.InvoiceStatusCancelled)

	if predicate, args, ok := statusPredicate(q, now); ok {
		stmt = stmt.Where(predicate, args...)
	}
	return stmt
}

// statusPredicate composes the active filters into one OR group. paid and
// unpaid contribute a plain status membership test; overdue contributes its
// status set narrowed by the due-date condition, so combining paid with
// overdue never date-filters paid results.
func statusPredicate(q domain.ListingQuery, now time.Time) (string, []any, bool) {
	var ors []string
	var args []any

	var plain []domain.InvoiceStatus
	seen := make(map[domain.InvoiceStatus]bool)
	appendStatuses := func(statuses []domain.InvoiceStatus) {
		for _, status := range statuses {
			if !seen[status] {
				seen[status] = true
				plain = append(plain, status)
			}
		}
	}
	if q.HasStatus(domain.StatusFilterPaid) {
		appendStatuses(domain.StatusFilterPaid.Expand())
	}
	if q.HasStatus(domain.StatusFilterUnpaid) {
		appendStatuses(domain.StatusFilterUnpaid.Expand())
	}
	if len(plain) > 0 {
		ors = append(ors, "status IN ?")
		args = append(args, plain)
	}

	if q.HasStatus(domain.StatusFilterOverdue) {
		ors = append(ors, "(status IN ? AND (due_date < ? OR partial_due_date < ?))")
		args = append(args, domain.StatusFilterOverdue.Expand(), now, now)
	}

	if len(ors) == 0 {
		return "", nil, false
	}
	return "(" + strings.Join(ors, " OR ") + ")", args, true
}
