package server

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
)

func listingContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/portal/invoices?"+rawQuery, nil)
	return c
}

func TestParseListingQueryDefaults(t *testing.T) {
	q, err := parseListingQuery(listingContext(t, ""))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if q.SortField != "date" || q.SortAsc || q.Page != 1 || q.PageSize != invoicedomain.DefaultPageSize {
		t.Fatalf("unexpected defaults %+v", q)
	}
	if len(q.Statuses) != 0 {
		t.Fatalf("expected no filters, got %v", q.Statuses)
	}
}

func TestParseListingQueryStatuses(t *testing.T) {
	q, err := parseListingQuery(listingContext(t, "status=paid,overdue&status=Unpaid"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []invoicedomain.StatusFilter{
		invoicedomain.StatusFilterPaid,
		invoicedomain.StatusFilterOverdue,
		invoicedomain.StatusFilterUnpaid,
	}
	if len(q.Statuses) != len(want) {
		t.Fatalf("expected %v, got %v", want, q.Statuses)
	}
	for i, filter := range want {
		if q.Statuses[i] != filter {
			t.Fatalf("expected %v, got %v", want, q.Statuses)
		}
	}
}

func TestParseListingQueryRejectsUnknownStatus(t *testing.T) {
	if _, err := parseListingQuery(listingContext(t, "status=archived")); err != invoicedomain.ErrInvalidStatusFilter {
		t.Fatalf("expected ErrInvalidStatusFilter, got %v", err)
	}
}

func TestParseListingQuerySortAndPage(t *testing.T) {
	q, err := parseListingQuery(listingContext(t, "sort_field=amount&sort_asc=true&page=3&page_size=25"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if q.SortField != "amount" || !q.SortAsc || q.Page != 3 || q.PageSize != 25 {
		t.Fatalf("unexpected query %+v", q)
	}
}

func TestParseListingQueryRejectsBadNumbers(t *testing.T) {
	if _, err := parseListingQuery(listingContext(t, "page=0")); err == nil {
		t.Fatal("expected error for page=0")
	}
	if _, err := parseListingQuery(listingContext(t, "page=abc")); err == nil {
		t.Fatal("expected error for non-numeric page")
	}
	if _, err := parseListingQuery(listingContext(t, "sort_asc=maybe")); err == nil {
		t.Fatal("expected error for invalid bool")
	}
}
