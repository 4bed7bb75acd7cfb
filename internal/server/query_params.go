package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
)

// parseListingQuery builds a ListingQuery from request query params. Values
// are validated by the domain before any query executes; this only shapes
// the input.
func parseListingQuery(c *gin.Context) (invoicedomain.ListingQuery, error) {
	query := invoicedomain.DefaultListingQuery()

	statuses, err := parseStatusFilters(c.QueryArray("status"))
	if err != nil {
		return invoicedomain.ListingQuery{}, err
	}
	query.Statuses = statuses

	if field := strings.TrimSpace(c.Query("sort_field")); field != "" {
		query.SortField = field
	}
	if raw := strings.TrimSpace(c.Query("sort_asc")); raw != "" {
		asc, err := strconv.ParseBool(raw)
		if err != nil {
			return invoicedomain.ListingQuery{}, newValidationError("sort_asc", "invalid_bool", "invalid boolean")
		}
		query.SortAsc = asc
	}
	if page, err := parsePositiveInt(c.Query("page")); err != nil {
		return invoicedomain.ListingQuery{}, newValidationError("page", "invalid_page", "invalid page")
	} else if page > 0 {
		query.Page = page
	}
	if size, err := parsePositiveInt(c.Query("page_size")); err != nil {
		return invoicedomain.ListingQuery{}, newValidationError("page_size", "invalid_page_size", "invalid page size")
	} else if size > 0 {
		query.PageSize = size
	}

	return query, nil
}

// parseStatusFilters accepts repeated params and comma-separated values.
func parseStatusFilters(values []string) ([]invoicedomain.StatusFilter, error) {
	var filters []invoicedomain.StatusFilter
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(strings.ToLower(part))
			if part == "" {
				continue
			}
			filter, err := invoicedomain.ParseStatusFilter(part)
			if err != nil {
				return nil, err
			}
			filters = append(filters, filter)
		}
	}
	return filters, nil
}

func parsePositiveInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return 0, strconv.ErrRange
	}
	return parsed, nil
}
