// Package domain defines the portal session state machine and its contracts.
package domain

import (
	"context"
	"errors"

	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/smallbiznis/portal/internal/portal/export"
	"github.com/smallbiznis/portal/internal/portal/selection"
)

// Mode is the portal listing mode. Both actions flow back to table:
// table → downloading → table and table → payment → table.
type Mode string

const (
	ModeTable       Mode = "table"
	ModeDownloading Mode = "downloading"
	ModePayment     Mode = "payment"
)

// SessionState is the per-session portal state: the listing parameters, the
// cross-page selection and the current mode. It lives in the session store,
// never in process-wide globals.
type SessionState struct {
	Query     invoicedomain.ListingQuery `json:"query"`
	Selection selection.State            `json:"selection"`
	Mode      Mode                       `json:"mode"`
}

// NewSessionState returns the initial state for a fresh session.
func NewSessionState() SessionState {
	return SessionState{
		Query: invoicedomain.DefaultListingQuery(),
		Mode:  ModeTable,
	}
}

// Store persists session state keyed by the portal session.
type Store interface {
	Get(ctx context.Context, key string) (SessionState, bool, error)
	Put(ctx context.Context, key string, state SessionState) error
	Delete(ctx context.Context, key string) error
}

// ViewResponse is the full portal view: the current page, the reconciled
// selection and the mode.
type ViewResponse struct {
	invoicedomain.ListInvoicesResponse
	Selection selection.State `json:"selection"`
	Mode      Mode            `json:"mode"`
}

// Service orchestrates listing, selection and the export/payment actions for
// the authenticated contact. The session key and client scope come from the
// request context.
type Service interface {
	// View recomputes the page for the given listing query and then
	// reconciles the selection against it, as one atomic state update.
	View(ctx context.Context, query invoicedomain.ListingQuery) (ViewResponse, error)

	// SetSelection replaces the selection with an explicit ID set.
	SetSelection(ctx context.Context, ids []string) (ViewResponse, error)

	// ToggleSelectAll selects or clears the whole current page.
	ToggleSelectAll(ctx context.Context, selected bool) (ViewResponse, error)

	// StartDownload guards the download action and moves the session to
	// downloading mode.
	StartDownload(ctx context.Context) (SessionState, error)

	// Download resets the mode to table and runs the export pipeline over
	// the materialized selection.
	Download(ctx context.Context) (*export.Result, error)

	// StartPayment guards the payment action and moves the session to
	// payment mode. Payment handling itself is owned externally.
	StartPayment(ctx context.Context) (SessionState, error)
}

var (
	ErrNoItemsSelected = errors.New("no_items_selected")
	ErrModuleDisabled  = errors.New("module_disabled")
)
