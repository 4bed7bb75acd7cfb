package service

import (
	"context"

	"github.com/smallbiznis/portal/internal/clientcontext"
	companydomain "github.com/smallbiznis/portal/internal/company/domain"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	portaldomain "github.com/smallbiznis/portal/internal/portal/domain"
	"github.com/smallbiznis/portal/internal/portal/export"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log       *zap.Logger
	Invoices  invoicedomain.Service
	Companies companydomain.Service
	Store     portaldomain.Store
	Pipeline  *export.Pipeline
}

type Service struct {
	log       *zap.Logger
	invoices  invoicedomain.Service
	companies companydomain.Service
	store     portaldomain.Store
	pipeline  *export.Pipeline
}

func NewService(p ServiceParam) portaldomain.Service {
	return &Service{
		log:       p.Log.Named("portal.service"),
		invoices:  p.Invoices,
		companies: p.Companies,
		store:     p.Store,
		pipeline:  p.Pipeline,
	}
}

// View applies the listing query, then reconciles the selection against the
// freshly computed page. Recompute-then-reconcile is a single state update;
// the selection is never validated against a stale page.
func (s *Service) View(ctx context.Context, query invoicedomain.ListingQuery) (portaldomain.ViewResponse, error) {
	identity, state, err := s.load(ctx)
	if err != nil {
		return portaldomain.ViewResponse{}, err
	}

	if err := query.Validate(); err != nil {
		return portaldomain.ViewResponse{}, err
	}
	query = query.Normalize()

	page, err := s.invoices.List(ctx, query)
	if err != nil {
		return portaldomain.ViewResponse{}, err
	}

	state.Query = query
	state.Selection.Reconcile(page.PageIDs())
	if err := s.store.Put(ctx, identity.SessionKey, state); err != nil {
		return portaldomain.ViewResponse{}, err
	}

	return portaldomain.ViewResponse{
		ListInvoicesResponse: page,
		Selection:            state.Selection,
		Mode:                 state.Mode,
	}, nil
}

// SetSelection replaces the selection with the given IDs, constrained to the
// invoices actually visible on the current page.
func (s *Service) SetSelection(ctx context.Context, ids []string) (portaldomain.ViewResponse, error) {
	identity, state, err := s.load(ctx)
	if err != nil {
		return portaldomain.ViewResponse{}, err
	}

	page, err := s.invoices.List(ctx, state.Query)
	if err != nil {
		return portaldomain.ViewResponse{}, err
	}

	state.Selection.Set(ids)
	state.Selection.Reconcile(page.PageIDs())
	if err := s.store.Put(ctx, identity.SessionKey, state); err != nil {
		return portaldomain.ViewResponse{}, err
	}

	return portaldomain.ViewResponse{
		ListInvoicesResponse: page,
		Selection:            state.Selection,
		Mode:                 state.Mode,
	}, nil
}

// ToggleSelectAll selects the whole current page or clears the selection.
func (s *Service) ToggleSelectAll(ctx context.Context, selected bool) (portaldomain.ViewResponse, error) {
	identity, state, err := s.load(ctx)
	if err != nil {
		return portaldomain.ViewResponse{}, err
	}

	page, err := s.invoices.List(ctx, state.Query)
	if err != nil {
		return portaldomain.ViewResponse{}, err
	}

	state.Selection.ToggleSelectAll(page.PageIDs(), selected)
	if err := s.store.Put(ctx, identity.SessionKey, state); err != nil {
		return portaldomain.ViewResponse{}, err
	}

	return portaldomain.ViewResponse{
		ListInvoicesResponse: page,
		Selection:            state.Selection,
		Mode:                 state.Mode,
	}, nil
}

// StartDownload guards the download action. On an empty selection the mode
// does not transition; the caller gets a recoverable no_items_selected error.
func (s *Service) StartDownload(ctx context.Context) (portaldomain.SessionState, error) {
	return s.startAction(ctx, portaldomain.ModeDownloading)
}

// StartPayment mirrors StartDownload; payment handling itself is owned by an
// external collaborator.
func (s *Service) StartPayment(ctx context.Context) (portaldomain.SessionState, error) {
	return s.startAction(ctx, portaldomain.ModePayment)
}

func (s *Service) startAction(ctx context.Context, mode portaldomain.Mode) (portaldomain.SessionState, error) {
	identity, state, err := s.load(ctx)
	if err != nil {
		return portaldomain.SessionState{}, err
	}

	if err := s.requireInvoicesModule(ctx, identity); err != nil {
		return portaldomain.SessionState{}, err
	}

	selected, err := s.materializeSelection(ctx, state)
	if err != nil {
		return portaldomain.SessionState{}, err
	}
	if len(selected) == 0 {
		return portaldomain.SessionState{}, portaldomain.ErrNoItemsSelected
	}

	state.Mode = mode
	if err := s.store.Put(ctx, identity.SessionKey, state); err != nil {
		return portaldomain.SessionState{}, err
	}
	return state, nil
}

// Download resets the mode to table before invoking the pipeline, so a page
// re-render never shows a stuck downloading state regardless of how long the
// export takes.
func (s *Service) Download(ctx context.Context) (*export.Result, error) {
	identity, state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	state.Mode = portaldomain.ModeTable
	if err := s.store.Put(ctx, identity.SessionKey, state); err != nil {
		return nil, err
	}

	selected, err := s.materializeSelection(ctx, state)
	if err != nil {
		return nil, err
	}

	return s.pipeline.Export(ctx, identity.Locale, selected)
}

func (s *Service) load(ctx context.Context) (clientcontext.Identity, portaldomain.SessionState, error) {
	identity, ok := clientcontext.FromContext(ctx)
	if !ok {
		return clientcontext.Identity{}, portaldomain.SessionState{}, invoicedomain.ErrInvalidClient
	}

	state, found, err := s.store.Get(ctx, identity.SessionKey)
	if err != nil {
		return clientcontext.Identity{}, portaldomain.SessionState{}, err
	}
	if !found {
		state = portaldomain.NewSessionState()
	}
	return identity, state, nil
}

func (s *Service) requireInvoicesModule(ctx context.Context, identity clientcontext.Identity) error {
	enabled, err := s.companies.ModuleEnabled(ctx, identity.CompanyID, companydomain.ModuleInvoices)
	if err != nil {
		return err
	}
	if !enabled {
		return portaldomain.ErrModuleDisabled
	}
	return nil
}

// materializeSelection resolves the selection against the current page, in
// page order. Selected IDs no longer visible under the current listing state
// resolve to nothing.
func (s *Service) materializeSelection(ctx context.Context, state portaldomain.SessionState) ([]invoicedomain.Invoice, error) {
	page, err := s.invoices.List(ctx, state.Query)
	if err != nil {
		return nil, err
	}

	selected := make([]invoicedomain.Invoice, 0, state.Selection.Count())
	for _, invoice := range page.Invoices {
		if state.Selection.Contains(invoice.HashedID) {
			selected = append(selected, invoice)
		}
	}
	return selected, nil
}
