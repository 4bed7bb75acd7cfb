package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/portal/internal/clientcontext"
	"github.com/smallbiznis/portal/internal/clock"
	companydomain "github.com/smallbiznis/portal/internal/company/domain"
	"github.com/smallbiznis/portal/internal/config"
	"github.com/smallbiznis/portal/internal/i18n"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	portaldomain "github.com/smallbiznis/portal/internal/portal/domain"
	"github.com/smallbiznis/portal/internal/portal/export"
	"github.com/smallbiznis/portal/internal/portal/store"
	"go.uber.org/zap"
)

const testSessionKey = "session-1"

type invoicesStub struct {
	pages map[int][]invoicedomain.Invoice
}

func (s *invoicesStub) List(ctx context.Context, q invoicedomain.ListingQuery) (invoicedomain.ListInvoicesResponse, error) {
	page := s.pages[q.Page]
	return invoicedomain.ListInvoicesResponse{Invoices: page}, nil
}

type companiesStub struct {
	modules int64
}

func (s *companiesStub) Get(ctx context.Context, id snowflake.ID) (*companydomain.Company, error) {
	return &companydomain.Company{ID: id, EnabledModules: s.modules}, nil
}

func (s *companiesStub) ModuleEnabled(ctx context.Context, companyID snowflake.ID, module int64) (bool, error) {
	return s.modules&module != 0, nil
}

type stubPdf struct{}

func (stubPdf) Render(ctx context.Context, invoice invoicedomain.Invoice) ([]byte, error) {
	return []byte("%PDF"), nil
}

func (stubPdf) RenderRaw(ctx context.Context, invoice invoicedomain.Invoice) ([]byte, error) {
	return []byte("%PDF"), nil
}

type stubEInvoice struct{}

func (stubEInvoice) Render(ctx context.Context, invoice invoicedomain.Invoice) ([]byte, error) {
	return []byte("<xml/>"), nil
}

type stubSettings struct{}

func (stubSettings) EInvoiceEnabled(ctx context.Context, clientID snowflake.ID) (bool, error) {
	return false, nil
}

type fixture struct {
	svc   portaldomain.Service
	store portaldomain.Store
}

func invoicePage(numbers ...string) []invoicedomain.Invoice {
	page := make([]invoicedomain.Invoice, 0, len(numbers))
	for i, number := range numbers {
		page = append(page, invoicedomain.Invoice{
			ID:       snowflake.ID(i + 1),
			HashedID: number,
			Number:   number,
			Status:   invoicedomain.InvoiceStatusSent,
		})
	}
	return page
}

func newFixture(t *testing.T, invoices *invoicesStub, companies *companiesStub) fixture {
	t.Helper()

	clk := clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	sessions := store.NewMemory(time.Hour, clk)

	pipeline := export.NewPipeline(export.PipelineParam{
		Log:        zap.NewNop(),
		Cfg:        config.Config{Export: config.ExportConfig{TempDir: t.TempDir(), MaxSelection: 100}},
		Pdf:        stubPdf{},
		EInvoice:   stubEInvoice{},
		Clients:    stubSettings{},
		Files:      export.NewTempFileStore(config.Config{Export: config.ExportConfig{TempDir: t.TempDir()}}),
		Translator: i18n.New("en"),
		Clock:      clk,
	})

	svc := NewService(ServiceParam{
		Log:       zap.NewNop(),
		Invoices:  invoices,
		Companies: companies,
		Store:     sessions,
		Pipeline:  pipeline,
	})
	return fixture{svc: svc, store: sessions}
}

func portalCtx() context.Context {
	return clientcontext.WithIdentity(context.Background(), clientcontext.Identity{
		ContactID:  1,
		ClientID:   2,
		CompanyID:  3,
		Locale:     "en",
		SessionKey: testSessionKey,
	})
}

func (f fixture) state(t *testing.T) portaldomain.SessionState {
	t.Helper()

	state, found, err := f.store.Get(context.Background(), testSessionKey)
	if err != nil || !found {
		t.Fatalf("expected stored session state, found=%v err=%v", found, err)
	}
	return state
}

func TestViewReconcilesSelectionAfterPageChange(t *testing.T) {
	invoices := &invoicesStub{pages: map[int][]invoicedomain.Invoice{
		1: invoicePage("a", "b", "c"),
		2: invoicePage("c", "d"),
	}}
	f := newFixture(t, invoices, &companiesStub{modules: companydomain.ModuleInvoices})

	if _, err := f.svc.SetSelection(portalCtx(), []string{"a", "c"}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}

	q := invoicedomain.DefaultListingQuery()
	q.Page = 2
	view, err := f.svc.View(portalCtx(), q)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}

	// Only "c" is visible on page 2; "a" is dropped by the reconcile.
	if view.Selection.Count() != 1 || !view.Selection.Contains("c") {
		t.Fatalf("expected selection [c], got %v", view.Selection.IDs)
	}
	if f.state(t).Query.Page != 2 {
		t.Fatal("expected query persisted with the new page")
	}
}

func TestSetSelectionIgnoresInvisibleIDs(t *testing.T) {
	invoices := &invoicesStub{pages: map[int][]invoicedomain.Invoice{1: invoicePage("a", "b")}}
	f := newFixture(t, invoices, &companiesStub{modules: companydomain.ModuleInvoices})

	view, err := f.svc.SetSelection(portalCtx(), []string{"a", "ghost"})
	if err != nil {
		t.Fatalf("set selection failed: %v", err)
	}
	if view.Selection.Count() != 1 || !view.Selection.Contains("a") {
		t.Fatalf("expected selection [a], got %v", view.Selection.IDs)
	}
}

func TestToggleSelectAll(t *testing.T) {
	invoices := &invoicesStub{pages: map[int][]invoicedomain.Invoice{1: invoicePage("a", "b", "c")}}
	f := newFixture(t, invoices, &companiesStub{modules: companydomain.ModuleInvoices})

	view, err := f.svc.ToggleSelectAll(portalCtx(), true)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !view.Selection.AllSelected || view.Selection.Count() != 3 {
		t.Fatalf("expected full page selected, got %+v", view.Selection)
	}

	view, err = f.svc.ToggleSelectAll(portalCtx(), false)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if view.Selection.Count() != 0 {
		t.Fatalf("expected empty selection, got %+v", view.Selection)
	}
}

func TestStartDownloadEmptySelection(t *testing.T) {
	invoices := &invoicesStub{pages: map[int][]invoicedomain.Invoice{1: invoicePage("a")}}
	f := newFixture(t, invoices, &companiesStub{modules: companydomain.ModuleInvoices})

	if _, err := f.svc.View(portalCtx(), invoicedomain.DefaultListingQuery()); err != nil {
		t.Fatalf("view failed: %v", err)
	}

	_, err := f.svc.StartDownload(portalCtx())
	if !errors.Is(err, portaldomain.ErrNoItemsSelected) {
		t.Fatalf("expected ErrNoItemsSelected, got %v", err)
	}

	// The guard failure must not transition the mode.
	if f.state(t).Mode != portaldomain.ModeTable {
		t.Fatalf("expected mode table, got %s", f.state(t).Mode)
	}
}

func TestStartDownloadTransitionsMode(t *testing.T) {
	invoices := &invoicesStub{pages: map[int][]invoicedomain.Invoice{1: invoicePage("a", "b")}}
	f := newFixture(t, invoices, &companiesStub{modules: companydomain.ModuleInvoices})

	if _, err := f.svc.SetSelection(portalCtx(), []string{"a"}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}

	state, err := f.svc.StartDownload(portalCtx())
	if err != nil {
		t.Fatalf("start download failed: %v", err)
	}
	if state.Mode != portaldomain.ModeDownloading {
		t.Fatalf("expected downloading mode, got %s", state.Mode)
	}
}

func TestStartActionsRequireInvoicesModule(t *testing.T) {
	invoices := &invoicesStub{pages: map[int][]invoicedomain.Invoice{1: invoicePage("a")}}
	f := newFixture(t, invoices, &companiesStub{modules: 0})

	if _, err := f.svc.SetSelection(portalCtx(), []string{"a"}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}

	if _, err := f.svc.StartDownload(portalCtx()); !errors.Is(err, portaldomain.ErrModuleDisabled) {
		t.Fatalf("expected ErrModuleDisabled, got %v", err)
	}
	if _, err := f.svc.StartPayment(portalCtx()); !errors.Is(err, portaldomain.ErrModuleDisabled) {
		t.Fatalf("expected ErrModuleDisabled, got %v", err)
	}
}

func TestStartPaymentTransitionsMode(t *testing.T) {
	invoices := &invoicesStub{pages: map[int][]invoicedomain.Invoice{1: invoicePage("a")}}
	f := newFixture(t, invoices, &companiesStub{modules: companydomain.ModuleInvoices})

	if _, err := f.svc.SetSelection(portalCtx(), []string{"a"}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}

	state, err := f.svc.StartPayment(portalCtx())
	if err != nil {
		t.Fatalf("start payment failed: %v", err)
	}
	if state.Mode != portaldomain.ModePayment {
		t.Fatalf("expected payment mode, got %s", state.Mode)
	}
}

func TestDownloadResetsModeBeforeExport(t *testing.T) {
	invoices := &invoicesStub{pages: map[int][]invoicedomain.Invoice{1: invoicePage("a", "b")}}
	f := newFixture(t, invoices, &companiesStub{modules: companydomain.ModuleInvoices})

	if _, err := f.svc.SetSelection(portalCtx(), []string{"a", "b"}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}
	if _, err := f.svc.StartDownload(portalCtx()); err != nil {
		t.Fatalf("start download failed: %v", err)
	}

	result, err := f.svc.Download(portalCtx())
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	defer result.Cleanup()

	if !result.IsArchive() {
		t.Fatal("expected an archive for two invoices")
	}
	if f.state(t).Mode != portaldomain.ModeTable {
		t.Fatalf("expected mode reset to table, got %s", f.state(t).Mode)
	}
}

func TestDownloadEmptySelection(t *testing.T) {
	invoices := &invoicesStub{pages: map[int][]invoicedomain.Invoice{1: invoicePage("a")}}
	f := newFixture(t, invoices, &companiesStub{modules: companydomain.ModuleInvoices})

	_, err := f.svc.Download(portalCtx())
	if !errors.Is(err, export.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}

	// The failed download still lands the session back in table mode.
	if f.state(t).Mode != portaldomain.ModeTable {
		t.Fatalf("expected mode table, got %s", f.state(t).Mode)
	}
}

func TestRequiresIdentity(t *testing.T) {
	invoices := &invoicesStub{pages: map[int][]invoicedomain.Invoice{}}
	f := newFixture(t, invoices, &companiesStub{modules: companydomain.ModuleInvoices})

	_, err := f.svc.View(context.Background(), invoicedomain.DefaultListingQuery())
	if !errors.Is(err, invoicedomain.ErrInvalidClient) {
		t.Fatalf("expected ErrInvalidClient, got %v", err)
	}
}
