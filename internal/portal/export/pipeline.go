package export

import (
	"archive/zip"
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/portal/internal/clock"
	"github.com/smallbiznis/portal/internal/config"
	"github.com/smallbiznis/portal/internal/i18n"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type PipelineParam struct {
	fx.In

	Log        *zap.Logger
	Cfg        config.Config
	Pdf        PdfRenderer
	EInvoice   EInvoiceRenderer
	Clients    ClientSettings
	Files      TempFileStore
	Translator *i18n.Translator
	Clock      clock.Clock
}

// Pipeline turns a materialized selection into a download artifact.
type Pipeline struct {
	log        *zap.Logger
	cfg        config.ExportConfig
	pdf        PdfRenderer
	einvoice   EInvoiceRenderer
	clients    ClientSettings
	files      TempFileStore
	translator *i18n.Translator
	clock      clock.Clock
}

func NewPipeline(p PipelineParam) *Pipeline {
	return &Pipeline{
		log:        p.Log.Named("portal.export"),
		cfg:        p.Cfg.Export,
		pdf:        p.Pdf,
		einvoice:   p.EInvoice,
		clients:    p.Clients,
		files:      p.Files,
		translator: p.Translator,
		clock:      p.Clock,
	}
}

// Export produces the artifact for the given invoices, in the given order.
// Exactly one invoice streams a single PDF from memory with no temp file;
// more than one builds a zip archive on disk. Rendering failures surface as
// ErrExportFailed after the partial archive has been cleaned up.
func (p *Pipeline) Export(ctx context.Context, locale string, invoices []invoicedomain.Invoice) (*Result, error) {
	if len(invoices) == 0 {
		exportsTotal.WithLabelValues(resultEmpty).Inc()
		return nil, ErrEmptySelection
	}
	if p.cfg.MaxSelection > 0 && len(invoices) > p.cfg.MaxSelection {
		exportsTotal.WithLabelValues(resultRejected).Inc()
		return nil, ErrSelectionTooLarge
	}

	// Wall-clock budget proportional to selection size.
	budget := time.Duration(p.cfg.BaseTimeoutSeconds+p.cfg.PerInvoiceTimeoutSeconds*len(invoices)) * time.Second
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	if len(invoices) == 1 {
		result, err := p.exportSingle(ctx, invoices[0])
		if err != nil {
			exportsTotal.WithLabelValues(resultFailure).Inc()
			return nil, err
		}
		exportsTotal.WithLabelValues(resultSuccess).Inc()
		return result, nil
	}

	result, err := p.buildArchive(ctx, locale, invoices)
	if err != nil {
		exportsTotal.WithLabelValues(resultFailure).Inc()
		return nil, err
	}
	exportsTotal.WithLabelValues(resultSuccess).Inc()
	return result, nil
}

func (p *Pipeline) exportSingle(ctx context.Context, invoice invoicedomain.Invoice) (*Result, error) {
	content, err := p.pdf.Render(ctx, invoice)
	if err != nil {
		p.log.Error("render pdf", zap.String("invoice", invoice.HashedID), zap.Error(err))
		return nil, ErrExportFailed
	}
	return &Result{
		FileName:    invoice.FileName(),
		ContentType: "application/pdf",
		Content:     content,
		log:         p.log,
	}, nil
}

func (p *Pipeline) buildArchive(ctx context.Context, locale string, invoices []invoicedomain.Invoice) (result *Result, err error) {
	tmp, err := p.files.Create("portal-invoices-*.zip")
	if err != nil {
		p.log.Error("create temp archive", zap.Error(err))
		return nil, ErrExportFailed
	}
	path := tmp.Name()

	archive := zip.NewWriter(tmp)
	defer func() {
		// The partial archive is always closed and its temp file removed
		// when the build does not complete, no matter where it failed.
		if err != nil {
			_ = archive.Close()
			_ = tmp.Close()
			if removeErr := p.files.Remove(path); removeErr != nil {
				p.log.Warn("remove partial archive", zap.String("path", path), zap.Error(removeErr))
			}
		}
	}()

	for _, invoice := range invoices {
		if ctxErr := ctx.Err(); ctxErr != nil {
			p.log.Error("export budget exceeded", zap.Int("invoices", len(invoices)), zap.Error(ctxErr))
			return nil, ErrExportFailed
		}
		if err = p.addInvoice(ctx, archive, invoice); err != nil {
			return nil, err
		}
	}

	if err = archive.Close(); err != nil {
		p.log.Error("close archive", zap.Error(err))
		return nil, ErrExportFailed
	}
	if err = tmp.Close(); err != nil {
		p.log.Error("flush archive", zap.Error(err))
		return nil, ErrExportFailed
	}

	label := strings.ReplaceAll(p.translator.T(locale, i18n.KeyInvoices), " ", "_")
	return &Result{
		FileName:    p.clock.Now().Format("2006-01-02") + "_" + label + ".zip",
		ContentType: "application/zip",
		Path:        path,
		remove:      func() error { return p.files.Remove(path) },
		log:         p.log,
	}, nil
}

func (p *Pipeline) addInvoice(ctx context.Context, archive *zip.Writer, invoice invoicedomain.Invoice) error {
	enabled, err := p.clients.EInvoiceEnabled(ctx, invoice.ClientID)
	if err != nil {
		p.log.Error("resolve e-invoice setting", zap.String("invoice", invoice.HashedID), zap.Error(err))
		return ErrExportFailed
	}
	if enabled {
		document, err := p.einvoice.Render(ctx, invoice)
		if err != nil {
			p.log.Error("render e-invoice", zap.String("invoice", invoice.HashedID), zap.Error(err))
			return ErrExportFailed
		}
		if err := p.addEntry(archive, invoice.FileNameWithExt("xml"), document); err != nil {
			return err
		}
		archiveEntriesTotal.WithLabelValues(entryXML).Inc()
	}

	content, err := p.pdf.RenderRaw(ctx, invoice)
	if err != nil {
		p.log.Error("render pdf", zap.String("invoice", invoice.HashedID), zap.Error(err))
		return ErrExportFailed
	}
	if err := p.addEntry(archive, invoice.FileName(), content); err != nil {
		return err
	}
	archiveEntriesTotal.WithLabelValues(entryPDF).Inc()
	return nil
}

func (p *Pipeline) addEntry(archive *zip.Writer, name string, content []byte) error {
	entry, err := archive.Create(name)
	if err != nil {
		p.log.Error("create archive entry", zap.String("entry", name), zap.Error(err))
		return ErrExportFailed
	}
	if _, err := entry.Write(content); err != nil {
		p.log.Error("write archive entry", zap.String("entry", name), zap.Error(err))
		return ErrExportFailed
	}
	return nil
}
