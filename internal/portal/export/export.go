// Package export bundles selected invoices into a downloadable artifact:
// a single streamed PDF, or a zip archive built on a temp file when more than
// one invoice is selected.
package export

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"go.uber.org/zap"
)

var (
	ErrEmptySelection    = errors.New("empty_selection")
	ErrSelectionTooLarge = errors.New("selection_too_large")
	ErrExportFailed      = errors.New("export_failed")
)

// PdfRenderer renders invoice PDFs. Render produces the final document for a
// direct download; RenderRaw produces the uncompressed variant used for
// archive entries.
type PdfRenderer interface {
	Render(ctx context.Context, invoice invoicedomain.Invoice) ([]byte, error)
	RenderRaw(ctx context.Context, invoice invoicedomain.Invoice) ([]byte, error)
}

// EInvoiceRenderer renders the structured e-invoice document.
type EInvoiceRenderer interface {
	Render(ctx context.Context, invoice invoicedomain.Invoice) ([]byte, error)
}

// ClientSettings resolves per-client export configuration.
type ClientSettings interface {
	EInvoiceEnabled(ctx context.Context, clientID snowflake.ID) (bool, error)
}

// TempFileStore creates and removes the transient archive files.
type TempFileStore interface {
	Create(pattern string) (*os.File, error)
	Remove(name string) error
}

// Result is one export artifact. Exactly one of Content and Path is set:
// Content for the in-memory single-PDF stream, Path for the on-disk archive.
// Callers must invoke Cleanup after the response is fully sent, on every exit
// path including client disconnects.
type Result struct {
	FileName    string
	ContentType string
	Content     []byte
	Path        string

	once   sync.Once
	remove func() error
	log    *zap.Logger
}

// IsArchive reports whether the artifact is an on-disk archive.
func (r *Result) IsArchive() bool {
	return r.Path != ""
}

// Cleanup removes the temp archive file, if any. Best effort and idempotent;
// a failed removal never masks the export outcome.
func (r *Result) Cleanup() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		if r.remove == nil {
			return
		}
		if err := r.remove(); err != nil && !errors.Is(err, os.ErrNotExist) {
			if r.log != nil {
				r.log.Warn("remove temp archive", zap.String("path", r.Path), zap.Error(err))
			}
		}
	})
}
