// Package pdf renders invoice PDFs with maroto.
package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/smallbiznis/portal/internal/portal/export"
)

const dateLayout = "2006-01-02"

type Renderer struct{}

func NewRenderer() export.PdfRenderer {
	return &Renderer{}
}

// Render produces the final document for a direct download.
func (r *Renderer) Render(ctx context.Context, invoice invoicedomain.Invoice) ([]byte, error) {
	return r.generate(ctx, invoice, true)
}

// RenderRaw produces the raw variant used for archive entries. The archive
// compresses entries itself, so the raw document skips page decoration.
func (r *Renderer) RenderRaw(ctx context.Context, invoice invoicedomain.Invoice) ([]byte, error) {
	return r.generate(ctx, invoice, false)
}

func (r *Renderer) generate(ctx context.Context, invoice invoicedomain.Invoice, withPageNumbers bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := config.NewBuilder()
	if withPageNumbers {
		builder = builder.WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		})
	}

	m := maroto.New(builder.Build())

	m.AddRow(12,
		text.NewCol(12, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New("Invoice number: "+invoice.Number, props.Text{Top: 0}),
			text.New("Date: "+invoice.Date.Format(dateLayout), props.Text{Top: 5}),
			text.New("Due date: "+formatOptionalDate(invoice.DueDate), props.Text{Top: 10}),
			text.New("Status: "+string(invoice.Status), props.Text{Top: 15}),
		),
		col.New(6).Add(
			text.New("Amount: "+formatAmount(invoice.Amount), props.Text{Top: 0, Align: align.Right}),
			text.New("Balance due: "+formatAmount(invoice.Balance), props.Text{Top: 5, Align: align.Right, Style: fontstyle.Bold}),
		),
	)

	document, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return document.GetBytes(), nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}
