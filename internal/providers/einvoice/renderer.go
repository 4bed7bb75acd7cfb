// Package einvoice renders the structured e-invoice document exchanged with
// regulatory networks. The portal only emits it for clients that enabled
// e-invoicing.
package einvoice

import (
	"context"
	"encoding/xml"

	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/smallbiznis/portal/internal/portal/export"
)

type document struct {
	XMLName        xml.Name `xml:"EInvoice"`
	ID             string   `xml:"ID"`
	Number         string   `xml:"InvoiceNumber"`
	Status         string   `xml:"Status"`
	IssueDate      string   `xml:"IssueDate"`
	DueDate        string   `xml:"DueDate,omitempty"`
	PartialDueDate string   `xml:"PartialDueDate,omitempty"`
	Amount         int64    `xml:"Amount"`
	Balance        int64    `xml:"Balance"`
}

const dateLayout = "2006-01-02"

type Renderer struct{}

func NewRenderer() export.EInvoiceRenderer {
	return &Renderer{}
}

func (r *Renderer) Render(ctx context.Context, invoice invoicedomain.Invoice) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := document{
		ID:        invoice.HashedID,
		Number:    invoice.Number,
		Status:    string(invoice.Status),
		IssueDate: invoice.Date.Format(dateLayout),
		Amount:    invoice.Amount,
		Balance:   invoice.Balance,
	}
	if invoice.DueDate != nil {
		doc.DueDate = invoice.DueDate.Format(dateLayout)
	}
	if invoice.PartialDueDate != nil {
		doc.PartialDueDate = invoice.PartialDueDate.Format(dateLayout)
	}

	raw, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), raw...), nil
}
