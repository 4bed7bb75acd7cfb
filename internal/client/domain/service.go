package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// FindContactByToken resolves a portal token to its contact.
	FindContactByToken(ctx context.Context, token string) (*ClientContact, error)
	GetClient(ctx context.Context, id snowflake.ID) (*Client, error)
	// EInvoiceEnabled reports the client's e-invoicing setting.
	EInvoiceEnabled(ctx context.Context, clientID snowflake.ID) (bool, error)
}
