// Package domain contains client and contact models consumed by the portal.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Settings keys stored in Client.Settings.
const (
	SettingEnableEInvoice = "enable_e_invoice"
)

// Client is a billable client of a company. Settings carries per-client
// configuration such as the e-invoicing flag.
type Client struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	CompanyID snowflake.ID      `gorm:"not null;index"`
	Name      string            `gorm:"type:text;not null"`
	Locale    string            `gorm:"type:text;not null;default:'en'"`
	Settings  datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }

// EInvoiceEnabled reports whether the client opted into structured
// e-invoice documents.
func (c Client) EInvoiceEnabled() bool {
	raw, ok := c.Settings[SettingEnableEInvoice]
	if !ok {
		return false
	}
	enabled, ok := raw.(bool)
	return ok && enabled
}

// ClientContact is a portal login belonging to a client.
type ClientContact struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	ClientID  snowflake.ID `gorm:"not null;index"`
	CompanyID snowflake.ID `gorm:"not null;index"`
	Email     string       `gorm:"type:text;not null"`
	Token     string       `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ClientContact) TableName() string { return "client_contacts" }

var (
	ErrContactNotFound = errors.New("contact_not_found")
	ErrClientNotFound  = errors.New("client_not_found")
)
