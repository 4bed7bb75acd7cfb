// Package domain contains the invoice model and the portal listing contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is a billing invoice as seen by the client portal. The portal never
// writes invoices; the billing system owns them.
//
// HashedID is the opaque identifier exposed to the portal UI. It is stable
// across pagination and is the only identifier accepted back from callers.
type Invoice struct {
	ID             snowflake.ID   `gorm:"primaryKey"`
	HashedID       string         `gorm:"type:text;not null;uniqueIndex"`
	CompanyID      snowflake.ID   `gorm:"not null;index"`
	ClientID       snowflake.ID   `gorm:"not null;index"`
	Number         string         `gorm:"type:text;not null"`
	Status         InvoiceStatus  `gorm:"type:text;not null;default:'DRAFT'"`
	Amount         int64          `gorm:"not null;default:0"`
	Balance        int64          `gorm:"not null;default:0"`
	Date           time.Time      `gorm:"not null"`
	DueDate        *time.Time     `gorm:""`
	PartialDueDate *time.Time     `gorm:""`
	IsDeleted      bool           `gorm:"not null;default:false"`
	IsProforma     bool           `gorm:"not null;default:false"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// FileName returns the canonical PDF artifact name for the invoice.
func (i Invoice) FileName() string {
	return i.FileNameWithExt("pdf")
}

// FileNameWithExt returns the artifact name with the given extension, derived
// from the invoice number. The number is slugified so it is always safe as an
// archive entry or download name.
func (i Invoice) FileNameWithExt(ext string) string {
	name := slug.Make(i.Number)
	if name == "" {
		name = i.HashedID
	}
	return name + "." + ext
}
