// Package domain contains the company model consumed by the portal.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Module bits for Company.EnabledModules. Matches the portal surface: a
// company that has not enabled a module never exposes it to its clients.
const (
	ModuleInvoices int64 = 1 << iota
	ModuleRecurringInvoices
	ModuleQuotes
	ModulePayments
)

// Company owns clients and gates which portal modules they may use.
type Company struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	Name           string       `gorm:"type:text;not null"`
	EnabledModules int64        `gorm:"not null;default:0"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Company) TableName() string { return "companies" }

// ModuleEnabled reports whether the module bit is set.
func (c Company) ModuleEnabled(module int64) bool {
	return c.EnabledModules&module != 0
}
