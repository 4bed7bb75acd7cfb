// Package option provides composable gorm query options shared by repositories.
package option

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// QuerySortBy describes a validated sort. Allow is the column allow-list;
// Field must already be validated against it by the caller.
type QuerySortBy struct {
	Allow     map[string]bool
	Field     string
	Desc      bool
	Secondary string
}

// WithSortBy orders by the validated sort field, always followed by the
// secondary column so pagination stays deterministic. Fields outside the
// allow-list are ignored.
func WithSortBy(s QuerySortBy) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if s.Field != "" && s.Allow[s.Field] {
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Name: s.Field},
				Desc:   s.Desc,
			})
		}
		if s.Secondary != "" {
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Name: s.Secondary},
			})
		}
		return db
	})
}

// WithPage applies 1-based offset pagination.
func WithPage(page, size int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if size < 1 {
			return db
		}
		return db.Offset((page - 1) * size).Limit(size)
	})
}

// WithUnscoped disables gorm soft-delete filtering ("with trashed").
func WithUnscoped() QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	})
}
