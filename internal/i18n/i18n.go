// Package i18n resolves the handful of user-visible portal strings in the
// contact's locale.
package i18n

import (
	"golang.org/x/text/language"
)

const (
	KeyInvoices        = "invoices"
	KeyNoItemsSelected = "no_items_selected"
	KeyExportFailed    = "export_failed"
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.German,
	language.French,
	language.Spanish,
}

var catalogs = map[language.Tag]map[string]string{
	language.English: {
		KeyInvoices:        "Invoices",
		KeyNoItemsSelected: "No items selected",
		KeyExportFailed:    "Export failed, please retry",
	},
	language.German: {
		KeyInvoices:        "Rechnungen",
		KeyNoItemsSelected: "Keine Einträge ausgewählt",
		KeyExportFailed:    "Export fehlgeschlagen, bitte erneut versuchen",
	},
	language.French: {
		KeyInvoices:        "Factures",
		KeyNoItemsSelected: "Aucun élément sélectionné",
		KeyExportFailed:    "Échec de l'export, veuillez réessayer",
	},
	language.Spanish: {
		KeyInvoices:        "Facturas",
		KeyNoItemsSelected: "Ningún elemento seleccionado",
		KeyExportFailed:    "La exportación falló, inténtelo de nuevo",
	},
}

// Translator matches a requested locale against the supported catalogs.
type Translator struct {
	matcher       language.Matcher
	defaultLocale string
}

func New(defaultLocale string) *Translator {
	return &Translator{
		matcher:       language.NewMatcher(supported),
		defaultLocale: defaultLocale,
	}
}

// T resolves key in the closest supported locale. Unknown locales fall back
// to the configured default, then to English.
func (t *Translator) T(locale, key string) string {
	if locale == "" {
		locale = t.defaultLocale
	}
	tag, _ := language.MatchStrings(t.matcher, locale)
	for _, supportedTag := range supported {
		if catalog, ok := catalogs[supportedTag]; ok && tagMatches(tag, supportedTag) {
			if value, ok := catalog[key]; ok {
				return value
			}
		}
	}
	if value, ok := catalogs[language.English][key]; ok {
		return value
	}
	return key
}

func tagMatches(matched, supported language.Tag) bool {
	base1, _ := matched.Base()
	base2, _ := supported.Base()
	return base1 == base2
}
