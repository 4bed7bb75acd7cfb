package i18n

import "testing"

func TestTranslatorResolvesLocales(t *testing.T) {
	tr := New("en")

	cases := []struct {
		locale string
		want   string
	}{
		{"en", "Invoices"},
		{"de", "Rechnungen"},
		{"de-AT", "Rechnungen"},
		{"fr", "Factures"},
		{"es-MX", "Facturas"},
		{"pt", "Invoices"}, // unsupported locale falls back
		{"", "Invoices"},   // empty locale uses the default
	}

	for _, tc := range cases {
		if got := tr.T(tc.locale, KeyInvoices); got != tc.want {
			t.Fatalf("T(%q) = %q, want %q", tc.locale, got, tc.want)
		}
	}
}

func TestTranslatorDefaultLocale(t *testing.T) {
	tr := New("de")
	if got := tr.T("", KeyNoItemsSelected); got != "Keine Einträge ausgewählt" {
		t.Fatalf("unexpected default-locale message %q", got)
	}
}

func TestTranslatorUnknownKey(t *testing.T) {
	tr := New("en")
	if got := tr.T("en", "nope"); got != "nope" {
		t.Fatalf("unknown key should echo, got %q", got)
	}
}
