package render

import (
	"html/template"

	"github.com/shopspring/decimal"

	cartdom "folio/internal/domain/cart"
	catalogdom "folio/internal/domain/catalog"
	"folio/internal/domain/content"
	"folio/internal/domain/navigation"
)

// Chrome is shared by every page.
type Chrome struct {
	Site      content.Site
	Nav       navigation.State
	CartCount int
}

// Section is one catalog list, full page or home preview.
type Section struct {
	Kind    catalogdom.Kind
	Items   []catalogdom.Item
	Status  catalogdom.LoadStatus
	Preview bool
}

type HomePage struct {
	Chrome
	Sections []Section

	// ContactStatus is "", "sent", "invalid" or "failed".
	ContactStatus string
}

type ListPage struct {
	Chrome
	Section
	Filter     catalogdom.FilterState
	Categories []string
}

type DetailPage struct {
	Chrome
	Item    catalogdom.Item
	Related []catalogdom.Item
}

type CartPage struct {
	Chrome
	Lines    []cartdom.Line
	Total    decimal.Decimal
	Warnings []cartdom.IntegrityWarning
}

type NotFoundPage struct {
	Chrome
	Message string
}

// layoutData is what layout.tmpl receives.
type layoutData struct {
	Chrome
	Title   string
	Regions []template.HTML
}
