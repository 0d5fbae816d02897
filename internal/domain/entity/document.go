package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind tipo de documento comercial editable.
type DocumentKind string

const (
	KindInvoice  DocumentKind = "invoice"
	KindPurchase DocumentKind = "purchase"
	KindQuote    DocumentKind = "quote"
)

// KindSpec describe cómo se llaman los campos de cada tipo de documento en la API
// y qué campos de cabecera son obligatorios al guardar.
type KindSpec struct {
	Kind           DocumentKind
	Resource       string    // segmento REST: invoices, purchases, quotes
	PartyField     string    // customer_id | supplier_id
	PartyKind      PartyKind // catálogo de contrapartes
	TotalField     string    // total_price | total_cost
	RequiresDate   bool
	RequiresStatus bool
}

var kindSpecs = map[DocumentKind]KindSpec{
	KindInvoice: {
		Kind: KindInvoice, Resource: "invoices", PartyField: "customer_id", PartyKind: PartyCustomer,
		TotalField: "total_price", RequiresDate: true, RequiresStatus: true,
	},
	KindQuote: {
		Kind: KindQuote, Resource: "quotes", PartyField: "customer_id", PartyKind: PartyCustomer,
		TotalField: "total_price", RequiresDate: true,
	},
	KindPurchase: {
		Kind: KindPurchase, Resource: "purchases", PartyField: "supplier_id", PartyKind: PartySupplier,
		TotalField: "total_cost",
	},
}

// SpecFor devuelve la especificación del tipo; ok=false si el tipo no existe.
func SpecFor(kind DocumentKind) (KindSpec, bool) {
	s, ok := kindSpecs[kind]
	return s, ok
}

// LineItem una línea del documento: producto, cantidad, precio unitario y total derivado.
// LineTotal nunca se modifica directamente; lo recalcula el motor de precios.
type LineItem struct {
	ProductRef string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// Header campos de cabecera comunes a facturas, compras y cotizaciones.
type Header struct {
	PartyID  string `json:"party_id"`
	Date     string `json:"date,omitempty"` // YYYY-MM-DD
	Status   string `json:"status,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Document documento persistido (fuente de verdad: el colaborador de persistencia).
type Document struct {
	ID         string
	CompanyID  string
	Kind       DocumentKind
	Header     Header
	Items      []LineItem
	GrandTotal decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
