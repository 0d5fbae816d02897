package dto

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberInput valor numérico tal como lo escribió el usuario. Acepta número o
// string JSON; cualquier otra cosa queda como texto y el motor la corrige.
type NumberInput string

// UnmarshalJSON nunca falla: la corrección de entradas es silenciosa.
func (n *NumberInput) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = ""
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		*n = NumberInput(unq)
		return nil
	}
	*n = NumberInput(s)
	return nil
}

// OpenDraftRequest body para POST /api/drafts.
// DocumentID vacío abre un documento nuevo; con valor edita uno existente.
type OpenDraftRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=invoice purchase quote"`
	DocumentID string `json:"document_id,omitempty" validate:"omitempty,max=64"`
}

// HeaderRequest body para PUT /api/drafts/:id/header.
type HeaderRequest struct {
	PartyID  string `json:"party_id" validate:"max=64"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status   string `json:"status" validate:"max=32"`
	Notes    string `json:"notes" validate:"max=2000"`
	Currency string `json:"currency" validate:"omitempty,len=3,alpha"`
}

// SelectProductRequest body para PUT /api/drafts/:id/items/:index/product.
// ProductID vacío limpia la selección.
type SelectProductRequest struct {
	ProductID string `json:"product_id" validate:"max=64"`
}

// SetQuantityRequest body para PUT /api/drafts/:id/items/:index/quantity.
type SetQuantityRequest struct {
	Quantity NumberInput `json:"quantity"`
}

// SetUnitPriceRequest body para PUT /api/drafts/:id/items/:index/price.
type SetUnitPriceRequest struct {
	UnitPrice NumberInput `json:"unit_price"`
}

// DraftHeaderResponse cabecera del borrador.
type DraftHeaderResponse struct {
	PartyID  string `json:"party_id"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
	Currency string `json:"currency"`
}

// DraftItemResponse línea del borrador: totales crudos más su versión formateada.
type DraftItemResponse struct {
	Index              int             `json:"index"`
	ProductID          string          `json:"product_id"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	LineTotal          decimal.Decimal `json:"line_total"`
	LineTotalFormatted string          `json:"line_total_formatted"`
}

// DraftResponse estado completo del borrador después de cada operación.
type DraftResponse struct {
	ID                  string              `json:"id"`
	Kind                string              `json:"kind"`
	DocumentID          string              `json:"document_id,omitempty"`
	Header              DraftHeaderResponse `json:"header"`
	Items               []DraftItemResponse `json:"items"`
	GrandTotal          decimal.Decimal     `json:"grand_total"`
	GrandTotalFormatted string              `json:"grand_total_formatted"`
}

// DocumentResponse documento guardado devuelto por el colaborador de persistencia.
type DocumentResponse struct {
	ID         string              `json:"id"`
	Kind       string              `json:"kind"`
	Header     DraftHeaderResponse `json:"header"`
	Items      []DraftItemResponse `json:"items"`
	GrandTotal decimal.Decimal     `json:"grand_total"`
}
