package dto

import "github.com/shopspring/decimal"

// ProductResponse producto del catálogo con su precio canónico ya resuelto.
type ProductResponse struct {
	ID             string           `json:"id"`
	SKU            string           `json:"sku,omitempty"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Price          *decimal.Decimal `json:"price"` // nil si el registro no trae ningún precio
	PriceFormatted string           `json:"price_formatted,omitempty"`
	Stock          *decimal.Decimal `json:"stock,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PartyResponse cliente o proveedor.
type PartyResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// PartyListResponse lista paginada de clientes o proveedores.
type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
