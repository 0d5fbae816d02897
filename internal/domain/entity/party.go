package entity

// Party representa la contraparte de un documento: cliente (facturas, cotizaciones)
// o proveedor (compras). Es dato de referencia del catálogo, solo lectura.
type Party struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// PartyKind distingue el catálogo de contrapartes.
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartySupplier PartyKind = "supplier"
)
