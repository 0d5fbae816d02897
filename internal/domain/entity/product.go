package entity

import "github.com/shopspring/decimal"

// Product representa un registro del catálogo de productos (solo lectura para el editor).
// Los registros son heterogéneos según el origen: algunos traen price, otros
// unit_price o sale_price. Por eso los tres campos son opcionales.
type Product struct {
	ID          string           `json:"id"`
	SKU         string           `json:"sku,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	Stock       *decimal.Decimal `json:"stock,omitempty"`
}

// CanonicalPrice devuelve el precio unitario canónico del producto.
// Prioridad: price → unit_price → sale_price. ok=false si ninguno está presente.
func (p *Product) CanonicalPrice() (decimal.Decimal, bool) {
	if p == nil {
		return decimal.Zero, false
	}
	for _, candidate := range []*decimal.Decimal{p.Price, p.UnitPrice, p.SalePrice} {
		if candidate != nil {
			return *candidate, true
		}
	}
	return decimal.Zero, false
}
