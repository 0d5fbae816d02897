package submission

import (
	"encoding/json"

	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// PayloadOptions decisiones de serialización del documento validado.
type PayloadOptions struct {
	// IncludeTotals agrega el total de cada línea (con el nombre del tipo:
	// total_price o total_cost) y el total general. Por defecto se omiten
	// porque el servidor los recalcula.
	IncludeTotals bool
}

// Payload arma el cuerpo {cabecera, items[]} que recibe el colaborador de
// persistencia, usando los nombres de campo del tipo de documento.
func Payload(kind entity.DocumentKind, header entity.Header, items []entity.LineItem, opts PayloadOptions) (map[string]any, error) {
	spec, ok := entity.SpecFor(kind)
	if !ok {
		return nil, domain.ErrUnsupportedKind
	}
	body := map[string]any{
		spec.PartyField: header.PartyID,
	}
	setIf(body, "date", header.Date)
	setIf(body, "status", header.Status)
	setIf(body, "notes", header.Notes)
	setIf(body, "currency", header.Currency)

	lines := make([]map[string]any, 0, len(items))
	for _, it := range items {
		line := map[string]any{
			"product_id": it.ProductRef,
			"quantity":   number(it.Quantity),
			"unit_price": number(it.UnitPrice),
		}
		if opts.IncludeTotals {
			line[spec.TotalField] = number(it.LineTotal)
		}
		lines = append(lines, line)
	}
	body["items"] = lines
	if opts.IncludeTotals {
		body["total_amount"] = number(pricing.GrandTotal(items))
	}
	return body, nil
}

func setIf(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

// number serializa el decimal como número JSON, no como string.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
