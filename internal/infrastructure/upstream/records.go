package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// Los registros del API remoto son heterogéneos: IDs numéricos o string,
// montos como número o string, listas desnudas o envueltas en data/items/results.

// flexID acepta número o string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	*f = flexID(strings.Trim(s, `"`))
	return nil
}

// flexDecimal acepta número, string numérico (con coma decimal) o null.
// Un valor no numérico queda ausente.
type flexDecimal struct {
	v *decimal.Decimal
}

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if d, ok := pricing.CoerceNumber(s); ok {
		f.v = &d
	}
	return nil
}

func (f flexDecimal) ptr() *decimal.Decimal { return f.v }

func (f flexDecimal) or(def decimal.Decimal) decimal.Decimal {
	if f.v == nil {
		return def
	}
	return *f.v
}

type productRecord struct {
	ID          flexID      `json:"id"`
	SKU         flexID      `json:"sku"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       flexDecimal `json:"price"`
	UnitPrice   flexDecimal `json:"unit_price"`
	SalePrice   flexDecimal `json:"sale_price"`
	Stock       flexDecimal `json:"stock"`
}

func (r productRecord) toEntity() entity.Product {
	return entity.Product{
		ID:          string(r.ID),
		SKU:         string(r.SKU),
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price.ptr(),
		UnitPrice:   r.UnitPrice.ptr(),
		SalePrice:   r.SalePrice.ptr(),
		Stock:       r.Stock.ptr(),
	}
}

type partyRecord struct {
	ID    flexID `json:"id"`
	Name  string `json:"name"`
	TaxID flexID `json:"tax_id"`
	NIT   flexID `json:"nit"`
	Email string `json:"email"`
	Phone flexID `json:"phone"`
}

func (r partyRecord) toEntity() entity.Party {
	tax := string(r.TaxID)
	if tax == "" {
		tax = string(r.NIT)
	}
	return entity.Party{ID: string(r.ID), Name: r.Name, TaxID: tax, Email: r.Email, Phone: string(r.Phone)}
}

type itemRecord struct {
	ProductID flexID      `json:"product_id"`
	Quantity  flexDecimal `json:"quantity"`
	UnitPrice flexDecimal `json:"unit_price"`
}

type documentRecord struct {
	ID          flexID       `json:"id"`
	CustomerID  flexID       `json:"customer_id"`
	SupplierID  flexID       `json:"supplier_id"`
	Date        string       `json:"date"`
	Status      string       `json:"status"`
	Notes       string       `json:"notes"`
	Currency    string       `json:"currency"`
	Items       []itemRecord `json:"items"`
	TotalAmount flexDecimal  `json:"total_amount"`
}

func (r documentRecord) toEntity(kind entity.DocumentKind) *entity.Document {
	spec, _ := entity.SpecFor(kind)
	party := r.CustomerID
	if spec.PartyField == "supplier_id" {
		party = r.SupplierID
	}
	date := r.Date
	if len(date) > 10 {
		date = date[:10]
	}
	items := make([]entity.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		q := it.Quantity.or(decimal.NewFromInt(1))
		p := it.UnitPrice.or(decimal.Zero)
		items = append(items, entity.LineItem{
			ProductRef: string(it.ProductID),
			Quantity:   q,
			UnitPrice:  p,
			LineTotal:  q.Mul(p),
		})
	}
	return &entity.Document{
		ID:   string(r.ID),
		Kind: kind,
		Header: entity.Header{
			PartyID:  string(party),
			Date:     date,
			Status:   r.Status,
			Notes:    r.Notes,
			Currency: r.Currency,
		},
		Items:      items,
		GrandTotal: r.TotalAmount.or(decimal.Zero),
	}
}

var envelopeKeys = []string{"data", "items", "results"}

// decodeList decodifica una lista desnuda o envuelta.
func decodeList[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("%w: respuesta inválida: %v", domain.ErrUpstream, err)
		}
		body = nil
		for _, key := range envelopeKeys {
			if raw, ok := env[key]; ok {
				body = raw
				break
			}
		}
		if body == nil {
			return []T{}, nil
		}
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: respuesta inválida: %v", domain.ErrUpstream, err)
	}
	return out, nil
}

// decodeObject decodifica un objeto desnudo o envuelto en data.
func decodeObject[T any](body []byte) (*T, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && env.Data[0] == '{' {
		body = env.Data
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: respuesta inválida: %v", domain.ErrUpstream, err)
	}
	return &out, nil
}
