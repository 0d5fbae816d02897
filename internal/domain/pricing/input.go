package pricing

import (
	"math"
	"strings"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Límites de las entradas numéricas. Coinciden con las columnas NUMERIC(18,4).
const (
	MaxIntegerDigits int32 = 14
	MaxInputScale    int32 = 6
)

// MaxAmount mayor valor absoluto que acepta una cantidad o un precio.
var MaxAmount = decimal.New(1, MaxIntegerDigits).Sub(decimal.New(1, -4))

// Bound acota magnitud y escala: lo que excede MaxAmount queda en ±MaxAmount y
// los decimales pasados de MaxInputScale se truncan. Solo mira dígitos y
// exponente antes de operar, así "1e900000000" no materializa el número.
func Bound(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	digits := int64(d.NumDigits())
	exp := int64(d.Exponent())
	if digits+exp > int64(MaxIntegerDigits) {
		return clampSign(d)
	}
	if -exp > digits+int64(MaxInputScale) {
		return decimal.Zero
	}
	if exp < -int64(MaxInputScale) {
		d = d.Truncate(MaxInputScale)
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return clampSign(d)
	}
	return d
}

func clampSign(d decimal.Decimal) decimal.Decimal {
	if d.Sign() < 0 {
		return MaxAmount.Neg()
	}
	return MaxAmount
}

// CoerceNumber interpreta lo que el usuario escribió en un campo numérico.
// Acepta coma decimal ("9,99"). ok=false para vacío, NaN, infinito o texto.
// El resultado pasa por Bound.
func CoerceNumber(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return Bound(d), true
}

// FromFloat convierte un float64 rechazando NaN e infinitos.
func FromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return Bound(decimal.NewFromFloat(f)), true
}

// Catalog instantánea de productos cargada por el colaborador de catálogo.
// El motor solo la lee; no la obtiene ni la invalida.
type Catalog map[string]*entity.Product

// NewCatalog indexa los productos por ID. Los IDs vacíos se ignoran.
func NewCatalog(products []entity.Product) Catalog {
	c := make(Catalog, len(products))
	for i := range products {
		if products[i].ID == "" {
			continue
		}
		c[products[i].ID] = &products[i]
	}
	return c
}

// Lookup busca un producto por ID. Un catálogo nil no contiene nada.
func (c Catalog) Lookup(id string) (*entity.Product, bool) {
	if c == nil {
		return nil, false
	}
	p, ok := c[id]
	return p, ok
}
