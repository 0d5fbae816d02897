package pricing

import (
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultPrecision decimales de los totales cuando la moneda no define otra cosa.
const DefaultPrecision int32 = 2

// Engine motor de precios de líneas (servicio de dominio puro).
// Todas las operaciones son totales: nunca fallan, nunca modifican el slice de
// entrada y siempre devuelven líneas con LineTotal = Quantity * UnitPrice
// redondeado a Precision. Índices fuera de rango devuelven una copia sin cambios.
type Engine struct {
	Precision   int32
	MinQuantity decimal.Decimal
}

// NewEngine construye el motor con la precisión de la moneda y cantidad mínima 1.
func NewEngine(precision int32) *Engine {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return &Engine{Precision: precision, MinQuantity: decimal.NewFromInt(1)}
}

// NewItem línea vacía: sin producto, cantidad 1, precio 0.
func (e *Engine) NewItem() entity.LineItem {
	return entity.LineItem{
		Quantity:  e.MinQuantity,
		UnitPrice: decimal.Zero,
		LineTotal: decimal.Zero,
	}
}

// LineTotal calcula cantidad × precio redondeado a la precisión del motor.
func (e *Engine) LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(e.Precision)
}

// AddItem agrega una línea vacía al final. No hay límite de líneas.
func (e *Engine) AddItem(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, e.NewItem())
}

// RemoveItem quita la línea index salvo que sea la última: un documento
// conserva siempre al menos una línea en el editor.
func (e *Engine) RemoveItem(items []entity.LineItem, index int) []entity.LineItem {
	if len(items) <= 1 || !inRange(items, index) {
		return clone(items)
	}
	out := make([]entity.LineItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}

// SetQuantity fija la cantidad con mínimo MinQuantity y recalcula el total.
func (e *Engine) SetQuantity(items []entity.LineItem, index int, quantity decimal.Decimal) []entity.LineItem {
	out := clone(items)
	if !inRange(out, index) {
		return out
	}
	out[index].Quantity = decimal.Max(e.MinQuantity, Bound(quantity))
	e.recompute(&out[index])
	return out
}

// SetQuantityInput aplica una cantidad escrita por el usuario. Lo no numérico
// se corrige en silencio al mínimo.
func (e *Engine) SetQuantityInput(items []entity.LineItem, index int, raw string) []entity.LineItem {
	q, ok := CoerceNumber(raw)
	if !ok {
		q = e.MinQuantity
	}
	return e.SetQuantity(items, index, q)
}

// SetUnitPrice fija el precio unitario (mínimo 0) y recalcula el total.
func (e *Engine) SetUnitPrice(items []entity.LineItem, index int, price decimal.Decimal) []entity.LineItem {
	out := clone(items)
	if !inRange(out, index) {
		return out
	}
	out[index].UnitPrice = decimal.Max(decimal.Zero, Bound(price))
	e.recompute(&out[index])
	return out
}

// SetUnitPriceInput aplica un precio escrito por el usuario; lo no numérico queda en 0.
func (e *Engine) SetUnitPriceInput(items []entity.LineItem, index int, raw string) []entity.LineItem {
	p, ok := CoerceNumber(raw)
	if !ok {
		p = decimal.Zero
	}
	return e.SetUnitPrice(items, index, p)
}

// SelectProduct reemplaza de forma atómica producto, precio y total de la línea.
// La cantidad se conserva. Con product nil la línea queda sin producto.
// Si el producto no trae ningún campo de precio se conserva el precio guardado.
func (e *Engine) SelectProduct(items []entity.LineItem, index int, product *entity.Product) []entity.LineItem {
	out := clone(items)
	if !inRange(out, index) {
		return out
	}
	item := &out[index]
	if product == nil {
		item.ProductRef = ""
	} else {
		item.ProductRef = product.ID
		if price, ok := product.CanonicalPrice(); ok {
			item.UnitPrice = decimal.Max(decimal.Zero, Bound(price))
		}
	}
	e.recompute(item)
	return out
}

// SelectProductByID como SelectProduct pero resolviendo el producto en el
// catálogo cargado. Si el producto no está (catálogo aún cargando) se asigna
// la referencia y se conserva el precio ya guardado en la línea.
func (e *Engine) SelectProductByID(items []entity.LineItem, index int, productID string, catalog Catalog) []entity.LineItem {
	if productID == "" {
		return e.SelectProduct(items, index, nil)
	}
	if p, ok := catalog.Lookup(productID); ok {
		return e.SelectProduct(items, index, p)
	}
	out := clone(items)
	if !inRange(out, index) {
		return out
	}
	out[index].ProductRef = productID
	e.recompute(&out[index])
	return out
}

// Normalize recalcula todas las líneas aplicando los mismos límites que las
// operaciones de edición. Se usa al cargar un documento existente.
func (e *Engine) Normalize(items []entity.LineItem) []entity.LineItem {
	out := clone(items)
	for i := range out {
		out[i].Quantity = decimal.Max(e.MinQuantity, Bound(out[i].Quantity))
		out[i].UnitPrice = decimal.Max(decimal.Zero, Bound(out[i].UnitPrice))
		e.recompute(&out[i])
	}
	return out
}

// GrandTotal suma de los totales de línea; 0 para una lista vacía.
func GrandTotal(items []entity.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}

func (e *Engine) recompute(item *entity.LineItem) {
	item.LineTotal = e.LineTotal(item.Quantity, item.UnitPrice)
}

func inRange(items []entity.LineItem, index int) bool {
	return index >= 0 && index < len(items)
}

func clone(items []entity.LineItem) []entity.LineItem {
	return append(make([]entity.LineItem, 0, len(items)), items...)
}
