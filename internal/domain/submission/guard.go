package submission

import (
	"strings"

	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Rule clase de regla violada. El guardia informa una sola clase, no campo por campo.
type Rule string

const (
	RuleKind      Rule = "kind"
	RuleParty     Rule = "party"
	RuleDate      Rule = "date"
	RuleStatus    Rule = "status"
	RuleNoItems   Rule = "items"
	RuleProduct   Rule = "item_product"
	RuleQuantity  Rule = "item_quantity"
	RuleUnitPrice Rule = "item_unit_price"
)

var messages = map[Rule]string{
	RuleKind:      "tipo de documento no soportado",
	RuleParty:     "seleccione el cliente o proveedor del documento",
	RuleDate:      "la fecha del documento es obligatoria",
	RuleStatus:    "el estado de la factura es obligatorio",
	RuleNoItems:   "el documento debe tener al menos una línea",
	RuleProduct:   "todas las líneas deben tener un producto seleccionado",
	RuleQuantity:  "todas las líneas deben tener cantidad mayor a cero",
	RuleUnitPrice: "todas las líneas deben tener precio unitario mayor a cero",
}

// Result resultado de la validación previa al guardado.
type Result struct {
	OK      bool
	Rule    Rule
	Message string
}

// Err devuelve nil si el resultado es válido o un *ValidationError si no.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &ValidationError{Rule: r.Rule, Message: r.Message}
}

// ValidationError error recuperable: el borrador queda abierto para corregirlo.
type ValidationError struct {
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

func fail(rule Rule) Result {
	return Result{OK: false, Rule: rule, Message: messages[rule]}
}

// Validate revisa cabecera y líneas antes de cualquier llamada de creación o
// actualización. Es una pasada pura: no modifica nada. Devuelve la primera
// clase de regla violada en este orden: tipo, contraparte, fecha, estado,
// líneas, producto, cantidad, precio.
func Validate(kind entity.DocumentKind, header entity.Header, items []entity.LineItem) Result {
	spec, ok := entity.SpecFor(kind)
	if !ok {
		return fail(RuleKind)
	}
	if strings.TrimSpace(header.PartyID) == "" {
		return fail(RuleParty)
	}
	if spec.RequiresDate && strings.TrimSpace(header.Date) == "" {
		return fail(RuleDate)
	}
	if spec.RequiresStatus && strings.TrimSpace(header.Status) == "" {
		return fail(RuleStatus)
	}
	if len(items) == 0 {
		return fail(RuleNoItems)
	}
	for _, it := range items {
		if strings.TrimSpace(it.ProductRef) == "" {
			return fail(RuleProduct)
		}
	}
	for _, it := range items {
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return fail(RuleQuantity)
		}
	}
	for _, it := range items {
		if !it.UnitPrice.GreaterThan(decimal.Zero) {
			return fail(RuleUnitPrice)
		}
	}
	return Result{OK: true}
}
