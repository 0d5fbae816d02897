package pricing_test

import (
	"math"
	"testing"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), msgAndArgs)
}

func TestEngine_TotalSiempreCantidadPorPrecio(t *testing.T) {
	e := pricing.NewEngine(2)
	items := e.AddItem(nil)
	items = e.AddItem(items)

	steps := []func([]entity.LineItem) []entity.LineItem{
		func(it []entity.LineItem) []entity.LineItem { return e.SetQuantity(it, 0, dec("4")) },
		func(it []entity.LineItem) []entity.LineItem { return e.SetUnitPrice(it, 0, dec("12.50")) },
		func(it []entity.LineItem) []entity.LineItem { return e.SetUnitPrice(it, 1, dec("0.33")) },
		func(it []entity.LineItem) []entity.LineItem { return e.SetQuantity(it, 1, dec("3")) },
		func(it []entity.LineItem) []entity.LineItem { return e.SetQuantity(it, 0, dec("-2")) },
		func(it []entity.LineItem) []entity.LineItem { return e.SetUnitPriceInput(it, 1, "abc") },
		func(it []entity.LineItem) []entity.LineItem { return e.SetQuantityInput(it, 1, "7") },
	}
	for i, step := range steps {
		items = step(items)
		for j, it := range items {
			want := it.Quantity.Mul(it.UnitPrice)
			diff := want.Sub(it.LineTotal).Abs()
			assert.True(t, diff.LessThan(dec("0.000000001")), "paso %d, línea %d: %s != %s", i, j, it.LineTotal, want)
		}
	}
}

func TestEngine_GrandTotalEsSumaDeLineas(t *testing.T) {
	assertDecimal(t, "0", pricing.GrandTotal(nil), "lista vacía")

	e := pricing.NewEngine(2)
	items := []entity.LineItem{e.NewItem(), e.NewItem(), e.NewItem()}
	items = e.SetUnitPrice(items, 0, dec("10"))
	items = e.SetUnitPrice(items, 1, dec("2.25"))
	items = e.SetQuantity(items, 1, dec("2"))

	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal)
	}
	assertDecimal(t, sum.String(), pricing.GrandTotal(items))
	assertDecimal(t, "14.5", pricing.GrandTotal(items))
}

func TestEngine_Clamping(t *testing.T) {
	e := pricing.NewEngine(2)
	items := []entity.LineItem{e.NewItem()}

	items = e.SetQuantity(items, 0, dec("-5"))
	assertDecimal(t, "1", items[0].Quantity, "la cantidad mínima es 1")

	items = e.SetUnitPrice(items, 0, dec("-10"))
	assertDecimal(t, "0", items[0].UnitPrice, "el precio mínimo es 0")

	items = e.SetQuantityInput(items, 0, "NaN")
	assertDecimal(t, "1", items[0].Quantity)

	items = e.SetQuantityInput(items, 0, "")
	assertDecimal(t, "1", items[0].Quantity)

	items = e.SetUnitPriceInput(items, 0, "9,99")
	assertDecimal(t, "9.99", items[0].UnitPrice, "coma decimal aceptada")
}

func TestEngine_SelectProductEsAtomico(t *testing.T) {
	e := pricing.NewEngine(2)
	items := []entity.LineItem{{ProductRef: "", Quantity: dec("3"), UnitPrice: dec("0"), LineTotal: dec("0")}}

	out := e.SelectProduct(items, 0, &entity.Product{ID: "P1", Price: decPtr("25")})

	require.Len(t, out, 1)
	assert.Equal(t, "P1", out[0].ProductRef)
	assertDecimal(t, "3", out[0].Quantity, "la cantidad no cambia")
	assertDecimal(t, "25", out[0].UnitPrice)
	assertDecimal(t, "75", out[0].LineTotal)

	assert.Equal(t, "", items[0].ProductRef, "la entrada no se modifica")
}

func TestEngine_SelectProduct_PrioridadDePrecio(t *testing.T) {
	e := pricing.NewEngine(2)
	items := []entity.LineItem{e.NewItem()}

	out := e.SelectProduct(items, 0, &entity.Product{ID: "A", UnitPrice: decPtr("4"), SalePrice: decPtr("5")})
	assertDecimal(t, "4", out[0].UnitPrice, "unit_price antes que sale_price")

	out = e.SelectProduct(items, 0, &entity.Product{ID: "B", SalePrice: decPtr("5")})
	assertDecimal(t, "5", out[0].UnitPrice)

	out = e.SelectProduct(items, 0, &entity.Product{ID: "C", Price: decPtr("6"), UnitPrice: decPtr("4")})
	assertDecimal(t, "6", out[0].UnitPrice, "price es el canónico")
}

func TestEngine_SelectProduct_SinPrecioConservaElGuardado(t *testing.T) {
	e := pricing.NewEngine(2)
	items := e.SetUnitPrice([]entity.LineItem{e.NewItem()}, 0, dec("8"))

	out := e.SelectProduct(items, 0, &entity.Product{ID: "X"})
	assert.Equal(t, "X", out[0].ProductRef)
	assertDecimal(t, "8", out[0].UnitPrice)

	out = e.SelectProduct(out, 0, nil)
	assert.Equal(t, "", out[0].ProductRef, "nil limpia la referencia")
	assertDecimal(t, "8", out[0].LineTotal)
}

func TestEngine_SelectProductByID_CatalogoIncompleto(t *testing.T) {
	e := pricing.NewEngine(2)
	items := e.SetUnitPrice([]entity.LineItem{e.NewItem()}, 0, dec("12"))
	items = e.SetQuantity(items, 0, dec("2"))

	out := e.SelectProductByID(items, 0, "P9", nil)
	assert.Equal(t, "P9", out[0].ProductRef)
	assertDecimal(t, "12", out[0].UnitPrice, "catálogo vacío no borra el precio")
	assertDecimal(t, "24", out[0].LineTotal)

	catalog := pricing.NewCatalog([]entity.Product{{ID: "P9", Price: decPtr("3.5")}})
	out = e.SelectProductByID(items, 0, "P9", catalog)
	assertDecimal(t, "3.5", out[0].UnitPrice)
	assertDecimal(t, "7", out[0].LineTotal)
}

func TestEngine_RemoveItem_MinimoUnaLinea(t *testing.T) {
	e := pricing.NewEngine(2)
	a := entity.LineItem{ProductRef: "A", Quantity: dec("1"), UnitPrice: dec("1"), LineTotal: dec("1")}
	b := entity.LineItem{ProductRef: "B", Quantity: dec("2"), UnitPrice: dec("1"), LineTotal: dec("2")}

	out := e.RemoveItem([]entity.LineItem{a}, 0)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].ProductRef)

	out = e.RemoveItem([]entity.LineItem{a, b}, 0)
	require.Len(t, out, 1)
	assert.Equal(t, "B", out[0].ProductRef)

	out = e.RemoveItem([]entity.LineItem{a, b}, 5)
	assert.Len(t, out, 2, "índice fuera de rango no cambia nada")
}

func TestEngine_IndiceFueraDeRango(t *testing.T) {
	e := pricing.NewEngine(2)
	items := []entity.LineItem{e.NewItem()}

	assert.Equal(t, items, e.SetQuantity(items, -1, dec("3")))
	assert.Equal(t, items, e.SetUnitPrice(items, 1, dec("3")))
	assert.Equal(t, items, e.SelectProduct(items, 2, &entity.Product{ID: "P"}))
	assert.Equal(t, items, e.SelectProductByID(items, 2, "P", nil))
}

func TestEngine_EscenarioCompleto(t *testing.T) {
	e := pricing.NewEngine(2)
	items := []entity.LineItem{e.NewItem()}

	items = e.AddItem(items)
	require.Len(t, items, 2)

	items = e.SelectProduct(items, 1, &entity.Product{ID: "P2", Price: decPtr("9.99")})
	assertDecimal(t, "9.99", items[1].UnitPrice)

	items = e.SetQuantity(items, 1, dec("3"))
	assertDecimal(t, "29.97", items[1].LineTotal)

	assertDecimal(t, "29.97", pricing.GrandTotal(items))
}

func TestEngine_RedondeoPorPrecision(t *testing.T) {
	e := pricing.NewEngine(0)
	items := e.SetUnitPrice([]entity.LineItem{e.NewItem()}, 0, dec("1000.6"))
	assertDecimal(t, "1001", items[0].LineTotal)

	e2 := pricing.NewEngine(2)
	items = e2.SetUnitPrice([]entity.LineItem{e2.NewItem()}, 0, dec("0.333"))
	items = e2.SetQuantity(items, 0, dec("3"))
	assertDecimal(t, "1", items[0].LineTotal)
}

func TestEngine_Normalize(t *testing.T) {
	e := pricing.NewEngine(2)
	items := []entity.LineItem{
		{ProductRef: "A", Quantity: dec("0"), UnitPrice: dec("-3"), LineTotal: dec("99")},
		{ProductRef: "B", Quantity: dec("2"), UnitPrice: dec("1.5"), LineTotal: dec("0")},
	}
	out := e.Normalize(items)
	assertDecimal(t, "1", out[0].Quantity)
	assertDecimal(t, "0", out[0].LineTotal)
	assertDecimal(t, "3", out[1].LineTotal)
}

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"3", "3", true},
		{" 2.5 ", "2.5", true},
		{"9,99", "9.99", true},
		{"-4", "-4", true},
		{"", "0", false},
		{"abc", "0", false},
		{"NaN", "0", false},
		{"1,000.50", "0", false},
	}
	for _, tc := range cases {
		got, ok := pricing.CoerceNumber(tc.raw)
		assert.Equal(t, tc.ok, ok, "entrada %q", tc.raw)
		if ok {
			assertDecimal(t, tc.want, got, tc.raw)
		}
	}

	_, ok := pricing.FromFloat(math.NaN())
	assert.False(t, ok)
	_, ok = pricing.FromFloat(math.Inf(1))
	assert.False(t, ok)
	v, ok := pricing.FromFloat(2.5)
	assert.True(t, ok)
	assertDecimal(t, "2.5", v)
}

func TestBound_MagnitudYEscala(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1e900000000", "99999999999999.9999"},
		{"-1e5000000", "-99999999999999.9999"},
		{"123456789012345", "99999999999999.9999"},
		{"99999999999999.99999", "99999999999999.9999"},
		{"0e900000000", "0"},
		{"1e-900000000", "0"},
		{"0.12345678", "0.123456"},
		{"99999999999999", "99999999999999"},
	}
	for _, tc := range cases {
		got, ok := pricing.CoerceNumber(tc.raw)
		require.True(t, ok, "entrada %q", tc.raw)
		assertDecimal(t, tc.want, got, tc.raw)
	}
}

func TestEngine_EntradaEnormeSeAcota(t *testing.T) {
	e := pricing.NewEngine(2)
	items := e.AddItem(nil)

	items = e.SetQuantityInput(items, 0, "1e900000000")
	items = e.SetUnitPriceInput(items, 0, "1e-900000000")
	assertDecimal(t, "99999999999999.9999", items[0].Quantity)
	assertDecimal(t, "0", items[0].UnitPrice)

	items = e.SetUnitPriceInput(items, 0, "2")
	assertDecimal(t, "200000000000000", items[0].LineTotal)
	assert.Less(t, len(pricing.GrandTotal(items).String()), 32)

	// Un precio negativo enorme cae a 0, una cantidad negativa al mínimo.
	items = e.SetUnitPriceInput(items, 0, "-1e900000000")
	items = e.SetQuantityInput(items, 0, "-1e900000000")
	assertDecimal(t, "0", items[0].UnitPrice)
	assertDecimal(t, "1", items[0].Quantity)

	// Los mismos límites al normalizar datos externos.
	out := e.Normalize([]entity.LineItem{{Quantity: decimal.New(1, 400000), UnitPrice: dec("1")}})
	assertDecimal(t, "99999999999999.9999", out[0].Quantity)
}
