package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jhoicas/invorya-admin/internal/application/catalog"
	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	products []entity.Product
	parties  map[entity.PartyKind][]entity.Party
	err      error
}

func (s *stubSource) Products(context.Context, *entity.Session) ([]entity.Product, error) {
	return s.products, s.err
}

func (s *stubSource) Parties(_ context.Context, _ *entity.Session, kind entity.PartyKind) ([]entity.Party, error) {
	return s.parties[kind], s.err
}

func newUseCase(t *testing.T, src *stubSource) *catalog.CatalogUseCase {
	t.Helper()
	reg, err := money.NewRegistry("USD", []string{"USD"}, "en-US")
	require.NoError(t, err)
	return catalog.NewCatalogUseCase(src, reg)
}

var sess = &entity.Session{ID: "s1", Currency: "USD"}

func TestProducts_PrecioCanonicoYBusqueda(t *testing.T) {
	sale := decimal.RequireFromString("4.5")
	src := &stubSource{products: []entity.Product{
		{ID: "1", SKU: "TOR-01", Name: "Tornillo", SalePrice: &sale},
		{ID: "2", SKU: "SRV-01", Name: "Servicio de instalación"},
	}}
	uc := newUseCase(t, src)

	out, err := uc.Products(context.Background(), sess, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	require.NotNil(t, out.Items[0].Price)
	assert.True(t, out.Items[0].Price.Equal(sale))
	assert.Contains(t, out.Items[0].PriceFormatted, "4.50")
	assert.Nil(t, out.Items[1].Price)
	assert.Equal(t, 20, out.Page.Limit)

	out, err = uc.Products(context.Background(), sess, dto.PageRequest{Search: "tor-"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "1", out.Items[0].ID)
}

func TestProducts_Paginacion(t *testing.T) {
	src := &stubSource{}
	for i := 0; i < 25; i++ {
		src.products = append(src.products, entity.Product{ID: fmt.Sprint(i), Name: fmt.Sprintf("P%02d", i)})
	}
	uc := newUseCase(t, src)

	out, err := uc.Products(context.Background(), sess, dto.PageRequest{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Len(t, out.Items, 5)
	assert.Equal(t, 25, out.Page.Total)

	out, err = uc.Products(context.Background(), sess, dto.PageRequest{Limit: 10, Offset: 40})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestParties(t *testing.T) {
	src := &stubSource{parties: map[entity.PartyKind][]entity.Party{
		entity.PartySupplier: {{ID: "s1", Name: "Ferretería Central", TaxID: "900123"}},
	}}
	uc := newUseCase(t, src)

	out, err := uc.Parties(context.Background(), sess, entity.PartySupplier, dto.PageRequest{Search: "9001"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Ferretería Central", out.Items[0].Name)

	_, err = uc.Parties(context.Background(), sess, entity.PartyKind("vendor"), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	src.err = errors.New("caído")
	_, err = uc.Parties(context.Background(), sess, entity.PartyCustomer, dto.PageRequest{})
	assert.Error(t, err)
}
