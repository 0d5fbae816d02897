package cache_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/cache"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	products int
	parties  int
}

func (s *countingSource) Products(context.Context, *entity.Session) ([]entity.Product, error) {
	s.products++
	p := decimal.RequireFromString("9.99")
	return []entity.Product{{ID: "p1", Name: "Tornillo", Price: &p}}, nil
}

func (s *countingSource) Parties(_ context.Context, _ *entity.Session, kind entity.PartyKind) ([]entity.Party, error) {
	s.parties++
	return []entity.Party{{ID: "x", Name: string(kind)}}, nil
}

type recorder struct{ results []string }

func (r *recorder) CacheLookup(resource, result string) {
	r.results = append(r.results, resource+":"+result)
}

func setup(t *testing.T) (*miniredis.Miniredis, *cache.CatalogCache, *countingSource, *recorder) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	src := &countingSource{}
	rec := &recorder{}
	return mr, cache.NewCatalogCache(src, client, time.Minute, rec, nil), src, rec
}

var sess = &entity.Session{ID: "s1", Identity: entity.Identity{CompanyID: "c1"}}

func TestCatalogCache_HitTrasMiss(t *testing.T) {
	mr, c, src, rec := setup(t)
	ctx := context.Background()

	first, err := c.Products(ctx, sess)
	require.NoError(t, err)
	second, err := c.Products(ctx, sess)
	require.NoError(t, err)

	assert.Equal(t, 1, src.products)
	require.Len(t, second, 1)
	require.NotNil(t, second[0].Price)
	assert.True(t, first[0].Price.Equal(*second[0].Price))
	assert.Equal(t, []string{"products:miss", "products:hit"}, rec.results)
	assert.True(t, mr.Exists("catalog:c1:products"))

	mr.FastForward(2 * time.Minute)
	_, err = c.Products(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 2, src.products, "vencido el TTL se recarga")
}

func TestCatalogCache_PartiesPorTipoEInvalidate(t *testing.T) {
	mr, c, src, _ := setup(t)
	ctx := context.Background()

	_, err := c.Parties(ctx, sess, entity.PartyCustomer)
	require.NoError(t, err)
	out, err := c.Parties(ctx, sess, entity.PartySupplier)
	require.NoError(t, err)
	assert.Equal(t, "supplier", out[0].Name)
	assert.Equal(t, 2, src.parties)

	require.NoError(t, c.Invalidate(ctx, sess))
	assert.False(t, mr.Exists("catalog:c1:customers"))
}

func TestCatalogCache_RedisCaidoDegradaALaFuente(t *testing.T) {
	mr, c, src, rec := setup(t)
	mr.Close()

	out, err := c.Products(context.Background(), sess)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 1, src.products)
	assert.Equal(t, []string{"products:error"}, rec.results)
}

type stubGateway struct{ err error }

func (g stubGateway) Get(context.Context, *entity.Session, entity.DocumentKind, string) (*entity.Document, error) {
	return nil, g.err
}

func (g stubGateway) Create(_ context.Context, _ *entity.Session, kind entity.DocumentKind, h entity.Header, items []entity.LineItem) (*entity.Document, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &entity.Document{ID: "d1", Kind: kind, Header: h, Items: items}, nil
}

func (g stubGateway) Update(_ context.Context, _ *entity.Session, kind entity.DocumentKind, id string, h entity.Header, items []entity.LineItem) (*entity.Document, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &entity.Document{ID: id, Kind: kind, Header: h, Items: items}, nil
}

func TestInvalidatingGateway_BorraCatalogoTrasGuardar(t *testing.T) {
	mr, c, src, _ := setup(t)
	ctx := context.Background()

	_, err := c.Products(ctx, sess)
	require.NoError(t, err)
	require.True(t, mr.Exists("catalog:c1:products"))

	failing := cache.NewInvalidatingGateway(stubGateway{err: assert.AnError}, c)
	_, err = failing.Create(ctx, sess, entity.KindInvoice, entity.Header{}, nil)
	require.ErrorIs(t, err, assert.AnError)
	assert.True(t, mr.Exists("catalog:c1:products"), "un guardado fallido no toca la caché")

	gw := cache.NewInvalidatingGateway(stubGateway{}, c)
	doc, err := gw.Update(ctx, sess, entity.KindPurchase, "d9", entity.Header{PartyID: "s1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "d9", doc.ID)
	assert.False(t, mr.Exists("catalog:c1:products"))

	_, err = c.Products(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 2, src.products)
}
