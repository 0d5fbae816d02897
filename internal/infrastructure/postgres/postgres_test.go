package postgres

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/x?sslmode=disable", migrateURL("postgres://u:p@db:5432/x?sslmode=disable"))
	assert.Equal(t, "pgx5://db/x", migrateURL("postgresql://db/x"))
	assert.Equal(t, "pgx5://db/x", migrateURL("pgx5://db/x"))
}

func TestMigracionesEmbebidas(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups), "cada migración tiene su reversa")
}

func TestHelpers(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", *nullIfEmpty("x"))
	assert.Nil(t, limitArg(0))
	assert.Equal(t, 5, limitArg(5))
	d := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-01", formatDate(&d))
	assert.Empty(t, formatDate(nil))

	table, err := partyTable(entity.PartySupplier)
	require.NoError(t, err)
	assert.Equal(t, "suppliers", table)
	_, err = partyTable("vendor")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// memDocs repo de documentos en memoria para probar el gateway sin base de datos.
type memDocs struct {
	docs map[string]*entity.Document
}

func (m *memDocs) Create(_ context.Context, doc *entity.Document) error {
	if doc.ID == "" {
		doc.ID = "doc-1"
	}
	cp := *doc
	m.docs[doc.ID] = &cp
	return nil
}

func (m *memDocs) UpdateHeader(_ context.Context, doc *entity.Document) error {
	cur, ok := m.docs[doc.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Header = doc.Header
	cur.GrandTotal = doc.GrandTotal
	return nil
}

func (m *memDocs) ReplaceItems(_ context.Context, id string, items []entity.LineItem) error {
	m.docs[id].Items = items
	return nil
}

func (m *memDocs) GetByID(_ context.Context, companyID string, kind entity.DocumentKind, id string) (*entity.Document, error) {
	d, ok := m.docs[id]
	if !ok || d.CompanyID != companyID || d.Kind != kind {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

type directTx struct{ repo repository.DocumentRepository }

func (d directTx) RunDocuments(_ context.Context, fn func(repository.DocumentRepository) error) error {
	return fn(d.repo)
}

func TestDocumentGateway_CreateYUpdate(t *testing.T) {
	repo := &memDocs{docs: map[string]*entity.Document{}}
	gw := NewDocumentGateway(repo, directTx{repo})
	sess := &entity.Session{Identity: entity.Identity{CompanyID: "c1"}}
	ctx := context.Background()

	items := []entity.LineItem{{ProductRef: "p1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(5), LineTotal: decimal.NewFromInt(10)}}
	doc, err := gw.Create(ctx, sess, entity.KindQuote, entity.Header{PartyID: "c9", Date: "2026-10-01"}, items)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.True(t, doc.GrandTotal.Equal(decimal.NewFromInt(10)))

	items = append(items, entity.LineItem{ProductRef: "p2", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(3), LineTotal: decimal.NewFromInt(3)})
	updated, err := gw.Update(ctx, sess, entity.KindQuote, "doc-1", entity.Header{PartyID: "c9", Date: "2026-10-02"}, items)
	require.NoError(t, err)
	assert.True(t, updated.GrandTotal.Equal(decimal.NewFromInt(13)))
	assert.Len(t, repo.docs["doc-1"].Items, 2)

	_, err = gw.Update(ctx, sess, entity.KindInvoice, "doc-1", entity.Header{}, items)
	assert.ErrorIs(t, err, domain.ErrNotFound, "otro tipo de documento no se encuentra")

	other := &entity.Session{Identity: entity.Identity{CompanyID: "c2"}}
	got, err := gw.Get(ctx, other, entity.KindQuote, "doc-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
