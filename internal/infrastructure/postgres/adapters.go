package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/pricing"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

var (
	_ ports.CatalogSource   = (*CatalogSource)(nil)
	_ ports.DocumentGateway = (*DocumentGateway)(nil)
)

// CatalogSource catálogo de la empresa de la sesión leído de PostgreSQL.
type CatalogSource struct {
	products repository.ProductRepository
	parties  repository.PartyRepository
}

func NewCatalogSource(products repository.ProductRepository, parties repository.PartyRepository) *CatalogSource {
	return &CatalogSource{products: products, parties: parties}
}

func (s *CatalogSource) Products(ctx context.Context, sess *entity.Session) ([]entity.Product, error) {
	list, err := s.products.ListByCompany(ctx, sess.Identity.CompanyID, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(list))
	for _, p := range list {
		out = append(out, *p)
	}
	return out, nil
}

func (s *CatalogSource) Parties(ctx context.Context, sess *entity.Session, kind entity.PartyKind) ([]entity.Party, error) {
	list, err := s.parties.ListByCompany(ctx, kind, sess.Identity.CompanyID, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Party, 0, len(list))
	for _, p := range list {
		out = append(out, *p)
	}
	return out, nil
}

// DocumentTxRunner transacción con el repo de documentos.
type DocumentTxRunner interface {
	RunDocuments(ctx context.Context, fn func(docs repository.DocumentRepository) error) error
}

// DocumentGateway guarda documentos en PostgreSQL: cabecera y líneas en la misma transacción.
type DocumentGateway struct {
	docs repository.DocumentRepository
	tx   DocumentTxRunner
	now  func() time.Time
}

func NewDocumentGateway(docs repository.DocumentRepository, tx DocumentTxRunner) *DocumentGateway {
	return &DocumentGateway{docs: docs, tx: tx, now: time.Now}
}

func (g *DocumentGateway) Get(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, id string) (*entity.Document, error) {
	return g.docs.GetByID(ctx, sess.Identity.CompanyID, kind, id)
}

func (g *DocumentGateway) Create(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, header entity.Header, items []entity.LineItem) (*entity.Document, error) {
	now := g.now()
	doc := &entity.Document{
		CompanyID:  sess.Identity.CompanyID,
		Kind:       kind,
		Header:     header,
		Items:      items,
		GrandTotal: pricing.GrandTotal(items),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := g.tx.RunDocuments(ctx, func(docs repository.DocumentRepository) error {
		return docs.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (g *DocumentGateway) Update(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, id string, header entity.Header, items []entity.LineItem) (*entity.Document, error) {
	var saved *entity.Document
	err := g.tx.RunDocuments(ctx, func(docs repository.DocumentRepository) error {
		cur, err := docs.GetByID(ctx, sess.Identity.CompanyID, kind, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		cur.Header = header
		cur.Items = items
		cur.GrandTotal = pricing.GrandTotal(items)
		cur.UpdatedAt = g.now()
		if err := docs.UpdateHeader(ctx, cur); err != nil {
			return err
		}
		if err := docs.ReplaceItems(ctx, id, items); err != nil {
			return err
		}
		saved = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
