package cache

import (
	"context"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

var _ ports.DocumentGateway = (*InvalidatingGateway)(nil)

// InvalidatingGateway borra la instantánea del catálogo de la empresa después
// de cada guardado exitoso: facturas y compras mueven existencias.
type InvalidatingGateway struct {
	next  ports.DocumentGateway
	cache *CatalogCache
}

// NewInvalidatingGateway construye el decorador.
func NewInvalidatingGateway(next ports.DocumentGateway, cache *CatalogCache) *InvalidatingGateway {
	return &InvalidatingGateway{next: next, cache: cache}
}

func (g *InvalidatingGateway) Get(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, id string) (*entity.Document, error) {
	return g.next.Get(ctx, sess, kind, id)
}

func (g *InvalidatingGateway) Create(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, header entity.Header, items []entity.LineItem) (*entity.Document, error) {
	doc, err := g.next.Create(ctx, sess, kind, header, items)
	if err == nil {
		g.invalidate(ctx, sess)
	}
	return doc, err
}

func (g *InvalidatingGateway) Update(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, id string, header entity.Header, items []entity.LineItem) (*entity.Document, error) {
	doc, err := g.next.Update(ctx, sess, kind, id, header, items)
	if err == nil {
		g.invalidate(ctx, sess)
	}
	return doc, err
}

// invalidate nunca falla el guardado: el documento ya quedó persistido.
func (g *InvalidatingGateway) invalidate(ctx context.Context, sess *entity.Session) {
	if err := g.cache.Invalidate(ctx, sess); err != nil {
		g.cache.log.Warn().Err(err).Str("company_id", sess.Identity.CompanyID).Msg("no se pudo invalidar el catálogo")
	}
}
