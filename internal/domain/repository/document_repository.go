package repository

import (
	"context"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// DocumentRepository puerto de persistencia de facturas, compras y cotizaciones
// con sus líneas. Las escrituras de cabecera y líneas van en la misma transacción.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	UpdateHeader(ctx context.Context, doc *entity.Document) error
	ReplaceItems(ctx context.Context, documentID string, items []entity.LineItem) error
	// GetByID devuelve nil, nil si no existe o pertenece a otra empresa/tipo.
	GetByID(ctx context.Context, companyID string, kind entity.DocumentKind, id string) (*entity.Document, error)
}
