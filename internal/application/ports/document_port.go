package ports

import (
	"context"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// DocumentGateway puerto de salida del colaborador de persistencia de documentos.
// Recibe solo documentos ya validados; tras un guardado exitoso el servidor es
// la fuente de verdad y devuelve el documento tal como quedó.
type DocumentGateway interface {
	Get(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, id string) (*entity.Document, error)
	Create(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, header entity.Header, items []entity.LineItem) (*entity.Document, error)
	Update(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, id string, header entity.Header, items []entity.LineItem) (*entity.Document, error)
}
