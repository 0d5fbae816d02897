package ports

import (
	"context"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// CatalogSource puerto de salida del colaborador de catálogo (solo lectura).
// Devuelve la instantánea completa de la empresa de la sesión; el filtrado y la
// paginación para la UI se hacen en la capa de aplicación.
type CatalogSource interface {
	Products(ctx context.Context, sess *entity.Session) ([]entity.Product, error)
	Parties(ctx context.Context, sess *entity.Session, kind entity.PartyKind) ([]entity.Party, error)
}
