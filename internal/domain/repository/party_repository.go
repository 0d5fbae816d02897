package repository

import (
	"context"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// PartyRepository puerto de lectura de clientes y proveedores.
type PartyRepository interface {
	ListByCompany(ctx context.Context, kind entity.PartyKind, companyID string, limit, offset int) ([]*entity.Party, error)
}
