package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo clientes y proveedores (tablas customers y suppliers).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

func partyTable(kind entity.PartyKind) (string, error) {
	switch kind {
	case entity.PartyCustomer:
		return "customers", nil
	case entity.PartySupplier:
		return "suppliers", nil
	}
	return "", domain.ErrInvalidInput
}

// ListByCompany lista por nombre. limit <= 0 devuelve todos.
func (r *PartyRepo) ListByCompany(ctx context.Context, kind entity.PartyKind, companyID string, limit, offset int) ([]*entity.Party, error) {
	table, err := partyTable(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT id, name, tax_id, email, phone FROM ` + table + `
		WHERE company_id = $1 ORDER BY name, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	var list []*entity.Party
	for rows.Next() {
		var p entity.Party
		if err := rows.Scan(&p.ID, &p.Name, &p.TaxID, &p.Email, &p.Phone); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
