package upstream

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

var _ ports.CatalogSource = (*CatalogSource)(nil)

// CatalogSource lee productos, clientes y proveedores del API remoto.
type CatalogSource struct {
	client *Client
}

func NewCatalogSource(client *Client) *CatalogSource {
	return &CatalogSource{client: client}
}

func (s *CatalogSource) Products(ctx context.Context, sess *entity.Session) ([]entity.Product, error) {
	body, err := s.client.do(ctx, fiber.MethodGet, "/products", sess.UpstreamToken, nil)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	records, err := decodeList[productRecord](body)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(records))
	for _, r := range records {
		out = append(out, r.toEntity())
	}
	return out, nil
}

func (s *CatalogSource) Parties(ctx context.Context, sess *entity.Session, kind entity.PartyKind) ([]entity.Party, error) {
	var path string
	switch kind {
	case entity.PartyCustomer:
		path = "/customers"
	case entity.PartySupplier:
		path = "/suppliers"
	default:
		return nil, domain.ErrInvalidInput
	}
	body, err := s.client.do(ctx, fiber.MethodGet, path, sess.UpstreamToken, nil)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", path[1:], err)
	}
	records, err := decodeList[partyRecord](body)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Party, 0, len(records))
	for _, r := range records {
		out = append(out, r.toEntity())
	}
	return out, nil
}
