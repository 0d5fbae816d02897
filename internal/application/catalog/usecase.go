package catalog

import (
	"context"
	"strings"

	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/pkg/money"
)

// CatalogUseCase listados de referencia para los selectores del editor:
// productos con su precio canónico, clientes y proveedores.
type CatalogUseCase struct {
	source     ports.CatalogSource
	currencies *money.Registry
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(source ports.CatalogSource, currencies *money.Registry) *CatalogUseCase {
	return &CatalogUseCase{source: source, currencies: currencies}
}

// Products lista productos filtrando por nombre o SKU (sin distinguir mayúsculas).
func (uc *CatalogUseCase) Products(ctx context.Context, sess *entity.Session, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	all, err := uc.source.Products(ctx, sess)
	if err != nil {
		return nil, err
	}
	f := uc.currencies.Formatter(sess.Currency)
	matched := make([]dto.ProductResponse, 0, len(all))
	for i := range all {
		p := &all[i]
		if !matches(page.Search, p.Name, p.SKU) {
			continue
		}
		out := dto.ProductResponse{
			ID:          p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			Description: p.Description,
			Stock:       p.Stock,
		}
		if price, ok := p.CanonicalPrice(); ok {
			out.Price = &price
			out.PriceFormatted = f.Format(price)
		}
		matched = append(matched, out)
	}
	items, pr := paginate(matched, page)
	return &dto.ProductListResponse{Items: items, Page: pr}, nil
}

// Parties lista clientes o proveedores filtrando por nombre o NIT.
func (uc *CatalogUseCase) Parties(ctx context.Context, sess *entity.Session, kind entity.PartyKind, page dto.PageRequest) (*dto.PartyListResponse, error) {
	if kind != entity.PartyCustomer && kind != entity.PartySupplier {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	all, err := uc.source.Parties(ctx, sess, kind)
	if err != nil {
		return nil, err
	}
	matched := make([]dto.PartyResponse, 0, len(all))
	for _, p := range all {
		if !matches(page.Search, p.Name, p.TaxID) {
			continue
		}
		matched = append(matched, dto.PartyResponse{ID: p.ID, Name: p.Name, TaxID: p.TaxID, Email: p.Email, Phone: p.Phone})
	}
	items, pr := paginate(matched, page)
	return &dto.PartyListResponse{Items: items, Page: pr}, nil
}

func matches(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func paginate[T any](all []T, page dto.PageRequest) ([]T, dto.PageResponse) {
	pr := dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(all)}
	if page.Offset >= len(all) {
		return []T{}, pr
	}
	end := page.Offset + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[page.Offset:end], pr
}
