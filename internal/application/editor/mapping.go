package editor

import (
	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/pricing"
	"github.com/jhoicas/invorya-admin/pkg/money"
)

func (uc *EditorUseCase) toResponse(d *entity.Draft) *dto.DraftResponse {
	f := uc.currencies.Formatter(d.Header.Currency)
	grand := pricing.GrandTotal(d.Items)
	return &dto.DraftResponse{
		ID:                  d.ID,
		Kind:                string(d.Kind),
		DocumentID:          d.DocumentID,
		Header:              toHeaderResponse(d.Header, f),
		Items:               toItemResponses(d.Items, f),
		GrandTotal:          grand,
		GrandTotalFormatted: f.Format(grand),
	}
}

func (uc *EditorUseCase) toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	f := uc.currencies.Formatter(doc.Header.Currency)
	// El colaborador puede devolver totales sin redondear.
	items := pricing.NewEngine(f.Precision()).Normalize(doc.Items)
	grand := doc.GrandTotal.Round(f.Precision())
	if grand.IsZero() {
		grand = pricing.GrandTotal(items)
	}
	return &dto.DocumentResponse{
		ID:         doc.ID,
		Kind:       string(doc.Kind),
		Header:     toHeaderResponse(doc.Header, f),
		Items:      toItemResponses(items, f),
		GrandTotal: grand,
	}
}

func toHeaderResponse(h entity.Header, f *money.Formatter) dto.DraftHeaderResponse {
	currency := h.Currency
	if currency == "" {
		currency = f.Code()
	}
	return dto.DraftHeaderResponse{
		PartyID:  h.PartyID,
		Date:     h.Date,
		Status:   h.Status,
		Notes:    h.Notes,
		Currency: currency,
	}
}

func toItemResponses(items []entity.LineItem, f *money.Formatter) []dto.DraftItemResponse {
	out := make([]dto.DraftItemResponse, 0, len(items))
	for i, it := range items {
		out = append(out, dto.DraftItemResponse{
			Index:              i,
			ProductID:          it.ProductRef,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			LineTotal:          it.LineTotal,
			LineTotalFormatted: f.Format(it.LineTotal),
		})
	}
	return out
}
