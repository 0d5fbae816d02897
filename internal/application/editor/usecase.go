package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/pricing"
	"github.com/jhoicas/invorya-admin/internal/domain/submission"
	"github.com/jhoicas/invorya-admin/pkg/logger"
	"github.com/jhoicas/invorya-admin/pkg/money"
)

// EditorUseCase sesiones de edición de facturas, compras y cotizaciones.
// Cada operación aplica el motor de precios de forma síncrona y guarda el
// borrador resultante, así los totales nunca quedan desfasados de las entradas.
type EditorUseCase struct {
	drafts     DraftStore
	catalog    ports.CatalogSource
	documents  ports.DocumentGateway
	currencies *money.Registry
	metrics    Metrics
	log        *logger.Logger
	now        func() time.Time
}

// NewEditorUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewEditorUseCase(
	drafts DraftStore,
	catalog ports.CatalogSource,
	documents ports.DocumentGateway,
	currencies *money.Registry,
	metrics Metrics,
	log *logger.Logger,
) *EditorUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &EditorUseCase{
		drafts:     drafts,
		catalog:    catalog,
		documents:  documents,
		currencies: currencies,
		metrics:    metrics,
		log:        log.Component("editor"),
		now:        time.Now,
	}
}

// Open abre un borrador nuevo con una línea vacía o, si documentID no está
// vacío, carga el documento existente para editarlo.
func (uc *EditorUseCase) Open(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, documentID string) (*dto.DraftResponse, error) {
	if _, ok := entity.SpecFor(kind); !ok {
		return nil, domain.ErrUnsupportedKind
	}
	now := uc.now()
	d := &entity.Draft{
		ID:         uuid.New().String(),
		SessionID:  sess.ID,
		Kind:       kind,
		DocumentID: documentID,
		Header:     entity.Header{Currency: sess.Currency},
		OpenedAt:   now,
		TouchedAt:  now,
	}
	if documentID != "" {
		doc, err := uc.documents.Get(ctx, sess, kind, documentID)
		if err != nil {
			return nil, fmt.Errorf("cargar %s %s: %w", kind, documentID, err)
		}
		if doc == nil {
			return nil, domain.ErrNotFound
		}
		d.Header = doc.Header
		if d.Header.Currency == "" {
			d.Header.Currency = sess.Currency
		}
		d.Items = uc.engineFor(d).Normalize(doc.Items)
	}
	if len(d.Items) == 0 {
		d.Items = []entity.LineItem{uc.engineFor(d).NewItem()}
	}
	if err := uc.drafts.Save(d); err != nil {
		return nil, err
	}
	uc.metrics.DraftOpened(kind)
	uc.log.Debug().Str("draft_id", d.ID).Str("kind", string(kind)).Str("document_id", documentID).Msg("borrador abierto")
	return uc.toResponse(d), nil
}

// Get devuelve el estado actual del borrador.
func (uc *EditorUseCase) Get(sess *entity.Session, id string) (*dto.DraftResponse, error) {
	d, err := uc.owned(sess, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(d), nil
}

// UpdateHeader reemplaza la cabecera. Un cambio de moneda recalcula las líneas
// con la precisión de la nueva moneda.
func (uc *EditorUseCase) UpdateHeader(sess *entity.Session, id string, in dto.HeaderRequest) (*dto.DraftResponse, error) {
	if in.Currency != "" && !uc.currencies.IsSupported(in.Currency) {
		return nil, domain.ErrCurrency
	}
	return uc.mutate(sess, id, func(d *entity.Draft, _ *pricing.Engine) {
		currency := d.Header.Currency
		if in.Currency != "" {
			currency = uc.currencies.Formatter(in.Currency).Code()
		}
		changed := currency != d.Header.Currency
		d.Header = entity.Header{
			PartyID:  in.PartyID,
			Date:     in.Date,
			Status:   in.Status,
			Notes:    in.Notes,
			Currency: currency,
		}
		if changed {
			d.Items = uc.engineFor(d).Normalize(d.Items)
		}
	})
}

// AddItem agrega una línea vacía.
func (uc *EditorUseCase) AddItem(sess *entity.Session, id string) (*dto.DraftResponse, error) {
	return uc.mutate(sess, id, func(d *entity.Draft, e *pricing.Engine) {
		d.Items = e.AddItem(d.Items)
	})
}

// RemoveItem quita una línea; la última línea nunca se elimina.
func (uc *EditorUseCase) RemoveItem(sess *entity.Session, id string, index int) (*dto.DraftResponse, error) {
	return uc.mutate(sess, id, func(d *entity.Draft, e *pricing.Engine) {
		d.Items = e.RemoveItem(d.Items, index)
	})
}

// SetQuantity aplica la cantidad escrita por el usuario (corrección silenciosa).
func (uc *EditorUseCase) SetQuantity(sess *entity.Session, id string, index int, raw string) (*dto.DraftResponse, error) {
	return uc.mutate(sess, id, func(d *entity.Draft, e *pricing.Engine) {
		d.Items = e.SetQuantityInput(d.Items, index, raw)
	})
}

// SetUnitPrice aplica el precio escrito por el usuario (corrección silenciosa).
func (uc *EditorUseCase) SetUnitPrice(sess *entity.Session, id string, index int, raw string) (*dto.DraftResponse, error) {
	return uc.mutate(sess, id, func(d *entity.Draft, e *pricing.Engine) {
		d.Items = e.SetUnitPriceInput(d.Items, index, raw)
	})
}

// SelectProduct asigna el producto a la línea tomando su precio del catálogo.
// Si el catálogo no se puede cargar el borrador no cambia.
func (uc *EditorUseCase) SelectProduct(ctx context.Context, sess *entity.Session, id string, index int, productID string) (*dto.DraftResponse, error) {
	if _, err := uc.owned(sess, id); err != nil {
		return nil, err
	}
	var catalog pricing.Catalog
	if productID != "" {
		products, err := uc.catalog.Products(ctx, sess)
		if err != nil {
			uc.log.Warn().Err(err).Str("draft_id", id).Msg("catálogo no disponible")
			return nil, fmt.Errorf("cargar catálogo: %w", err)
		}
		catalog = pricing.NewCatalog(products)
	}
	return uc.mutate(sess, id, func(d *entity.Draft, e *pricing.Engine) {
		d.Items = e.SelectProductByID(d.Items, index, productID, catalog)
	})
}

// Submit valida y envía el borrador al colaborador de persistencia.
// Con validación fallida o error remoto el borrador queda intacto para
// corregir o reintentar; solo un guardado exitoso lo elimina. Mientras un
// envío está en curso otro Submit del mismo borrador devuelve ErrConflict.
func (uc *EditorUseCase) Submit(ctx context.Context, sess *entity.Session, id string) (*dto.DocumentResponse, error) {
	d, err := uc.claim(sess, id)
	if err != nil {
		return nil, err
	}
	if res := submission.Validate(d.Kind, d.Header, d.Items); !res.OK {
		uc.release(id)
		uc.metrics.Submission(d.Kind, ResultInvalid)
		uc.log.Debug().Str("draft_id", id).Str("rule", string(res.Rule)).Msg("envío rechazado por validación")
		return nil, res.Err()
	}

	var doc *entity.Document
	if d.IsUpdate() {
		doc, err = uc.documents.Update(ctx, sess, d.Kind, d.DocumentID, d.Header, d.Items)
	} else {
		doc, err = uc.documents.Create(ctx, sess, d.Kind, d.Header, d.Items)
	}
	if err != nil {
		uc.release(id)
		uc.metrics.Submission(d.Kind, ResultUpstream)
		uc.log.Warn().Err(err).Str("draft_id", id).Str("kind", string(d.Kind)).Msg("guardado falló, borrador conservado")
		return nil, fmt.Errorf("guardar %s: %w", d.Kind, err)
	}

	if err := uc.drafts.Delete(id); err != nil {
		uc.log.Debug().Err(err).Str("draft_id", id).Msg("borrador ya descartado al cerrar el envío")
	}
	uc.metrics.Submission(d.Kind, ResultOK)
	uc.log.Info().Str("draft_id", id).Str("kind", string(d.Kind)).Str("document_id", doc.ID).Msg("documento guardado")
	return uc.toDocumentResponse(doc), nil
}

// claim marca el borrador como en envío y devuelve la instantánea a enviar.
func (uc *EditorUseCase) claim(sess *entity.Session, id string) (*entity.Draft, error) {
	return uc.drafts.Update(id, func(d *entity.Draft) error {
		if d.SessionID != sess.ID {
			return domain.ErrForbidden
		}
		if d.Submitting {
			return fmt.Errorf("%w: el borrador ya se está guardando", domain.ErrConflict)
		}
		d.Submitting = true
		return nil
	})
}

// release libera el borrador tras un envío fallido para permitir el reintento.
func (uc *EditorUseCase) release(id string) {
	_, err := uc.drafts.Update(id, func(d *entity.Draft) error {
		d.Submitting = false
		return nil
	})
	if err != nil {
		uc.log.Debug().Err(err).Str("draft_id", id).Msg("borrador descartado durante el envío")
	}
}

// Cancel descarta el borrador sin persistir nada.
func (uc *EditorUseCase) Cancel(sess *entity.Session, id string) error {
	if _, err := uc.owned(sess, id); err != nil {
		return err
	}
	return uc.drafts.Delete(id)
}

// DiscardSession elimina todos los borradores de una sesión (logout).
func (uc *EditorUseCase) DiscardSession(sessionID string) int {
	return uc.drafts.DeleteBySession(sessionID)
}

// RunSweeper elimina periódicamente los borradores inactivos por más de ttl.
// Bloquea hasta que ctx se cancela.
func (uc *EditorUseCase) RunSweeper(ctx context.Context, every, ttl time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := uc.drafts.DeleteIdle(uc.now().Add(-ttl)); n > 0 {
				uc.log.Info().Int("count", n).Msg("borradores inactivos descartados")
			}
		}
	}
}

func (uc *EditorUseCase) owned(sess *entity.Session, id string) (*entity.Draft, error) {
	d, err := uc.drafts.Get(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrDraftNotFound
	}
	if d.SessionID != sess.ID {
		return nil, domain.ErrForbidden
	}
	return d, nil
}

func (uc *EditorUseCase) mutate(sess *entity.Session, id string, fn func(d *entity.Draft, e *pricing.Engine)) (*dto.DraftResponse, error) {
	d, err := uc.drafts.Update(id, func(d *entity.Draft) error {
		if d.SessionID != sess.ID {
			return domain.ErrForbidden
		}
		fn(d, uc.engineFor(d))
		d.TouchedAt = uc.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(d), nil
}

func (uc *EditorUseCase) engineFor(d *entity.Draft) *pricing.Engine {
	return pricing.NewEngine(uc.currencies.Formatter(d.Header.Currency).Precision())
}
