package upstream

import (
	"bytes"
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/pricing"
	"github.com/jhoicas/invorya-admin/internal/domain/submission"
)

var _ ports.DocumentGateway = (*DocumentGateway)(nil)

// DocumentGateway CRUD de facturas, compras y cotizaciones en el API remoto:
// GET /{resource}/{id}, POST /{resource}, PUT /{resource}/{id}.
type DocumentGateway struct {
	client *Client
	opts   submission.PayloadOptions
}

func NewDocumentGateway(client *Client, opts submission.PayloadOptions) *DocumentGateway {
	return &DocumentGateway{client: client, opts: opts}
}

// Get devuelve nil, nil si el documento no existe.
func (g *DocumentGateway) Get(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, id string) (*entity.Document, error) {
	spec, ok := entity.SpecFor(kind)
	if !ok {
		return nil, domain.ErrUnsupportedKind
	}
	body, err := g.client.do(ctx, fiber.MethodGet, "/"+spec.Resource+"/"+url.PathEscape(id), sess.UpstreamToken, nil)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rec, err := decodeObject[documentRecord](body)
	if err != nil {
		return nil, err
	}
	doc := rec.toEntity(kind)
	if doc.ID == "" {
		doc.ID = id
	}
	return doc, nil
}

func (g *DocumentGateway) Create(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, header entity.Header, items []entity.LineItem) (*entity.Document, error) {
	spec, ok := entity.SpecFor(kind)
	if !ok {
		return nil, domain.ErrUnsupportedKind
	}
	return g.save(ctx, sess, kind, fiber.MethodPost, "/"+spec.Resource, "", header, items)
}

func (g *DocumentGateway) Update(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, id string, header entity.Header, items []entity.LineItem) (*entity.Document, error) {
	spec, ok := entity.SpecFor(kind)
	if !ok {
		return nil, domain.ErrUnsupportedKind
	}
	return g.save(ctx, sess, kind, fiber.MethodPut, "/"+spec.Resource+"/"+url.PathEscape(id), id, header, items)
}

// save envía el payload. Si la respuesta no trae el documento completo se
// devuelve lo enviado con el ID asignado por el servidor.
func (g *DocumentGateway) save(ctx context.Context, sess *entity.Session, kind entity.DocumentKind, method, path, id string, header entity.Header, items []entity.LineItem) (*entity.Document, error) {
	payload, err := submission.Payload(kind, header, items, g.opts)
	if err != nil {
		return nil, err
	}
	body, err := g.client.do(ctx, method, path, sess.UpstreamToken, payload)
	if err != nil {
		return nil, err
	}

	sent := &entity.Document{
		ID:         id,
		Kind:       kind,
		Header:     header,
		Items:      items,
		GrandTotal: pricing.GrandTotal(items),
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return sent, nil
	}
	rec, err := decodeObject[documentRecord](body)
	if err != nil {
		g.client.log.Warn().Err(err).Str("path", path).Msg("respuesta de guardado no interpretable")
		return sent, nil
	}
	if rec.ID != "" {
		sent.ID = string(rec.ID)
	}
	if len(rec.Items) > 0 {
		saved := rec.toEntity(kind)
		saved.ID = sent.ID
		if saved.Header.Currency == "" {
			saved.Header.Currency = header.Currency
		}
		return saved, nil
	}
	return sent, nil
}
