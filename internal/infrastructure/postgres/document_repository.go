package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo facturas, compras y cotizaciones (tabla documents + document_items).
// Create y ReplaceItems deben ir dentro de la misma transacción (ver TxRunner).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste la cabecera y las líneas.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO documents (id, company_id, kind, party_id, date, status, notes, currency, grand_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::text::date, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.CompanyID, string(doc.Kind), doc.Header.PartyID,
		nullIfEmpty(doc.Header.Date), nullIfEmpty(doc.Header.Status), nullIfEmpty(doc.Header.Notes), nullIfEmpty(doc.Header.Currency),
		doc.GrandTotal, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return r.ReplaceItems(ctx, doc.ID, doc.Items)
}

// UpdateHeader actualiza cabecera y total general. ErrNotFound si no existe.
func (r *DocumentRepo) UpdateHeader(ctx context.Context, doc *entity.Document) error {
	query := `
		UPDATE documents
		SET party_id    = $3,
		    date        = $4::text::date,
		    status      = $5,
		    notes       = $6,
		    currency    = COALESCE($7, currency),
		    grand_total = $8,
		    updated_at  = $9
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		doc.ID, doc.CompanyID, doc.Header.PartyID,
		nullIfEmpty(doc.Header.Date), nullIfEmpty(doc.Header.Status), nullIfEmpty(doc.Header.Notes), nullIfEmpty(doc.Header.Currency),
		doc.GrandTotal, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceItems reemplaza todas las líneas del documento en un solo batch.
func (r *DocumentRepo) ReplaceItems(ctx context.Context, documentID string, items []entity.LineItem) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM document_items WHERE document_id = $1`, documentID)
	for i, it := range items {
		batch.Queue(`
			INSERT INTO document_items (document_id, position, product_id, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			documentID, i, it.ProductRef, it.Quantity, it.UnitPrice, it.LineTotal)
	}
	br := r.q.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("replace document items: %w", err)
		}
	}
	return br.Close()
}

// GetByID carga el documento con sus líneas; nil si no existe para esa empresa y tipo.
func (r *DocumentRepo) GetByID(ctx context.Context, companyID string, kind entity.DocumentKind, id string) (*entity.Document, error) {
	query := `
		SELECT id, company_id, kind, party_id, date, status, notes, currency, grand_total, created_at, updated_at
		FROM documents WHERE id = $1 AND company_id = $2 AND kind = $3`
	var (
		doc                     entity.Document
		kindStr                 string
		date                    *time.Time
		status, notes, currency *string
	)
	err := r.q.QueryRow(ctx, query, id, companyID, string(kind)).Scan(
		&doc.ID, &doc.CompanyID, &kindStr, &doc.Header.PartyID, &date, &status, &notes, &currency,
		&doc.GrandTotal, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	doc.Kind = entity.DocumentKind(kindStr)
	doc.Header.Date = formatDate(date)
	doc.Header.Status = derefStr(status)
	doc.Header.Notes = derefStr(notes)
	doc.Header.Currency = derefStr(currency)

	rows, err := r.q.Query(ctx, `
		SELECT product_id, quantity, unit_price, line_total
		FROM document_items WHERE document_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ProductRef, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		doc.Items = append(doc.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &doc, nil
}
