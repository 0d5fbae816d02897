package entity

import "time"

// Draft estado en memoria, sin guardar, de un documento abierto en el editor.
// Pertenece a la sesión que lo abrió durante toda su vida.
type Draft struct {
	ID         string
	SessionID  string
	Kind       DocumentKind
	DocumentID string // vacío = creación; con valor = edición de un documento existente
	Header     Header
	Items      []LineItem
	OpenedAt   time.Time
	TouchedAt  time.Time
	Submitting bool // hay un envío en curso
}

// IsUpdate indica si el borrador edita un documento existente.
func (d *Draft) IsUpdate() bool {
	return d.DocumentID != ""
}

// Clone copia el borrador sin compartir el slice de líneas.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Items = append([]LineItem(nil), d.Items...)
	return &cp
}
