package editor

import (
	"time"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// DraftStore almacén de borradores en memoria del editor.
// Update ejecuta fn con el borrador bloqueado; si fn devuelve error no se guarda nada.
type DraftStore interface {
	Save(d *entity.Draft) error
	// Get devuelve una copia; nil si no existe.
	Get(id string) (*entity.Draft, error)
	Update(id string, fn func(d *entity.Draft) error) (*entity.Draft, error)
	Delete(id string) error
	DeleteBySession(sessionID string) int
	// DeleteIdle elimina los borradores sin actividad desde before.
	DeleteIdle(before time.Time) int
}

// Resultados de envío para métricas.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultUpstream = "upstream_error"
)

// Metrics observaciones del editor. Implementación nil-safe: ver noopMetrics.
type Metrics interface {
	DraftOpened(kind entity.DocumentKind)
	Submission(kind entity.DocumentKind, result string)
}

type noopMetrics struct{}

func (noopMetrics) DraftOpened(entity.DocumentKind)        {}
func (noopMetrics) Submission(entity.DocumentKind, string) {}
