package ports

import (
	"context"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

// Authenticator verifica credenciales contra el backend configurado.
// Devuelve la identidad y, si el backend lo emite, el token del API remoto.
// Credenciales incorrectas deben devolver domain.ErrUnauthorized.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.Identity, string, error)
}

// SessionStore almacén de sesiones explícitas (creadas en login, borradas en logout).
type SessionStore interface {
	Save(sess *entity.Session) error
	// Get devuelve nil si la sesión no existe.
	Get(id string) (*entity.Session, error)
	Delete(id string) error
}
