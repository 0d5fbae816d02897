package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User usuario del backend postgres (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity resultado de una autenticación exitosa, independiente del backend.
type Identity struct {
	UserID    string
	CompanyID string
	Email     string
	Name      string
	Role      string
}

// Session sesión explícita de un usuario logueado: se crea en el login y se
// elimina en el logout. Reemplaza el almacenamiento global del navegador.
type Session struct {
	ID            string
	Identity      Identity
	UpstreamToken string // token del API remoto; vacío en backend postgres
	Currency      string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// Expired indica si la sesión venció en el instante now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
