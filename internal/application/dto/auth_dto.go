package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT atado a la sesión creada.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// SessionResponse sesión actual (sin el token del API remoto).
type SessionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role,omitempty"`
	Currency  string    `json:"currency"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SetCurrencyRequest body para PUT /api/session/currency.
type SetCurrencyRequest struct {
	Currency string `json:"currency" validate:"required,len=3,alpha"`
}

// CurrencyListResponse monedas habilitadas para selección.
type CurrencyListResponse struct {
	Default   string   `json:"default"`
	Supported []string `json:"supported"`
}
