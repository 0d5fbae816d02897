package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrDraftNotFound   = errors.New("borrador no encontrado")
	ErrSessionExpired  = errors.New("sesión expirada o cerrada")
	ErrUpstream        = errors.New("error del servicio remoto")
	ErrUnsupportedKind = errors.New("tipo de documento no soportado")
	ErrCurrency        = errors.New("moneda no soportada")
)
