package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/pkg/logger"
)

// Client cliente HTTP del API REST remoto (fuente de verdad de catálogo y documentos).
// Cada llamada usa un fiber.Agent nuevo; el token de la sesión viaja como Bearer.
type Client struct {
	baseURL string
	timeout time.Duration
	log     *logger.Logger
}

// NewClient construye el cliente. baseURL sin barra final, p.ej. http://host/api.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		log:     log.Component("upstream"),
	}
}

// Error respuesta no exitosa del API remoto. Unwrap devuelve el error de dominio
// equivalente al código HTTP.
type Error struct {
	Status  int
	Message string
	kind    error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api remota: HTTP %d", e.Status)
	}
	return fmt.Sprintf("api remota: HTTP %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.kind }

func statusError(status int, body []byte) *Error {
	var kind error
	switch status {
	case fiber.StatusUnauthorized:
		kind = domain.ErrUnauthorized
	case fiber.StatusForbidden:
		kind = domain.ErrForbidden
	case fiber.StatusNotFound:
		kind = domain.ErrNotFound
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		kind = domain.ErrInvalidInput
	case fiber.StatusConflict:
		kind = domain.ErrConflict
	default:
		kind = domain.ErrUpstream
	}
	return &Error{Status: status, Message: errorMessage(body), kind: kind}
}

// errorMessage extrae message/error/detail del cuerpo si es JSON.
func errorMessage(body []byte) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "detail"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// do ejecuta la petición y devuelve el cuerpo de una respuesta 2xx.
// body nil no envía cuerpo. Errores de red se reportan como domain.ErrUpstream.
func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, fmt.Errorf("%w: url inválida: %v", domain.ErrUpstream, err)
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		a.JSON(body)
	}
	a.Timeout(timeout)

	start := time.Now()
	status, resp, errs := a.Bytes()
	if len(errs) > 0 {
		c.log.Warn().Str("method", method).Str("path", path).Err(errs[0]).Msg("api remota no disponible")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, errs[0])
	}
	c.log.Debug().Str("method", method).Str("path", path).Int("status", status).Dur("latency", time.Since(start)).Msg("api remota")
	if status < 200 || status > 299 {
		return nil, statusError(status, resp)
	}
	return resp, nil
}
