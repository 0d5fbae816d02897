package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/submission"
)

// errInvalidBody cuerpo JSON ilegible.
var errInvalidBody = errors.New("cuerpo inválido")

// writeError traduce errores de dominio a la respuesta HTTP. Es el único lugar
// donde se decide el código de estado de un error.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var verr *submission.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    "INVALID_" + strings.ToUpper(string(verr.Rule)),
			Message: verr.Message,
		}
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: describeFields(fields)}
	}

	switch {
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	case errors.Is(err, domain.ErrDraftNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "DRAFT_NOT_FOUND", Message: domain.ErrDraftNotFound.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()}
	case errors.Is(err, domain.ErrSessionExpired):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: domain.ErrSessionExpired.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: domain.ErrUnauthorized.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: domain.ErrForbidden.Error()}
	case errors.Is(err, domain.ErrUnsupportedKind):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "UNSUPPORTED_KIND", Message: domain.ErrUnsupportedKind.Error()}
	case errors.Is(err, domain.ErrCurrency):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "UNSUPPORTED_CURRENCY", Message: domain.ErrCurrency.Error()}
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPSTREAM", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

func describeFields(fields validator.ValidationErrors) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", f.Field(), f.Tag(), f.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field(), f.Tag()))
	}
	return strings.Join(parts, "; ")
}
