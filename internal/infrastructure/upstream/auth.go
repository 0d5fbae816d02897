package upstream

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
)

var _ ports.Authenticator = (*Authenticator)(nil)

// Authenticator login contra POST /auth/login del API remoto.
type Authenticator struct {
	client *Client
}

func NewAuthenticator(client *Client) *Authenticator {
	return &Authenticator{client: client}
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	User        struct {
		ID        flexID `json:"id"`
		CompanyID flexID `json:"company_id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		Role      string `json:"role"`
	} `json:"user"`
}

// Authenticate devuelve la identidad y el token remoto que se guarda en la sesión.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*entity.Identity, string, error) {
	body, err := a.client.do(ctx, fiber.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", err
	}
	resp, err := decodeObject[loginResponse](body)
	if err != nil {
		return nil, "", err
	}
	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return nil, "", fmt.Errorf("%w: login sin token", domain.ErrUpstream)
	}
	identity := &entity.Identity{
		UserID:    string(resp.User.ID),
		CompanyID: string(resp.User.CompanyID),
		Email:     resp.User.Email,
		Name:      resp.User.Name,
		Role:      resp.User.Role,
	}
	if identity.Email == "" {
		identity.Email = email
	}
	if identity.UserID == "" {
		identity.UserID = identity.Email
	}
	return identity, token, nil
}
