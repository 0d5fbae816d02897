package auth

import (
	"context"

	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// PasswordAuthenticator verifica email/password contra la tabla users (backend postgres).
type PasswordAuthenticator struct {
	users repository.UserRepository
}

func NewPasswordAuthenticator(users repository.UserRepository) *PasswordAuthenticator {
	return &PasswordAuthenticator{users: users}
}

// Authenticate compara el hash bcrypt. No hay token remoto en este backend.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (*entity.Identity, string, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, "", domain.ErrForbidden
	}
	return &entity.Identity{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
	}, "", nil
}
