package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/invorya-admin/internal/application/dto"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/pkg/jwt"
	"github.com/jhoicas/invorya-admin/pkg/logger"
	"github.com/jhoicas/invorya-admin/pkg/money"
)

// Config configuración de emisión de tokens y vida de sesión.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// DraftDiscarder descarta los borradores de una sesión cerrada.
type DraftDiscarder interface {
	DiscardSession(sessionID string) int
}

// AuthUseCase login, logout y estado de la sesión explícita del usuario.
type AuthUseCase struct {
	authn      ports.Authenticator
	sessions   ports.SessionStore
	drafts     DraftDiscarder
	currencies *money.Registry
	cfg        Config
	log        *logger.Logger
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. drafts puede ser nil.
func NewAuthUseCase(authn ports.Authenticator, sessions ports.SessionStore, drafts DraftDiscarder, currencies *money.Registry, cfg Config, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		authn:      authn,
		sessions:   sessions,
		drafts:     drafts,
		currencies: currencies,
		cfg:        cfg,
		log:        log.Component("auth"),
		now:        time.Now,
	}
}

// Login verifica credenciales, crea la sesión y devuelve el token atado a ella.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	identity, upstreamToken, err := uc.authn.Authenticate(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrUserNotFound) {
			uc.log.Info().Str("email", email).Msg("login rechazado")
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	now := uc.now()
	sess := &entity.Session{
		ID:            uuid.New().String(),
		Identity:      *identity,
		UpstreamToken: upstreamToken,
		Currency:      uc.currencies.Default(),
		CreatedAt:     now,
		ExpiresAt:     now.Add(uc.cfg.TTL),
	}
	if err := uc.sessions.Save(sess); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.cfg.Secret, uc.cfg.Issuer, jwt.Claims{
		SessionID: sess.ID,
		UserID:    identity.UserID,
		CompanyID: identity.CompanyID,
		Role:      identity.Role,
	}, uc.cfg.TTL)
	if err != nil {
		_ = uc.sessions.Delete(sess.ID)
		return nil, err
	}
	uc.log.Info().Str("session_id", sess.ID).Str("user_id", identity.UserID).Msg("sesión iniciada")
	return &dto.LoginResponse{Token: token, Session: toSessionResponse(sess)}, nil
}

// Resolve valida el token y devuelve la sesión viva a la que apunta.
// Una sesión vencida se elimina junto con sus borradores.
func (uc *AuthUseCase) Resolve(token string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	sess, err := uc.sessions.Get(claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrSessionExpired
	}
	if sess.Expired(uc.now()) {
		uc.end(sess.ID)
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

// Logout cierra la sesión y descarta sus borradores sin guardar.
func (uc *AuthUseCase) Logout(sess *entity.Session) error {
	uc.end(sess.ID)
	uc.log.Info().Str("session_id", sess.ID).Msg("sesión cerrada")
	return nil
}

// Session estado público de la sesión.
func (uc *AuthUseCase) Session(sess *entity.Session) dto.SessionResponse {
	return toSessionResponse(sess)
}

// SetCurrency cambia la moneda de la sesión; los borradores nuevos la heredan.
func (uc *AuthUseCase) SetCurrency(sess *entity.Session, code string) (*dto.SessionResponse, error) {
	if !uc.currencies.IsSupported(code) {
		return nil, domain.ErrCurrency
	}
	updated := *sess
	updated.Currency = uc.currencies.Formatter(code).Code()
	if err := uc.sessions.Save(&updated); err != nil {
		return nil, err
	}
	out := toSessionResponse(&updated)
	return &out, nil
}

// Currencies monedas habilitadas.
func (uc *AuthUseCase) Currencies() dto.CurrencyListResponse {
	return dto.CurrencyListResponse{
		Default:   uc.currencies.Default(),
		Supported: uc.currencies.Supported(),
	}
}

func (uc *AuthUseCase) end(sessionID string) {
	_ = uc.sessions.Delete(sessionID)
	if uc.drafts != nil {
		if n := uc.drafts.DiscardSession(sessionID); n > 0 {
			uc.log.Debug().Str("session_id", sessionID).Int("drafts", n).Msg("borradores descartados")
		}
	}
}

func toSessionResponse(s *entity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:        s.ID,
		UserID:    s.Identity.UserID,
		CompanyID: s.Identity.CompanyID,
		Email:     s.Identity.Email,
		Name:      s.Identity.Name,
		Role:      s.Identity.Role,
		Currency:  s.Currency,
		ExpiresAt: s.ExpiresAt,
	}
}
