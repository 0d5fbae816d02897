package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/invorya-admin/pkg/jwt"
)

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	env := buildTestApp(t)
	status, body := env.call(t, http.MethodGet, "/api/session", "", nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	env := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	env := buildTestApp(t)
	status, body := env.call(t, http.MethodGet, "/api/session", "token.invalido.aqui", nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_TokenSinSesion_Retorna401SessionExpired(t *testing.T) {
	env := buildTestApp(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Claims{SessionID: "no-existe", UserID: "u-1", CompanyID: "c-1"}, time.Hour)
	require.NoError(t, err)

	status, body := env.call(t, http.MethodGet, "/api/session", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "SESSION_EXPIRED", body["code"])
}

func TestAuthMiddleware_CargaSesion(t *testing.T) {
	env := buildTestApp(t)
	token := env.login(t)

	status, body := env.call(t, http.MethodGet, "/api/session", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "u-1", body["user_id"])
	assert.Equal(t, "c-1", body["company_id"])
	assert.Equal(t, "USD", body["currency"])
}
