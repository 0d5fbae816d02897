package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/application/catalog"
	"github.com/jhoicas/invorya-admin/internal/application/editor"
	"github.com/jhoicas/invorya-admin/internal/domain"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/invorya-admin/internal/interfaces/http"
	"github.com/jhoicas/invorya-admin/pkg/money"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "invorya-admin-test"
	testEmail     = "ana@example.com"
	testPassword  = "secreto"
)

type fakeAuthn struct{}

func (fakeAuthn) Authenticate(_ context.Context, email, password string) (*entity.Identity, string, error) {
	if email != testEmail || password != testPassword {
		return nil, "", domain.ErrUnauthorized
	}
	return &entity.Identity{UserID: "u-1", CompanyID: "c-1", Email: email, Role: "admin"}, "upstream-token", nil
}

type fakeCatalog struct{}

func (fakeCatalog) Products(context.Context, *entity.Session) ([]entity.Product, error) {
	price := decimal.RequireFromString("9.99")
	return []entity.Product{
		{ID: "p-1", SKU: "TAZ-01", Name: "Taza", SalePrice: &price},
		{ID: "p-2", SKU: "SIN-PRECIO", Name: "Servicio"},
	}, nil
}

func (fakeCatalog) Parties(_ context.Context, _ *entity.Session, kind entity.PartyKind) ([]entity.Party, error) {
	if kind == entity.PartySupplier {
		return []entity.Party{{ID: "s-1", Name: "Proveedor Uno"}}, nil
	}
	return []entity.Party{{ID: "c-1", Name: "Cliente Uno", TaxID: "900123"}, {ID: "c-2", Name: "Cliente Dos"}}, nil
}

type fakeGateway struct {
	err error
}

func (f *fakeGateway) Get(context.Context, *entity.Session, entity.DocumentKind, string) (*entity.Document, error) {
	return nil, f.err
}

func (f *fakeGateway) Create(_ context.Context, _ *entity.Session, kind entity.DocumentKind, h entity.Header, items []entity.LineItem) (*entity.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Document{ID: "doc-1", Kind: kind, Header: h, Items: items}, nil
}

func (f *fakeGateway) Update(_ context.Context, _ *entity.Session, kind entity.DocumentKind, id string, h entity.Header, items []entity.LineItem) (*entity.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Document{ID: id, Kind: kind, Header: h, Items: items}, nil
}

type observed struct {
	routes []string
}

func (o *observed) ObserveRequest(_ string, route string, _ int, _ time.Duration) {
	o.routes = append(o.routes, route)
}

type testEnv struct {
	app     *fiber.App
	drafts  *memory.DraftStore
	gateway *fakeGateway
	obs     *observed
}

// buildTestApp arma la API completa con stores en memoria y colaboradores falsos.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	currencies, err := money.NewRegistry("USD", []string{"USD", "JPY"}, "en-US")
	require.NoError(t, err)

	drafts := memory.NewDraftStore()
	gateway := &fakeGateway{}
	editorUC := editor.NewEditorUseCase(drafts, fakeCatalog{}, gateway, currencies, nil, nil)
	authUC := auth.NewAuthUseCase(fakeAuthn{}, memory.NewSessionStore(), editorUC, currencies,
		auth.Config{Secret: testJWTSecret, Issuer: testIssuer, TTL: time.Hour}, nil)
	obs := &observed{}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalog.NewCatalogUseCase(fakeCatalog{}, currencies),
		EditorUC:  editorUC,
		Metrics:   obs,
	})
	return &testEnv{app: app, drafts: drafts, gateway: gateway, obs: obs}
}

// call lanza la petición y decodifica el cuerpo JSON (si lo hay).
func (e *testEnv) call(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	status, body := e.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": testEmail, "password": testPassword})
	require.Equal(t, http.StatusOK, status, body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) openDraft(t *testing.T, token, kind string) string {
	t.Helper()
	status, body := e.call(t, http.MethodPost, "/api/drafts", token, map[string]string{"kind": kind})
	require.Equal(t, http.StatusCreated, status, body)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func items(body map[string]any) []any {
	out, _ := body["items"].([]any)
	return out
}
