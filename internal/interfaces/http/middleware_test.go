package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_ReportaPatronDeRuta(t *testing.T) {
	env := buildTestApp(t)
	token := env.login(t)
	id := env.openDraft(t, token, "invoice")
	env.obs.routes = nil

	_, _ = env.call(t, http.MethodGet, "/api/drafts/"+id, token, nil)
	require.Len(t, env.obs.routes, 1)
	assert.Equal(t, "/api/drafts/:id", env.obs.routes[0])
}
