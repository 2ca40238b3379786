package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checador/internal/platform/apperr"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	require.Equal(t, apperr.Validation, appErr.Kind())
	require.Len(t, appErr.Fields(), 1)
	return appErr.Fields()[0].Field
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Nombre string `json:"nombre"`
		Edad   int    `json:"edad"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nombre":"Ana"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Ana", dst.Nombre)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Equal(t, "body", fieldOf(t, DecodeJSON(req, &dst)))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nombre":`))
	assert.Equal(t, "body", fieldOf(t, DecodeJSON(req, &dst)))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"edad":"x"}`))
	assert.Equal(t, "edad", fieldOf(t, DecodeJSON(req, &dst)))
}

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathID(t *testing.T) {
	id, err := PathID(withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "42"), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		_, err := PathID(withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", raw), "id")
		assert.Equal(t, "id", fieldOf(t, err), raw)
	}
}

func TestQueryID(t *testing.T) {
	got, err := QueryID(httptest.NewRequest(http.MethodGet, "/?usuario_id=5", nil), "usuario_id")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), *got)

	got, err = QueryID(httptest.NewRequest(http.MethodGet, "/", nil), "usuario_id")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = QueryID(httptest.NewRequest(http.MethodGet, "/?usuario_id=x", nil), "usuario_id")
	assert.Equal(t, "usuario_id", fieldOf(t, err))
}

func TestParsePagination(t *testing.T) {
	p := ParsePagination(httptest.NewRequest(http.MethodGet, "/?limit=500&offset=10", nil), 50, 200)
	assert.Equal(t, Pagination{Limit: 200, Offset: 10}, p)

	p = ParsePagination(httptest.NewRequest(http.MethodGet, "/?limit=-1&offset=x", nil), 50, 200)
	assert.Equal(t, Pagination{Limit: 50, Offset: 0}, p)
}
