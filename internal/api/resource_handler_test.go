package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/mocks"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/service"
)

type brandFixture struct {
	server *httptest.Server
	store  *mocks.MockDocumentStore[domain.Brand]
}

func newBrandFixture(t *testing.T) *brandFixture {
	t.Helper()
	f := &brandFixture{
		store: mocks.NewMockDocumentStore[domain.Brand]("name"),
	}
	res := service.NewResource("brand", f.store, query.Shaper{DefaultLimit: 10}, nil)
	h := NewResourceHandler(res, parseBrandCreate,
		func(b *domain.Brand) uuid.UUID { return b.ID })

	r := chi.NewRouter()
	r.Route("/brands", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

func (f *brandFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.server.URL+path, &buf)
	require.NoError(t, err)
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestResourceHandlerCreate(t *testing.T) {
	t.Parallel()
	f := newBrandFixture(t)

	resp := f.do(t, http.MethodPost, "/brands", map[string]string{"name": "Acme"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Acme", data["name"])
	assert.Equal(t, "acme", data["slug"])
	assert.Equal(t, 1, f.store.Len())
}

func TestResourceHandlerCreateValidation(t *testing.T) {
	t.Parallel()
	f := newBrandFixture(t)

	// Name below the minimum length.
	resp := f.do(t, http.MethodPost, "/brands", map[string]string{"name": "A"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, f.store.Len())
}

func TestResourceHandlerCreateDuplicate(t *testing.T) {
	t.Parallel()
	f := newBrandFixture(t)

	resp := f.do(t, http.MethodPost, "/brands", map[string]string{"name": "Acme"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/brands", map[string]string{"name": "Acme"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestResourceHandlerListEnvelope(t *testing.T) {
	t.Parallel()
	f := newBrandFixture(t)

	for i := 0; i < 12; i++ {
		brand, err := domain.NewBrand(fmt.Sprintf("Brand %02d", i), "")
		require.NoError(t, err)
		f.store.Seed(brand.ID, brand)
	}

	resp := f.do(t, http.MethodGet, "/brands?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["results"])

	pagination, ok := body["paginationResult"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), pagination["currentPage"])
	assert.Equal(t, float64(2), pagination["totalPages"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 2)
}

func TestResourceHandlerListFieldProjection(t *testing.T) {
	t.Parallel()
	f := newBrandFixture(t)

	brand, err := domain.NewBrand("Acme", "acme.png")
	require.NoError(t, err)
	f.store.Seed(brand.ID, brand)

	resp := f.do(t, http.MethodGet, "/brands?fields=name", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	doc := data[0].(map[string]any)
	assert.Equal(t, "Acme", doc["name"])
	assert.NotContains(t, doc, "image")
	assert.NotContains(t, doc, "slug")
}

func TestResourceHandlerGet(t *testing.T) {
	t.Parallel()
	f := newBrandFixture(t)

	brand, err := domain.NewBrand("Acme", "")
	require.NoError(t, err)
	f.store.Seed(brand.ID, brand)

	resp := f.do(t, http.MethodGet, "/brands/"+brand.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, brand.ID.String(), data["id"])

	resp = f.do(t, http.MethodGet, "/brands/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/brands/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResourceHandlerUpdateStripsProtectedKeys(t *testing.T) {
	t.Parallel()
	f := newBrandFixture(t)

	brand, err := domain.NewBrand("Acme", "")
	require.NoError(t, err)
	f.store.Seed(brand.ID, brand)

	patch := map[string]any{
		"name":      "Umbrella",
		"id":        uuid.NewString(),
		"slug":      "client-supplied",
		"createdAt": "2001-01-01T00:00:00Z",
	}
	resp := f.do(t, http.MethodPut, "/brands/"+brand.ID.String(), patch)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "Umbrella", data["name"])
	assert.Equal(t, "umbrella", data["slug"])
	assert.Equal(t, brand.ID.String(), data["id"])
}

func TestResourceHandlerUpdateEmptyPatch(t *testing.T) {
	t.Parallel()
	f := newBrandFixture(t)

	brand, err := domain.NewBrand("Acme", "")
	require.NoError(t, err)
	f.store.Seed(brand.ID, brand)

	// Every key in the payload is server-owned, so nothing remains to merge.
	resp := f.do(t, http.MethodPut, "/brands/"+brand.ID.String(),
		map[string]any{"id": uuid.NewString()})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResourceHandlerDelete(t *testing.T) {
	t.Parallel()
	f := newBrandFixture(t)

	brand, err := domain.NewBrand("Acme", "")
	require.NoError(t, err)
	f.store.Seed(brand.ID, brand)

	resp := f.do(t, http.MethodDelete, "/brands/"+brand.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, f.store.Len())

	resp = f.do(t, http.MethodDelete, "/brands/"+brand.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
