package products

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (chi.Router, *mockRepository) {
	t.Helper()
	catalog := networkCatalog()
	repo := newMockRepository(catalog)
	svc := NewService(repo, catalog, WriteModeBestEffort)
	handler := NewHandler(slog.Default(), svc)
	r := chi.NewRouter()
	r.Route("/products", handler.MountRoutes)
	return r, repo
}

func TestEnumEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		path  string
		first string
		count int
	}{
		{"/products/enums/status", "Active", 8},
		{"/products/enums/sim-types", "SIM", 2},
		{"/products/enums/purchase-types", "API Purchase", 3},
		{"/products/enums/sku-types", "Base", 3},
		{"/products/enums/data-types", "Fixed Data", 2},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.Equal(t, http.StatusOK, rec.Code, tc.path)

		var values []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &values), tc.path)
		assert.Len(t, values, tc.count, tc.path)
		assert.Equal(t, tc.first, values[0], tc.path)
	}
}

func TestListInvalidStatusFilter(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?status=Bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListInvalidPurchaseTypeFilter(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?purchase_type=Bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDefaultSchema(t *testing.T) {
	router, repo := newTestRouter(t)
	repo.seed("ESIM-VN-01", StatusActive)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	_, hasAttr := got[0]["attribute"]
	assert.False(t, hasAttr, "plain listing omits the attribute map")
}

func TestListDynamicSchema(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"product_code":"ESIM-VN-01","vendor_code":"VNT","operator_code":"VIETTEL","supported_countries":"VN","attribute":{"network_type":"4G"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?dynamic_schema=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		ProductCode string            `json:"product_code"`
		Attribute   map[string]string `json:"attribute"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "4G", got[0].Attribute["network_type"])
}

func TestCreateDuplicateCode(t *testing.T) {
	router, repo := newTestRouter(t)
	repo.seed("ESIM-VN-01", StatusActive)

	body := `{"product_code":"ESIM-VN-01","vendor_code":"VNT","operator_code":"VIETTEL","supported_countries":"VN"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMissingRequiredFields(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"product_code":"X"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShowUnknownProduct(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShowByCode(t *testing.T) {
	router, repo := newTestRouter(t)
	repo.seed("ESIM-VN-01", StatusActive)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/code/ESIM-VN-01", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ESIM-VN-01", got.ProductCode)
	assert.NotNil(t, got.Attribute)
}

func TestDeleteThenFilter(t *testing.T) {
	router, repo := newTestRouter(t)
	seeded := repo.seed("ESIM-VN-01", StatusActive)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?status=Active", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	assert.Equal(t, StatusDeleted, repo.products[seeded.ID].Status)
}

func TestAvailableAttributes(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/available-attributes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		AttributeCode string `json:"attribute_code"`
		Options       []any  `json:"options"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "network_type", got[0].AttributeCode)
	assert.Len(t, got[0].Options, 2)
}
