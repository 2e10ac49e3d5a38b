package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jask/adminpanel/internal/api"
	"github.com/jask/adminpanel/internal/database"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return New(db, nil)
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRoot(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Backend RUN"}`, w.Body.String())
	require.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDEchoed(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set(requestIDHeader, "op-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "op-42", w.Header().Get(requestIDHeader))
}

func TestEmptyListsAreArrays(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	for _, path := range []string{"/clients", "/produits", "/commandes"} {
		w := do(t, r, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		require.JSONEq(t, `[]`, w.Body.String(), path)
	}
}

func TestClientLifecycle(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/clients", `{"nom":"Ana","email":"a@x.com","ville":"Lyon"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[api.Client](t, w)
	require.Equal(t, api.Client{ID: created.ID, Name: "Ana", Email: "a@x.com", City: "Lyon"}, created)
	require.NotZero(t, created.ID)

	w = do(t, r, http.MethodGet, "/clients", "")
	require.Equal(t, []api.Client{created}, decode[[]api.Client](t, w))

	w = do(t, r, http.MethodPut, "/clients/1", `{"nom":"Ana","email":"a@x.com","ville":"Paris"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Paris", decode[api.Client](t, w).City)

	w = do(t, r, http.MethodGet, "/clients/1", "")
	require.Equal(t, "Paris", decode[api.Client](t, w).City)

	w = do(t, r, http.MethodDelete, "/clients/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/clients/1", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"detail":"Client not found"}`, w.Body.String())
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	cases := []struct {
		name string
		path string
		body string
	}{
		{"client missing nom", "/clients", `{"email":"a@x.com","ville":"Lyon"}`},
		{"client bad email", "/clients", `{"nom":"Ana","email":"nope","ville":"Lyon"}`},
		{"product negative price", "/produits", `{"nom":"Pen","prix":-1,"stock":1}`},
		{"product missing stock", "/produits", `{"nom":"Pen","prix":1}`},
		{"order zero quantity", "/commandes", `{"id_client":1,"id_produit":1,"quantite":0}`},
		{"malformed json", "/clients", `{"nom":`},
	}
	for _, tc := range cases {
		w := do(t, r, http.MethodPost, tc.path, tc.body)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, tc.name)
	}
}

func TestProductZeroPriceAndStockAccepted(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/produits", `{"nom":"Sample","prix":0,"stock":0}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[api.Product](t, w)
	require.Equal(t, 0, p.Stock)
}

func TestOrderChecksReferences(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/commandes", `{"id_client":7,"id_produit":2,"quantite":3}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"detail":"Client not found"}`, w.Body.String())

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/clients", `{"nom":"Ana","email":"a@x.com","ville":"Lyon"}`).Code)
	w = do(t, r, http.MethodPost, "/commandes", `{"id_client":1,"id_produit":2,"quantite":3}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"detail":"Product not found"}`, w.Body.String())

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/produits", `{"nom":"Pen","prix":1.5,"stock":4}`).Code)
	w = do(t, r, http.MethodPost, "/commandes", `{"id_client":1,"id_produit":1,"quantite":3}`)
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[api.Order](t, w)
	require.Equal(t, api.Order{ID: 1, ClientID: 1, ProductID: 1, Quantity: 3}, order)

	w = do(t, r, http.MethodGet, "/commandes/1", "")
	require.Equal(t, order, decode[api.Order](t, w))

	w = do(t, r, http.MethodDelete, "/clients/1", "")
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestBadPathID(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/produits/abc", "").Code)
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodDelete, "/clients/0", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	w := do(t, r, http.MethodOptions, "/clients", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
