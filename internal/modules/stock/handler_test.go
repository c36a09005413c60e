package stock

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/catalog"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

func serve(t *testing.T, svc Service, p tenant.Principal, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(tenant.WithPrincipal(req.Context(), p)))
		})
	})
	NewHandler(svc, nil).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestHandler_Update(t *testing.T) {
	svc, repo := newTestService()

	rec := serve(t, svc, staff, http.MethodPost, "/stock/update",
		`{"glassType":"5MM","standNo":1,"quantity":10,"action":"ADD","height":"6","width":"4","unit":"MM"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Stock updated successfully")
	assert.Equal(t, 10, repo.quantityAt("5MM", 1))

	rec = serve(t, svc, staff, http.MethodPost, "/stock/update",
		`{"glassType":"5MM","standNo":1,"quantity":50,"action":"REMOVE","height":"6","width":"4"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not enough stock")

	rec = serve(t, svc, staff, http.MethodPost, "/stock/update", `{"glassType":"5MM","standNo":0,"quantity":1,"action":"ADD"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "standNo")
}

func TestHandler_UndoWithoutHistory(t *testing.T) {
	svc, _ := newTestService()
	rec := serve(t, svc, staff, http.MethodPost, "/stock/undo", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no action to undo")
}

func TestHandler_MinQuantityRequiresAdmin(t *testing.T) {
	svc, repo := newTestService()
	add(t, svc, 1, 1)
	target := "/stock/" + repo.stock[0].ID.String() + "/min-quantity"

	rec := serve(t, svc, staff, http.MethodPatch, target, `{"minQuantity":9}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(t, svc, admin, http.MethodPatch, target, `{"minQuantity":9}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 9, repo.stock[0].MinQuantity)

	rec = serve(t, svc, admin, http.MethodPatch, "/stock/not-a-uuid/min-quantity", `{"minQuantity":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_LowAlertIsText(t *testing.T) {
	svc, _ := newTestService()
	add(t, svc, 2, 1)

	rec := serve(t, svc, staff, http.MethodGet, "/stock/alert/low", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "5MM at stand 2 (6 x 4): 1 left, minimum 5")
}

func TestLowStockText(t *testing.T) {
	assert.Equal(t, NoLowStockText, LowStockText(nil))

	rows := []*Stock{
		{Glass: &catalog.Glass{Type: "8MM"}, StandNo: 3, Quantity: 0, MinQuantity: 4},
		{Glass: &catalog.Glass{Type: "5MM"}, StandNo: 1, Quantity: 9, MinQuantity: 4},
		{Glass: &catalog.Glass{Type: "12MM"}, StandNo: 7, Height: "8", Quantity: 1, MinQuantity: 2},
	}
	text := LowStockText(rows)
	assert.True(t, strings.HasPrefix(text, "🚨 LOW STOCK ALERT\n"))
	assert.Contains(t, text, "• 8MM at stand 3: 0 left, minimum 4\n")
	assert.Contains(t, text, "• 12MM at stand 7 (8): 1 left, minimum 2\n")
	assert.NotContains(t, text, "5MM")
	assert.True(t, strings.HasSuffix(text, "Total low stock items: 2"))
}

func TestSuggest_RanksByGap(t *testing.T) {
	rows := []*Stock{
		{Glass: &catalog.Glass{Type: "5MM"}, StandNo: 1, Quantity: 4, MinQuantity: 5},
		{Glass: &catalog.Glass{Type: "8MM"}, StandNo: 2, Quantity: 0, MinQuantity: 10},
		{Glass: &catalog.Glass{Type: "10MM"}, StandNo: 3, Quantity: 20, MinQuantity: 5},
		{Glass: &catalog.Glass{Type: "12MM"}, StandNo: 4, Quantity: 1, MinQuantity: 4},
	}
	got := Suggest(rows, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "8MM", got[0].GlassType)
	assert.Equal(t, 20, got[0].RecommendedQty)
	assert.Equal(t, "12MM", got[1].GlassType)
	assert.Len(t, Suggest(rows, 0), 3)
}
