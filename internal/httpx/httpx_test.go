package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

type sampleRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
	Action   string `json:"action" validate:"omitempty,oneof=ADD REMOVE"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
		msg    string
	}{
		{apperr.NotFound("stock not found"), http.StatusNotFound, "NOT_FOUND", "stock not found"},
		{apperr.Invalid("not enough stock"), http.StatusBadRequest, "INVALID", "not enough stock"},
		{apperr.Conflict("username already exists"), http.StatusConflict, "CONFLICT", "username already exists"},
		{apperr.Forbidden("admin only"), http.StatusForbidden, "FORBIDDEN", "admin only"},
		{apperr.Unauthorized("invalid credentials"), http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL", "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)

			Error(rec, req, zap.NewNop(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestError_IncludesRequestID(t *testing.T) {
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, nil, apperr.NotFound("quotation not found"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, decodeBody(t, rec)["request_id"])
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"empty", "", "request body is empty"},
		{"malformed", "{", "malformed request body"},
		{"unknown field", `{"name":"a","quantity":1,"extra":true}`, "malformed request body"},
		{"required", `{"quantity":1}`, "name is required"},
		{"gt", `{"name":"a","quantity":0}`, "quantity must be greater than 0"},
		{"oneof", `{"name":"a","quantity":1,"action":"MOVE"}`, "action must be one of [ADD REMOVE]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst sampleRequest
			err := Decode(req, &dst)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrInvalid)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"5MM","quantity":3,"action":"ADD"}`))
	var ok sampleRequest
	require.NoError(t, Decode(req, &ok))
	assert.Equal(t, sampleRequest{Name: "5MM", Quantity: 3, Action: "ADD"}, ok)
}

func TestQueryIntAndPathUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=15&bad=x", nil)

	v, err := QueryInt(req, "limit", 20)
	require.NoError(t, err)
	assert.Equal(t, 15, v)

	v, err = QueryInt(req, "missing", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	_, err = QueryInt(req, "bad", 20)
	assert.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = PathUUID("nope")
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestPrincipal_Missing(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := Principal(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/stock/all", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/api/v1/stock/all", fields["path"])
	assert.Equal(t, int64(15), fields["bytes"])
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	h := CORS([]string{"https://shop.example"})(next)
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	CORS(nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequireRole(tenant.RoleAdmin)(ok)

	tests := []struct {
		name   string
		ctx    func(r *http.Request) *http.Request
		status int
	}{
		{"anonymous", func(r *http.Request) *http.Request { return r }, http.StatusUnauthorized},
		{"staff", withRole(tenant.RoleStaff), http.StatusForbidden},
		{"admin", withRole(tenant.RoleAdmin), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, tt.ctx(httptest.NewRequest(http.MethodGet, "/", nil)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func withRole(role string) func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		return r.WithContext(tenant.WithPrincipal(r.Context(), tenant.Principal{Role: role}))
	}
}
