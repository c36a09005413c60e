package audit

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/httpx"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/audit/transfer-count", h.transferCount) // GET /api/v1/audit/transfer-count

	admin := r.With(httpx.RequireRole(tenant.RoleAdmin))
	admin.Get("/audit/recent", h.recent) // GET /api/v1/audit/recent?limit=50
	admin.Get("/audit/export", h.export) // GET /api/v1/audit/export
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	limit, err := httpx.QueryInt(r, "limit", DefaultRecentLimit)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	entries, err := h.service.Recent(r.Context(), p, limit)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, entries)
}

func (h *Handler) transferCount(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	count, err := h.service.TransferCount(r.Context(), p)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, count)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	// buffered so a failed export still gets a JSON error
	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), p, &buf); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	filename := fmt.Sprintf("audit-%s.csv", time.Now().Format("20060102"))
	httpx.Attachment(w, "text/csv", filename, buf.Bytes())
}
