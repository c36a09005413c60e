package document

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
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
	r.Get("/quotations/{id}/pdf", h.render(h.service.QuotationPDF))
	r.Get("/quotations/{id}/cutting-pad", h.render(h.service.CuttingPad))
	r.Get("/invoices/{id}/pdf", h.invoicePDF) // GET /api/v1/invoices/{id}/pdf?basic=true
	r.Get("/invoices/{id}/challan", h.render(h.service.Challan))
}

type renderFunc func(ctx context.Context, p tenant.Principal, id uuid.UUID) (*File, error)

func (h *Handler) render(fn renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := httpx.Principal(w, r)
		if !ok {
			return
		}
		id, err := httpx.PathUUID(chi.URLParam(r, "id"))
		if err != nil {
			httpx.Error(w, r, h.log, err)
			return
		}
		f, err := fn(r.Context(), p, id)
		if err != nil {
			httpx.Error(w, r, h.log, err)
			return
		}
		httpx.Attachment(w, "application/pdf", f.Name, f.Data)
	}
}

func (h *Handler) invoicePDF(w http.ResponseWriter, r *http.Request) {
	basic := false
	if v := r.URL.Query().Get("basic"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httpx.Error(w, r, h.log, apperr.Invalid("basic must be true or false"))
			return
		}
		basic = b
	}
	h.render(func(ctx context.Context, p tenant.Principal, id uuid.UUID) (*File, error) {
		return h.service.InvoicePDF(ctx, p, id, basic)
	})(w, r)
}
