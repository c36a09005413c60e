package stock

import (
	"net/http"

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
	r.Post("/stock/update", h.update)
	r.Post("/stock/transfer", h.transfer)
	r.Post("/stock/undo", h.undo)
	r.Get("/stock/all", h.listAll)
	r.Get("/stock/recent", h.recent) // GET /api/v1/stock/recent?limit=20
	r.Get("/stock/low", h.low)
	r.Get("/stock/available", h.available) // GET /api/v1/stock/available?glassType=5MM
	r.Get("/stock/alert/low", h.lowAlert)
	r.Get("/stock/reorder/suggest", h.suggest)

	r.With(httpx.RequireRole(tenant.RoleAdmin)).Patch("/stock/{id}/min-quantity", h.setMinQuantity)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	res, err := h.service.UpdateStock(r.Context(), p, req)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	var req TransferRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	res, err := h.service.Transfer(r.Context(), p, req)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) undo(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	res, err := h.service.UndoLast(r.Context(), p)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	items, err := h.service.ListAll(r.Context(), p)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, items)
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
	items, err := h.service.Recent(r.Context(), p, limit)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, items)
}

func (h *Handler) low(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	items, err := h.service.LowStock(r.Context(), p)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, items)
}

func (h *Handler) available(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	items, err := h.service.Available(r.Context(), p, r.URL.Query().Get("glassType"))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, items)
}

func (h *Handler) lowAlert(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	items, err := h.service.LowStock(r.Context(), p)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Text(w, http.StatusOK, LowStockText(items))
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	items, err := h.service.ReorderSuggestions(r.Context(), p)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, items)
}

func (h *Handler) setMinQuantity(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	id, err := httpx.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	var req MinQuantityRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	s, err := h.service.SetMinQuantity(r.Context(), p, id, req.MinQuantity)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, s)
}
