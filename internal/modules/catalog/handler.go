package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/httpx"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/glass", h.listGlass) // GET /api/v1/glass
}

func (h *Handler) listGlass(w http.ResponseWriter, r *http.Request) {
	glasses, err := h.service.List(r.Context())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, glasses)
}
