package shop

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

// RegisterPublicRoutes mounts the signup route.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/register-shop", h.registerShop)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/shop", h.getShop)
	r.With(httpx.RequireRole(tenant.RoleAdmin)).Put("/shop", h.updateShop)
}

func (h *Handler) registerShop(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	reg, err := h.service.RegisterShop(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, reg)
}

func (h *Handler) getShop(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	shop, err := h.service.GetShop(r.Context(), p)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, shop)
}

func (h *Handler) updateShop(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	shop, err := h.service.UpdateShop(r.Context(), p, req)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, shop)
}
