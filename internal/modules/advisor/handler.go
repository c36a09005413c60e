package advisor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/httpx"
)

const pingText = "AI advisor is working 👍"

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterPublicRoutes mounts the routes that need no token.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/ai/ping", h.ping)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ai/stock/advice", h.advice) // GET /api/v1/ai/stock/advice?question=what+should+i+reorder
	r.Post("/ai/ask", h.ask)
	r.Get("/stock/ai/explain", h.explain)
}

func (h *Handler) ping(w http.ResponseWriter, _ *http.Request) {
	httpx.Text(w, http.StatusOK, pingText)
}

func (h *Handler) advice(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	text, err := h.service.Advice(r.Context(), p, r.URL.Query().Get("question"))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Text(w, http.StatusOK, text)
}

func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	var req AskRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	text, err := h.service.Ask(r.Context(), p, req)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Text(w, http.StatusOK, text)
}

func (h *Handler) explain(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.Principal(w, r)
	if !ok {
		return
	}
	text, err := h.service.Explain(r.Context(), p)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Text(w, http.StatusOK, text)
}
