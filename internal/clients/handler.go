package clients

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soft-m/softm-api/internal/platform/httpx"
)

// Handler exposes client operations over JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// Create handles POST /clients.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.LogAndRespondError(h.logger, w, r, err)
		return
	}

	summary, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.LogAndRespondError(h.logger, w, r, err)
		return
	}

	h.logger.Info("client created", slog.String("client_id", summary.ID), slog.String("client_type", string(req.ClientType)))
	httpx.JSON(w, http.StatusCreated, summary)
}

// Show handles GET /clients/{id}.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.LogAndRespondError(h.logger, w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}
