package clients

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/clients", h.Create)
	r.Get("/clients/{id}", h.Show)
}
