package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkawano/seat-draw-backend/internal/hub"
	"github.com/mkawano/seat-draw-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/sessions", CreateSession(h))
	r.Get("/sessions/{code}/preset", ExportPreset(h))
	r.Put("/sessions/{code}/preset", ImportPreset(h))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h))
	return r
}
