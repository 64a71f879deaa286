package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Route paths of the sync API.
const (
	pathPing      = "/api/sync/ping"
	pathHealth    = "/api/sync/health"
	pathAuth      = "/api/sync/auth"
	pathChanges   = "/api/sync/cambios"
	pathPush      = "/api/sync/recibir-cambios"
	pathHeartbeat = "/api/sync/heartbeat"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get(pathPing, h.ping)
		r.Get(pathHealth, h.health)
		r.Post(pathAuth, h.authenticate)
	})

	// routes for authenticated terminals
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post(pathChanges, h.getChanges)
		r.Post(pathPush, h.receiveChanges)
		r.Post(pathHeartbeat, h.heartbeat)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))
	router.NotFound(notFound)

	return router
}
