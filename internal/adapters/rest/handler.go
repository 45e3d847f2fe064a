package rest

import (
	"net/http"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/services"
	"github.com/ninja-hatori-dev/mood-harmony/internal/worker"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	accounts *services.Accounts
	svc      *services.Orchestrator
	repo     ports.Repository
	pool     *worker.Pool
	router   *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes. pool may be
// nil; preview analysis is then skipped.
func NewHandler(accounts *services.Accounts, svc *services.Orchestrator, repo ports.Repository, pool *worker.Pool) *Handler {
	h := &Handler{
		accounts: accounts,
		svc:      svc,
		repo:     repo,
		pool:     pool,
		router:   http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("POST /api/register", h.Register)
	h.router.HandleFunc("POST /api/login", h.Login)
	h.router.HandleFunc("POST /api/recommendations", h.Recommend)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
