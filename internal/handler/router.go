package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nvx-labs/scamtrap/internal/handler/dashboard"
	"github.com/nvx-labs/scamtrap/internal/handler/feed"
	"github.com/nvx-labs/scamtrap/internal/handler/honeypot"
	middlewarePkg "github.com/nvx-labs/scamtrap/internal/middleware"
	engagementService "github.com/nvx-labs/scamtrap/internal/service/engagement"
	"github.com/nvx-labs/scamtrap/pkg/utils"
)

// NewRouter wires HTTP routes to core services. Everything under /api is
// guarded by the shared-secret check; the dashboard and health probe are open.
func NewRouter(apiKey string, svc *engagementService.Service, hub *feed.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	honeypotHandler := honeypot.New(svc)
	feedHandler := feed.New(hub)

	r.Get("/", dashboard.Serve)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middlewarePkg.APIKey(apiKey))

		honeypotHandler.RegisterRoutes(api)
		feedHandler.RegisterRoutes(api)
	})

	return r
}
