package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	messageHandler "github.com/hanibassam/hanibot/backend/internal/handler/message"
	"github.com/hanibassam/hanibot/backend/internal/middleware"
	chatService "github.com/hanibassam/hanibot/backend/internal/service/chat"
	"github.com/hanibassam/hanibot/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. The message routes are
// mounted both at the root and under /api so older clients keep working.
func NewRouter(chatSvc *chatService.Service, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigins))

	msgHandler := messageHandler.New(chatSvc)
	msgHandler.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		msgHandler.RegisterRoutes(api)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
