package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/handler/chat"
	middlewarePkg "github.com/zhouzirui/z-tavern/chatwidget/internal/middleware"
	chatService "github.com/zhouzirui/z-tavern/chatwidget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/chatwidget/pkg/utils"
)

// NewRouter wires HTTP routes to the widget session registry.
func NewRouter(sessions *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS())

	chatHandler := chat.New(sessions)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]any{
				"status":   "ok",
				"sessions": sessions.Len(),
			})
		})

		chatHandler.RegisterRoutes(api)
	})

	return r
}
