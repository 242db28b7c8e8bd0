package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the widget front-end to call the API from another origin.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:               300,
		OptionsSuccessStatus: http.StatusNoContent,
	})
}
