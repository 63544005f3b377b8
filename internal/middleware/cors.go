package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS lets the browser client call the proxy from the listed origins. A
// wildcard entry disables credentials, which the proxy never needs.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Accept-Language"},
		MaxAge:         600,
	})
	return c.Handler
}
