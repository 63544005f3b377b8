package middleware

import (
	"net/http"
)

// NoStore marks every response as uncacheable. Analyses and upload URLs are
// per-caller and single-use.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}
