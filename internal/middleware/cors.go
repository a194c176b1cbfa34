// Package middleware carries the HTTP middleware shared by the dev
// server routes.
package middleware

import "net/http"

// allowedOrigins mirrors the production backend's allow-list: local dev
// hosts plus the university site.
var allowedOrigins = map[string]bool{
	"http://localhost:8000":  true,
	"http://127.0.0.1:8000":  true,
	"https://www.mul.edu.pk": true,
	"https://mul.edu.pk":     true,
}

// CORS applies the origin allow-list and answers preflight requests.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
