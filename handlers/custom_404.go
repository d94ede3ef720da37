package handlers

import (
	"net/http"

	"github.com/coreh/linkshare/site"
)

// Custom404Handler renders the themed not-found page.
func Custom404Handler(s *site.Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(s.NotFound(r.Context(), r.URL.Path)))
	}
}
