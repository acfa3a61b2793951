package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter: tanpa middleware.Timeout global; /notifications/stream hidup
// selama koneksi client, handler lain pasang deadline sendiri per request.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// userID: identitas caller dari gateway di depan; autentikasi bukan urusan
// core ini, tapi cek kepemilikan tetap pakai nilai ini.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-Id")
}
