package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/http/handlers"
)

type Router struct {
	mux chi.Router
}

func NewRouter(viewHandler *handlers.ViewHandler) *Router {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	viewHandler.Register(r)

	return &Router{mux: r}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}
