package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// RequestTimeout bounds every route except the hero stream.
const RequestTimeout = 15 * time.Second

type Server struct{ mux *chi.Mux }

func New() *Server {
	m := chi.NewRouter()

	m.Use(Peer)
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	limit := RateLimit(h.RateLimitRPS)
	s.mux.Group(func(r chi.Router) {
		r.Use(Timeout(RequestTimeout))
		r.Get("/", h.home)
		r.With(limit).Get("/v1/properties", h.listProperties)
		r.With(limit).Get("/v1/properties/{id}", h.getProperty)
		r.With(limit).Get("/v1/properties/{id}/gallery", h.gallery)
	})
	// Long-lived: http.TimeoutHandler cannot flush.
	s.mux.With(limit).Get("/v1/hero/stream", h.heroStream)
}

// MountAssets serves dir under publicURL + "/images/". Absolute public URLs
// point at a CDN and are not served locally.
func (s *Server) MountAssets(publicURL, dir string) {
	if dir == "" || strings.HasPrefix(publicURL, "http://") || strings.HasPrefix(publicURL, "https://") {
		return
	}
	prefix := strings.TrimRight(strings.TrimSpace(publicURL), "/") + "/images/"
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	s.mux.Group(func(r chi.Router) {
		r.Use(Timeout(RequestTimeout))
		r.Handle(prefix+"*", fs)
	})
}
