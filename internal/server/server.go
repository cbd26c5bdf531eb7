package server

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docshell/internal/logger"
	"github.com/ziadkadry99/docshell/internal/site"
	"github.com/ziadkadry99/docshell/internal/uistate"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool   // allow all CORS origins (dev mode)
	Style    string // chroma style for the highlighting stylesheet
}

// snapshot is everything derived from one loaded site. It is swapped as a
// whole on reload so requests never see a half-updated site.
type snapshot struct {
	site  *site.Site
	shell *site.Shell
	index []byte
}

// Server is the live documentation server.
type Server struct {
	cfg     Config
	backend uistate.Backend
	hub     *uistate.Hub
	log     *zap.Logger
	css     []byte

	mu   sync.RWMutex
	snap *snapshot

	router     chi.Router
	httpServer *http.Server
}

// New creates a server for s with reader state kept in backend.
func New(cfg Config, s *site.Site, backend uistate.Backend) (*Server, error) {
	css, err := site.Stylesheet(cfg.Style)
	if err != nil {
		return nil, err
	}
	srv := &Server{
		cfg:     cfg,
		backend: backend,
		hub:     uistate.NewHub(),
		log:     logger.Named("server"),
		css:     css,
	}
	if err := srv.SetSite(s); err != nil {
		return nil, err
	}
	srv.router = srv.buildRouter(s.BasePath())
	return srv, nil
}

// SetSite replaces the served site, e.g. after content changed on disk.
// The base path is fixed for the lifetime of the server.
func (s *Server) SetSite(st *site.Site) error {
	shell, err := site.NewShell(st.Composer().Matcher(), st.BasePath(), true)
	if err != nil {
		return err
	}
	index, err := site.MarshalSearchIndex(site.BuildSearchIndex(st))
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}
	s.mu.Lock()
	s.snap = &snapshot{site: st, shell: shell, index: index}
	s.mu.Unlock()
	return nil
}

func (s *Server) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter(basePath string) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	cookiePath := path.Join("/", basePath)
	sub := chi.NewRouter()
	sub.Use(clientScope(cookiePath))
	// The websocket stays open indefinitely; everything else gets a deadline.
	sub.Get("/ws/state", s.handleStateFeed)
	sub.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		RegisterRoutes(r, s)
		r.Get("/assets/style.css", s.handleAsset("text/css; charset=utf-8", func() []byte { return s.css }))
		r.Get("/assets/script.js", s.handleAsset("text/javascript; charset=utf-8", site.Script))
		r.Get("/search-index.json", s.handleSearchIndex)
		r.Get("/*", s.handlePage)
	})

	if base := strings.TrimRight(cookiePath, "/"); base != "" {
		r.Mount(base, sub)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, base+"/", http.StatusFound)
		})
	} else {
		r.Mount("/", sub)
	}
	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the state change hub.
func (s *Server) Hub() *uistate.Hub { return s.hub }

// store returns the state store for the client of r.
func (s *Server) store(r *http.Request) *uistate.Store {
	return uistate.New(s.backend, ClientID(r.Context()), s.hub)
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("docshell server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// requestLogger logs one line per request through zap.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			}
			if status >= http.StatusInternalServerError {
				log.Warn("request", fields...)
				return
			}
			log.Debug("request", fields...)
		})
	}
}
