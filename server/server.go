package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/narrator/config"
	"github.com/adrianliechti/narrator/pkg/auth"
	"github.com/adrianliechti/narrator/server/gateway"
	"github.com/adrianliechti/narrator/server/mcp"
	"github.com/adrianliechti/narrator/server/proxy"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrNoAuthorizer = errors.New("at least one authorizer is required")

type Server struct {
	*config.Config
	http.Handler
}

// NewGateway serves speech synthesis backed by the configured synthesizers
// and object storage.
func NewGateway(cfg *config.Config) (*Server, error) {
	if len(cfg.Authorizers) == 0 {
		return nil, ErrNoAuthorizer
	}

	if cfg.Storage == nil {
		return nil, errors.New("gateway requires a storage")
	}

	if len(cfg.Models()) == 0 {
		return nil, errors.New("gateway requires at least one synthesizer")
	}

	g, err := gateway.New(cfg)

	if err != nil {
		return nil, err
	}

	m, err := mcp.New(g)

	if err != nil {
		return nil, err
	}

	s := &Server{
		Config: cfg,
	}

	s.Handler = s.router("narrator-gateway", func(r chi.Router) {
		g.Attach(r)
		m.Attach(r)
	})

	return s, nil
}

// NewProxy serves the browser facing endpoint that forwards to an upstream gateway.
func NewProxy(cfg *config.Config) (*Server, error) {
	if len(cfg.Authorizers) == 0 {
		return nil, ErrNoAuthorizer
	}

	if cfg.Upstream == nil {
		return nil, errors.New("proxy requires an upstream")
	}

	p, err := proxy.New(cfg.Upstream)

	if err != nil {
		return nil, err
	}

	s := &Server{
		Config: cfg,
	}

	s.Handler = s.router("narrator-proxy", p.Attach)

	return s, nil
}

func (s *Server) router(name string, attach func(r chi.Router)) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.handleAuth)
		attach(r)
	})

	return otelhttp.NewHandler(r, name,
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz"
		}),
	)
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: s,

		ReadHeaderTimeout: 10 * time.Second,
	}

	result := make(chan error, 1)

	go func() {
		slog.Info("server listening", "address", s.Address)
		result <- srv.ListenAndServe()
	}()

	select {
	case err := <-result:
		return err

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-result; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		err := auth.ErrMissingCredentials
		authenticated := false

		for _, a := range s.Authorizers {
			var authCtx context.Context

			if authCtx, err = a.Authenticate(ctx, r); err == nil {
				ctx = authCtx
				authenticated = true
				break
			}
		}

		if !authenticated {
			slog.DebugContext(ctx, "request not authenticated", "path", r.URL.Path, "error", err)

			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(map[string]string{
		"error": message,
	})
}
