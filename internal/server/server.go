package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/QuizDuel_Go/internal/database"
	"github.com/osse101/QuizDuel_Go/internal/duel"
	"github.com/osse101/QuizDuel_Go/internal/handler"
	"github.com/osse101/QuizDuel_Go/internal/identity"
	"github.com/osse101/QuizDuel_Go/internal/logger"
	"github.com/osse101/QuizDuel_Go/internal/metrics"
	"github.com/osse101/QuizDuel_Go/internal/sse"
)

// Options carries the network settings of the HTTP server
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string

	// History serves /admin/duels/{id}/events when set
	History handler.DuelHistory

	// ReadinessChecks are run by /readyz after the database
	ReadinessChecks []handler.ReadinessCheck
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, duelService duel.Service, verifier *identity.Verifier, hub *sse.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, duelService, verifier, hub),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree. Student routes require a bearer token,
// admin routes require the API key.
func NewRouter(opts Options, dbPool database.Pool, duelService duel.Service, verifier *identity.Verifier, hub *sse.Hub) http.Handler {
	r := chi.NewRouter()

	clients := NewClientResolver(opts.TrustedProxies)
	guard := NewAbuseGuard()

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(clients, guard))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	readiness := append([]handler.ReadinessCheck{{Name: "database", Ping: dbPool.Ping}}, opts.ReadinessChecks...)
	r.Get("/readyz", handler.HandleReadyz(readiness...))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	duelHandler := handler.NewDuelHandler(duelService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(verifier.Middleware)

			r.Route("/duels", func(r chi.Router) {
				r.Post("/", duelHandler.HandleCreate)
				r.Get("/", duelHandler.HandleList)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", duelHandler.HandleGet)
					r.Post("/respond", duelHandler.HandleRespond)
					r.Post("/activate", duelHandler.HandleActivate)
					r.Post("/answers", duelHandler.HandleAnswer)
				})
			})
			r.Get("/invitations", handler.HandleListInvitations(duelService))
			r.Get("/events", sse.Handler(hub))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminKeyMiddleware(opts.APIKey, clients, guard))
			r.Post("/duels/sweep", handler.HandleSweep(duelService))
			if opts.History != nil {
				r.Get("/duels/{id}/events", handler.HandleDuelHistory(opts.History))
			}
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

func isQuietPath(path string) bool {
	for _, prefix := range QuietPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// redactHeaders copies h with credentials masked
func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, name := range []string{HeaderAPIKey, HeaderAuthorization} {
		if out.Get(name) != "" {
			out.Set(name, RedactedValue)
		}
	}
	return out
}

// loggingMiddleware tags each request with an ID and logs its start and outcome.
// Health and metrics paths are served silently.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down gracefully. Open event streams must be closed
// first, see sse.Hub.Stop.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
