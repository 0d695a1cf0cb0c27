package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/infrastructure/http/handler"
	"github.com/lumigen/lumigen/infrastructure/http/middleware"
)

type ServerConfig struct {
	Host                 string
	Port                 string
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

type Server struct {
	addr   string
	server *http.Server
	logger outbound.Logger
}

func NewServer(
	config ServerConfig,
	authHandler *handler.AuthHandler,
	generationHandler *handler.GenerationHandler,
	billingHandler *handler.BillingHandler,
	assetHandler *handler.AssetHandler,
	authMiddleware *middleware.AuthMiddleware,
	log outbound.Logger,
) *Server {
	router := mux.NewRouter()

	router.HandleFunc("/api/signup", authHandler.Signup).Methods(http.MethodPost)
	router.HandleFunc("/api/login", authHandler.Login).Methods(http.MethodPost)

	router.HandleFunc("/api/generate-image", authMiddleware.RequireAuth(generationHandler.GenerateImage)).Methods(http.MethodPost)
	router.HandleFunc("/api/check-subscription", authMiddleware.RequireAuth(billingHandler.CheckSubscription)).Methods(http.MethodGet)
	router.HandleFunc("/api/subscribe", authMiddleware.RequireAuth(billingHandler.Subscribe)).Methods(http.MethodPost)

	// Signature-authenticated; no session required.
	router.HandleFunc("/webhook", billingHandler.Webhook).Methods(http.MethodPost)

	router.HandleFunc("/static/{assetID}", assetHandler.Serve).Methods(http.MethodGet)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"healthy"}`)
	}).Methods(http.MethodGet)

	router.Use(recoveryMiddleware(log))
	router.Use(requestLogMiddleware(log))

	var root http.Handler = middleware.CorrelationIDMiddleware(router)
	if config.CORSEnabled && len(config.CORSAllowedOrigins) > 0 {
		root = middleware.CORSMiddleware(root, config.CORSAllowedOrigins, config.CORSAllowCredentials)
	}

	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)
	return &Server{
		addr:   addr,
		logger: log,
		server: &http.Server{
			Addr:         addr,
			Handler:      root,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Starting HTTP server", map[string]interface{}{
		"addr": s.addr,
	})
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}

func requestLogMiddleware(log outbound.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info(r.Context(), "request handled", map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

func recoveryMiddleware(log outbound.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error(r.Context(), "panic recovered", fmt.Errorf("%v", rec), map[string]interface{}{
						"path": r.URL.Path,
					})
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
