package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/financer-app/apiserver/config"
	"github.com/financer-app/apiserver/internal/db"
	"github.com/financer-app/apiserver/internal/events"
	"github.com/financer-app/apiserver/internal/handlers"
	"github.com/financer-app/apiserver/internal/mq"
	"github.com/financer-app/apiserver/internal/services"
	"github.com/financer-app/apiserver/internal/storage"
	"github.com/financer-app/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	closers    []func() error
}

// New constructs a Server: store backend, event publisher, services, and
// routes per config.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	srv := &Server{}

	userStore, err := srv.buildStore(ctx, cfg)
	if err != nil {
		srv.closeAll()
		return nil, err
	}

	publisher, err := srv.buildPublisher(ctx, cfg)
	if err != nil {
		srv.closeAll()
		return nil, err
	}

	accountService := services.NewAccountService(userStore, publisher)
	userService := services.NewUserService(userStore, publisher)
	transactionService := services.NewTransactionService(userStore, publisher)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		corsMiddleware(cfg.CORSOrigin),
	)

	router.Get("/", handlers.Index)
	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, accountService)
	handlers.UserRouter(router, accountService, userService, transactionService)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	srv.router = router
	srv.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return srv, nil
}

func (s *Server) buildStore(ctx context.Context, cfg config.Config) (store.UserStore, error) {
	slog.Info("configuring user store", "backend", cfg.Store.Backend)

	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return store.NewMemoryStore(), nil

	case config.StoreBackendPostgres:
		conn, err := db.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		s.closers = append(s.closers, conn.Close)
		return store.NewPostgresStore(conn), nil

	case config.StoreBackendMinio:
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("minio bucket: %w", err)
		}
		return store.NewFileStore(client, cfg.Store.File), nil

	case config.StoreBackendGCS:
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("gcs bucket: %w", err)
		}
		return store.NewFileStore(client, cfg.Store.File), nil

	case config.StoreBackendFile, "":
		local, err := storage.NewLocalClient(cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
		if err := local.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("store directory: %w", err)
		}
		return store.NewFileStore(local, filepath.Base(cfg.Store.File)), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func (s *Server) buildPublisher(ctx context.Context, cfg config.Config) (events.Publisher, error) {
	switch cfg.Events.Backend {
	case "":
		return events.NopPublisher{}, nil

	case config.EventsBackendRabbitMQ:
		client, err := mq.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq client: %w", err)
		}
		publisher := events.NewBrokerPublisher(client, cfg.Events.Channel)
		s.closers = append(s.closers, publisher.Close)
		slog.Info("event publishing enabled", "backend", cfg.Events.Backend, "channel", cfg.Events.Channel)
		return publisher, nil

	case config.EventsBackendPubSub:
		client, err := mq.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, fmt.Errorf("pubsub client: %w", err)
		}
		publisher := events.NewBrokerPublisher(client, cfg.Events.Channel)
		s.closers = append(s.closers, publisher.Close)
		slog.Info("event publishing enabled", "backend", cfg.Events.Backend, "channel", cfg.Events.Channel)
		return publisher, nil

	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Events.Backend)
	}
}

// corsMiddleware allows the configured browser origin, mirroring what the
// frontend dev server expects.
func corsMiddleware(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown closes the server and every backend it opened.
func (s *Server) Shutdown() error {
	s.closeAll()
	return s.httpServer.Close()
}

func (s *Server) closeAll() {
	for _, closeFn := range s.closers {
		_ = closeFn()
	}
	s.closers = nil
}
