// Package app contains the application setup for the product catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/product/service"
	"github.com/abgdnv/productcatalog/internal/product/store"
	grpcImpl "github.com/abgdnv/productcatalog/internal/product/transport/grpc"
	"github.com/abgdnv/productcatalog/internal/product/transport/rest"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/abgdnv/productcatalog/pkg/server"
	"github.com/abgdnv/productcatalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName labels logs, traces and metrics of this service.
const ServiceName = "product"

type Dependencies struct {
	ProductService service.ProductService
	Store          store.ProductStore
	Logger         *slog.Logger
	Registry       *prometheus.Registry
}

// NewStore selects the store for the configured driver. dbPool is only used by the postgres
// driver, which is wrapped in a circuit breaker when one is configured.
func NewStore(cfg *config.Config, dbPool *pgxpool.Pool, logger *slog.Logger) store.ProductStore {
	if !cfg.Storage.UsesPostgres() {
		logger.Warn("using in-memory product store, data is lost on restart")
		return store.NewInMemoryStore()
	}
	var productStore store.ProductStore = store.NewPgStore(dbPool)
	if cfg.Resilience.CircuitBreaker.Enabled {
		productStore = store.NewBreakerStore(productStore, cfg.Resilience.CircuitBreaker, logger)
	}
	return productStore
}

// NewRegistry returns a Prometheus registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func SetupDependencies(productStore store.ProductStore, publisher messaging.Publisher, registry *prometheus.Registry, logger *slog.Logger) *Dependencies {
	pService := service.NewService(productStore, publisher, logger)

	return &Dependencies{
		ProductService: pService,
		Store:          productStore,
		Logger:         logger,
		Registry:       registry,
	}
}

// SetupHttpHandler initializes the router with middleware, product routes, probes and,
// when enabled, the metrics endpoint. Used by E2E tests as well.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	var metrics *web.Metrics
	if cfg.Metrics.Enabled {
		metrics = web.NewMetrics(deps.Registry)
	}
	mux := server.NewChiRouter(ServiceName, deps.Logger, metrics)
	wireRoutes(mux, deps)
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}
	return mux
}

// wireRoutes sets up the HTTP routes for the product catalog.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Store, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the product catalog.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps, cfg)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// SetupGrpcServer initializes the gRPC server with the catalog and health services.
// The returned health server reports SERVING until it is shut down.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) (*grpc.Server, *health.Server) {
	healthServer := health.NewServer()
	healthServer.SetServingStatus(grpcImpl.ServiceName, healthpb.HealthCheckResponse_SERVING)

	catalogServer := grpcImpl.NewServer(deps.ProductService, deps.Logger)
	healthRegisterFunc := func(s *grpc.Server) {
		healthpb.RegisterHealthServer(s, healthServer)
	}
	return server.NewGRPCServer(reflectionEnabled, deps.Logger, catalogServer.Register, healthRegisterFunc), healthServer
}
