package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxe-commerce/storefront/internal/api/handlers"
	"github.com/luxe-commerce/storefront/internal/api/middleware"
	"github.com/luxe-commerce/storefront/internal/config"
	"github.com/luxe-commerce/storefront/internal/health"
	"github.com/luxe-commerce/storefront/internal/kvstore"
	"github.com/luxe-commerce/storefront/internal/metrics"
	repository "github.com/luxe-commerce/storefront/internal/repositories"
	service "github.com/luxe-commerce/storefront/internal/services"
	"github.com/luxe-commerce/storefront/pkg/sendgrid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	// Tracing (optional)
	if cfg.Otel.Endpoint != "" {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.Otel.Endpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			slog.Error("Failed to create trace exporter", "error", err.Error())
			os.Exit(1)
		}

		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		otel.SetTracerProvider(tp)

		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				slog.Error("Failed to shut down tracer provider", "error", err.Error())
			}
		}()
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err.Error())
		}
	}()

	// Cart storage backend
	store, err := newCartStore(cfg)
	if err != nil {
		slog.Error("Error initializing cart storage", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Error closing cart storage", "error", err.Error())
		}
	}()

	// Services
	var mailer sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		mailer = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	cartService := service.NewCartService(ctx, store)
	cartHandler := handlers.NewCartHandler(cartService)
	submitter := service.NewOrderSubmitter(repos.Order)
	workflow := service.NewCheckoutWorkflow(cartService, submitter, mailer, cfg.Checkout.SubmitTimeout)
	checkoutHandler := handlers.NewCheckoutHandler(workflow)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("Storefront initialized",
		slog.String("env", cfg.Env),
		slog.String("cart_backend", cfg.CartStorage.Backend),
	)

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{productId}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.Clear())
	routerMux.HandleFunc("POST /api/v1/cart/open", cartHandler.SetOpen())
	routerMux.HandleFunc("POST /api/v1/checkout/open", checkoutHandler.Open())
	routerMux.HandleFunc("GET /api/v1/checkout", checkoutHandler.State())
	routerMux.HandleFunc("PUT /api/v1/checkout/fields", checkoutHandler.UpdateField())
	routerMux.HandleFunc("POST /api/v1/checkout/next", checkoutHandler.Next())
	routerMux.HandleFunc("POST /api/v1/checkout/back", checkoutHandler.Back())
	routerMux.HandleFunc("POST /api/v1/checkout/close", checkoutHandler.Close())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}
}

func newCartStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.CartStorage.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		return kvstore.NewRedis(client), nil
	case "memory":
		return kvstore.NewMemory(), nil
	default:
		store, err := kvstore.NewFile(cfg.CartStorage.Dir)
		if err != nil {
			return nil, err
		}

		return store, nil
	}
}
