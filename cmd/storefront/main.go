package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/aguaviva/storefront/internal/cart"
	"github.com/aguaviva/storefront/internal/catalog"
	"github.com/aguaviva/storefront/internal/checkout"
	"github.com/aguaviva/storefront/internal/messaging"
	"github.com/aguaviva/storefront/internal/orders"
	"github.com/aguaviva/storefront/internal/session"
	"github.com/aguaviva/storefront/internal/telemetry"
)

const (
	serviceName    = "storefront"
	serviceVersion = "0.1.0"

	sessionTTL           = 30 * time.Minute
	sessionSweepInterval = 5 * time.Minute
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, serviceName, serviceVersion)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(serviceName, serviceVersion)
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(10 * time.Second)); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
		os.Exit(1)
	}

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	db, err := telemetry.OpenDB("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var producer *messaging.Producer
	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		producer = messaging.NewProducer(brokers, messaging.TopicOrderConfirmed)
		defer func() { _ = producer.Close() }()
	}

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()

	sessions := session.NewStore(sessionTTL)
	sessions.StartSweeper(sweepCtx, sessionSweepInterval)

	productRepo := catalog.NewProductRepository(db)
	orderRepo := orders.NewOrderRepository(db)
	resolver := cart.NewResolver(productRepo)

	catalogHandler := catalog.NewHandler(productRepo, logger)
	cartHandler := cart.NewHandler(resolver, productRepo, logger)
	orderHandler := orders.NewHandler(orderRepo, logger)

	var publisher checkout.EventPublisher
	if producer != nil {
		publisher = producer
	}
	checkoutSvc := checkout.NewService(resolver, orderRepo, publisher, logger)
	checkoutHandler := checkout.NewHandler(checkoutSvc, resolver, logger)

	shop := http.NewServeMux()
	shop.HandleFunc("GET /catalog", telemetry.WithHTTPRoute(catalogHandler.HandleCatalog))
	shop.HandleFunc("GET /cart", telemetry.WithHTTPRoute(cartHandler.HandleView))
	shop.HandleFunc("POST /cart/items/{productId}", telemetry.WithHTTPRoute(cartHandler.HandleAdd))
	shop.HandleFunc("PUT /cart/items/{productId}", telemetry.WithHTTPRoute(cartHandler.HandleUpdate))
	shop.HandleFunc("DELETE /cart/items/{productId}", telemetry.WithHTTPRoute(cartHandler.HandleRemove))
	shop.HandleFunc("GET /checkout", telemetry.WithHTTPRoute(checkoutHandler.HandleShow))
	shop.HandleFunc("POST /checkout", telemetry.WithHTTPRoute(checkoutHandler.HandleSubmit))
	shop.HandleFunc("GET /orders/{id}", telemetry.WithHTTPRoute(orderHandler.HandleGet))

	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/", sessions.Middleware(shop))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, serviceName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting storefront service", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
