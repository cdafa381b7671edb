package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	appcheckout "github.com/cornerstore/checkout/internal/application/checkout"
	"github.com/cornerstore/checkout/internal/config"
	"github.com/cornerstore/checkout/internal/domain/payment"
	"github.com/cornerstore/checkout/internal/infrastructure/audit"
	"github.com/cornerstore/checkout/internal/infrastructure/id"
	"github.com/cornerstore/checkout/internal/infrastructure/memory"
	infraobs "github.com/cornerstore/checkout/internal/infrastructure/observability"
	"github.com/cornerstore/checkout/internal/infrastructure/observability/oteltrace"
	"github.com/cornerstore/checkout/internal/infrastructure/observability/prometrics"
	"github.com/cornerstore/checkout/internal/infrastructure/observability/zaplogger"
	"github.com/cornerstore/checkout/internal/infrastructure/outbox"
	"github.com/cornerstore/checkout/internal/observability"
	"github.com/cornerstore/checkout/internal/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	registry := prometrics.New(cfg.ServiceName, "checkout")
	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: registry.Counter(
			string(observability.MUsecaseRequests),
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MCheckoutTotal: registry.Counter(
			string(observability.MCheckoutTotal),
			"Sum of successfully charged checkout amounts.",
		),
		observability.MEventsPublished: registry.Counter(
			string(observability.MEventsPublished),
			"Count of domain events published to the bus.",
			"event",
		),
		observability.MEventPublishFail: registry.Counter(
			string(observability.MEventPublishFail),
			"Count of domain event publish failures.",
			"event",
		),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: registry.Histogram(
			string(observability.MUsecaseDuration),
			"Duration of use case execution in seconds.",
			prometheus.DefBuckets,
			"use_case",
		),
	}

	tel := infraobs.New(
		oteltrace.New(cfg.ServiceName),
		zaplogger.Wrap(baseLogger),
		counters,
		histograms,
	)

	catalogStore := memory.NewCatalogStore()
	orderRepo := memory.NewOrderRepository()
	paymentRepo := memory.NewPaymentRepository()
	customerRepo := memory.NewCustomerRepository()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := memory.Seed(ctx, catalogStore, customerRepo); err != nil {
		baseLogger.Fatal("seed_failed", zap.Error(err))
	}

	bus := outbox.NewBus(tel.Logger())
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	auditWorker := audit.New(bus)
	auditWorker.Start()

	service := appcheckout.NewService(
		catalogStore,
		orderRepo,
		paymentRepo,
		customerRepo,
		id.NewUUIDGenerator(),
		bus,
		tel,
	)

	runDemo(ctx, baseLogger, service)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: mux,
	}

	go func() {
		baseLogger.Info("metrics_server_start", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Error("metrics_server_error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("metrics_server_shutdown_error", zap.Error(err))
	} else {
		baseLogger.Info("metrics_server_stopped")
	}
}

// runDemo walks one seeded customer through the full pipeline so a fresh
// process has something to show on its logs and metrics.
func runDemo(ctx context.Context, logger *zap.Logger, service *appcheckout.Service) {
	const customerID = "cust-1"

	if ok, err := service.AddToCart(ctx, customerID, 1, 2); err != nil || !ok {
		logger.Warn("demo_cart_add_failed", zap.Bool("ok", ok), zap.Error(err))
		return
	}
	if ok, err := service.AddToCart(ctx, customerID, 2, 3); err != nil || !ok {
		logger.Warn("demo_cart_add_failed", zap.Bool("ok", ok), zap.Error(err))
		return
	}

	summary := service.Summary(ctx, customerID)
	logger.Info("demo_cart_ready",
		zap.Int("item_count", summary.ItemCount),
		zap.String("total", summary.Total.StringFixed(2)),
	)

	result, err := service.Checkout(ctx, appcheckout.CheckoutInput{
		CustomerID: customerID,
		Method:     payment.NewPayPal("customer@example.com"),
	})
	if err != nil {
		logger.Warn("demo_checkout_failed", zap.Error(err))
		return
	}

	logger.Info("demo_checkout_done",
		zap.String("order_id", result.Order.OrderID),
		zap.String("invoice", result.Invoice.InvoiceNumber),
		zap.String("invoice_status", string(result.Invoice.Status)),
		zap.String("receipt", result.Receipt.ReceiptNumber),
		zap.String("amount_paid", result.Receipt.AmountPaid.StringFixed(2)),
	)
}
