// Package app собирает return-service: хранилище, машину состояний возвратов, gRPC API,
// HTTP-метрики и фоновые воркеры (outbox, очистка ключей идемпотентности, consumer квитанций).
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	healthcheck "github.com/vladislavdragonenkov/returns/internal/health"
	grpcsvc "github.com/vladislavdragonenkov/returns/internal/service/grpc"
	"github.com/vladislavdragonenkov/returns/internal/service/idempotency"
	"github.com/vladislavdragonenkov/returns/internal/service/outbox"
	"github.com/vladislavdragonenkov/returns/internal/version"
	rmsv1 "github.com/vladislavdragonenkov/returns/proto/rms/v1"
)

// listenAddrs — фактические адреса после bind (нужны при ":0").
type listenAddrs struct {
	GRPC net.Addr
	HTTP net.Addr
}

// Run запускает сервис и блокируется до отмены ctx или падения одного из компонентов.
func Run(ctx context.Context, cfg Config) error {
	return run(ctx, cfg, nil)
}

func run(ctx context.Context, cfg Config, onReady func(listenAddrs)) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.closeFn(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	registry := newMetricsRegistry()
	returnsSvc := newReturnsService(deps, cfg, registry, logger)

	kafkaRT, err := initKafka(cfg, returnsSvc, logger)
	if err != nil {
		return err
	}
	defer closeKafkaProducer(kafkaRT.producer, logger)

	grpcServer, healthServer := newGRPCServer(
		grpcsvc.NewReturnService(returnsSvc, deps.idempotencyRepo, logger.WithField("component", "return-grpc")),
		registry,
		logger,
	)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	for name, checker := range deps.checkers {
		healthHandler.RegisterChecker(name, checker)
	}
	httpServer := newHTTPServer(registry, healthHandler)

	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", cfg.GRPCAddr, err)
	}
	httpListener, err := net.Listen("tcp", cfg.MetricsAddr)
	if err != nil {
		_ = grpcListener.Close()
		return fmt.Errorf("listen http %s: %w", cfg.MetricsAddr, err)
	}

	outboxWorker := outbox.NewWorker(deps.outboxRepo, kafkaRT.publisher,
		outbox.WithLogger(logger.WithField("component", "outbox-worker")),
		outbox.WithDLQPublisher(kafkaRT.dlq),
		outbox.WithRegisterer(registry),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
	)
	cleanupWorker := idempotency.NewCleanupWorker(deps.idempotencyRepo,
		idempotency.WithLogger(logger.WithField("component", "idempotency-cleanup")),
		idempotency.WithRegisterer(registry),
		idempotency.WithInterval(cfg.IdempotencyCleanupInterval),
		idempotency.WithBatchSize(cfg.IdempotencyCleanupBatchSize),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.WithField("addr", grpcListener.Addr().String()).Info("gRPC server listening")
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.WithField("addr", httpListener.Addr().String()).Info("metrics and health endpoints listening")
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error { return outboxWorker.Run(gctx) })
	g.Go(func() error { return cleanupWorker.Run(gctx) })
	if kafkaRT.consumer != nil {
		g.Go(func() error { return kafkaRT.consumer.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		healthServer.Shutdown()
		stopGRPC(grpcServer, cfg.ShutdownTimeout, logger)
		shutdownHTTP(httpServer, cfg.ShutdownTimeout, logger)
		return nil
	})

	if onReady != nil {
		onReady(listenAddrs{GRPC: grpcListener.Addr(), HTTP: httpListener.Addr()})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// newMetricsRegistry создаёт реестр процесса с go/process-коллекторами.
func newMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// newGRPCServer регистрирует ReturnService, grpc health и prometheus-интерсепторы.
func newGRPCServer(service rmsv1.ReturnServiceServer, registerer prometheus.Registerer, logger *log.Entry) (*grpc.Server, *health.Server) {
	grpcMetrics := promgrpc.NewServerMetrics()
	grpcMetrics.EnableHandlingTimeHistogram()
	if err := registerer.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(grpcMetrics.StreamServerInterceptor()),
	)
	rmsv1.RegisterReturnServiceServer(server, service)
	grpcMetrics.InitializeMetrics(server)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(rmsv1.ReturnService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server, healthServer
}

// newHTTPServer отдаёт /metrics, /healthz, /livez и /readyz.
func newHTTPServer(gatherer prometheus.Gatherer, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	return &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

const defaultShutdownTimeout = 5 * time.Second

func shutdownTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return defaultShutdownTimeout
	}
	return timeout
}

// stopGRPC дожидается активных вызовов не дольше timeout.
func stopGRPC(server *grpc.Server, timeout time.Duration, logger *log.Entry) {
	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(shutdownTimeout(timeout)):
		logger.Warn("graceful stop timed out, forcing grpc server stop")
		server.Stop()
	}
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, timeout time.Duration, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(timeout))
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}
