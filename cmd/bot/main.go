package main

import (
	"anon-chat/auth"
	"anon-chat/contract"
	"anon-chat/infrastructure/api"
	"anon-chat/infrastructure/redis"
	"anon-chat/infrastructure/storage"
	"anon-chat/infrastructure/telegram"
	"anon-chat/internal"
	"anon-chat/lobby"
	"anon-chat/observability"
	"anon-chat/projection"
	"anon-chat/runtime"
	"anon-chat/runtime/workers"
	"anon-chat/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bot terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Deferred cleanups (badger, redis) always run before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Session outcome ledger (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	if logger.Enabled(ctx, slog.LevelDebug) {
		debugPort := config.Port + 2
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d/inspect", debugPort))
		database.StartDebugServer(db, debugPort, "/inspect", OutcomeMapper)
	}
	outcomeRepository := storage.NewOutcomeRepository(db, logger, config.LimitOutcomes)

	// 3. Update de-duplication (Redis, optional)
	var dedup contract.Deduplicator
	if config.RedisAddr != "" {
		client, err := redis.NewClient(ctx, redis.Options{Addr: config.RedisAddr, Password: config.RedisPassword, DB: config.RedisDB})
		if err != nil {
			return exitRuntime, err
		}
		defer func() {
			logger.Info("Closing Redis...")
			_ = client.Close()
		}()
		dedup = redis.NewDeduplicator(logger, client, config.DedupTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, redelivered updates are processed again")
	}

	// 4. Core, transport & supervision
	monitoring := observability.NewMonitoringManager(logger)
	outcomes := projection.NewOutcomes()
	orchestrator := runtime.NewOrchestrator(logger, workers.NewSupervisor(logger, config.RestartInterval), config.BufferSize, config.SinkTimeout)
	orchestrator.Add(outcomes, storage.NewLedgerSink(outcomeRepository))

	engine := lobby.NewEngine(logger, orchestrator.Events())
	links := telegram.Links{Owner: config.Owner, Group: config.Group, Channel: config.Channel}
	botClient := telegram.NewClient(logger, config.TelegramAPIURL, config.BotToken, telegram.NewRenderer(links), monitoring)
	chatService := services.NewChatService(logger, engine, botClient, config.DeliveryTimeout)
	router := telegram.NewRouter(logger, chatService, botClient, botClient)

	orchestrator.EnableWaitSweeper(chatService, config.MaxWait, config.SweepInterval)
	orchestrator.EnableHeartbeat(engine, monitoring, config.MetricInterval)

	var signer *auth.Signer
	if config.AdminSecret != "" {
		signer = auth.NewSigner(config.AdminSecret)
	}
	server := api.NewServer(logger,
		api.Options{WebhookPath: config.WebhookPath, WebhookSecret: config.WebhookSecret},
		router, dedup, signer, engine, outcomes, monitoring)
	app := server.App()

	errChan := make(chan error, 2)
	orchestratorDone := make(chan struct{})

	// 5. Start the workers (fanout, sweeper, heartbeat)
	go func() {
		defer close(orchestratorDone)
		orchestrator.Start(ctx)
	}()

	// 6. gRPC health service
	grpcAddress := fmt.Sprintf("%s:%d", config.Host, config.GrpcPort)
	listener, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", grpcAddress, err)
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(grpc3.UnaryLoggingInterceptor(logger)))
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)
	go func() {
		logger.Info("Starting gRPC health server", "address", grpcAddress)
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 7. Webhook server
	go func() {
		logger.Info("Starting webhook server", "address", config.Address(), "at", time.Now().UTC())
		if err := app.Listen(config.Address()); err != nil {
			errChan <- fmt.Errorf("webhook server error: %w", err)
		}
	}()

	if config.WebhookURL != "" {
		if err := botClient.SetWebhook(ctx, config.WebhookURL, config.WebhookSecret); err != nil {
			logger.Error("Webhook registration failed", "url", config.WebhookURL, "error", err)
		} else {
			logger.Info("Webhook registered", "url", config.WebhookURL)
		}
	}

	// 8. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 9. Graceful shutdown: stop taking updates, then drain workers
	logger.Info("Shutting down gracefully...")
	healthServer.Shutdown()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Warn("Webhook server shutdown", "error", err)
	}
	s.GracefulStop()
	stop()
	orchestrator.Stop()
	<-orchestratorDone
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG).WithBypassLockGuard(true)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
