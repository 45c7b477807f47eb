package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"gas_checker/internal/app/port"
	"gas_checker/internal/app/service"
	"gas_checker/internal/client"
	"gas_checker/internal/domain/entity"
	"gas_checker/internal/infrastructure/configloader"
	evmclient "gas_checker/internal/infrastructure/network/client"
	"gas_checker/internal/infrastructure/restapi"
	"gas_checker/internal/pkg/logger"
	"gas_checker/internal/pkg/metrics"
	"gas_checker/internal/pkg/utils"
)

func main() {
	// Bootstrap logger for the phase before zap is up.
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, relying on process environment")
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// Route slog callers (and the package-level helpers) through zap.
	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))
	logger.UseDefault()

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	// Chain clients. Both roles are validated present at config load.
	provider := evmclient.NewEVMClientProvider(cfg, logger.NewSlogAdapter())
	primaryNode, _ := cfg.NetworkByRole(entity.RolePrimary)
	secondaryNode, _ := cfg.NetworkByRole(entity.RoleSecondary)

	primaryClient, err := provider.GetClient(primaryNode.Definition())
	if err != nil {
		zapLogger.Fatal("Failed to connect primary chain client", zap.Error(err))
	}
	secondaryClient, err := provider.GetClient(secondaryNode.Definition())
	if err != nil {
		zapLogger.Fatal("Failed to connect secondary chain client", zap.Error(err))
	}

	// Upstream HTTP clients.
	farcasterClient := client.NewFarcasterClient(
		cfg.Identity.BaseURL,
		cfg.Identity.APIKey,
		time.Duration(cfg.Identity.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	if !farcasterClient.Configured() {
		zapLogger.Warn("Identity API key is not set, profile lookups will fail")
	}
	registryClient := client.NewRegistryClient(
		cfg.Registry.BaseURL,
		time.Duration(cfg.Registry.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	hubClient := client.NewHubClient(
		cfg.Hub.BaseURL,
		time.Duration(cfg.Hub.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)

	gasCacheTTL := time.Duration(cfg.Performance.GasCacheTTLMinutes) * time.Minute
	newExplorer := func(node configloader.NetworkNodeConfig) port.GasExplorer {
		return client.NewExplorerClient(
			node.Explorer.BaseURL,
			node.Explorer.APIKey,
			time.Duration(node.Explorer.RequestTimeoutMillis)*time.Millisecond,
			cfg.Performance.ExplorerRequestsPerSecond,
			gasCacheTTL,
			zapLogger,
		)
	}
	primaryExplorer := newExplorer(primaryNode)
	secondaryExplorer := newExplorer(secondaryNode)

	// Services.
	chainStats := service.NewChainStatsService(primaryClient, secondaryClient, primaryExplorer, secondaryExplorer, zapLogger)
	identityResolver := service.NewIdentityService(farcasterClient, registryClient, primaryClient, zapLogger)
	addressExtractor := service.NewAddressService(hubClient, zapLogger)
	selector := service.NewSelectorService(chainStats, cfg.Performance.MaxConcurrentRoutines, zapLogger)
	aggregator := service.NewAggregatorService(chainStats, cfg.Performance.MaxConcurrentRoutines, zapLogger)
	rates := service.NewFixedRateService(cfg.Pricing.EthUSD, cfg.Pricing.RollupFeeDiscount)

	reportService := service.NewReportService(identityResolver, addressExtractor, selector, aggregator, rates, zapLogger)
	zapLogger.Info("Report pipeline initialized",
		zap.String("primary_chain", primaryNode.Identifier),
		zap.String("secondary_chain", secondaryNode.Identifier))

	gasHandler := restapi.NewGasHandler(reportService, []port.BlockchainClient{primaryClient, secondaryClient}, farcasterClient)
	router := restapi.SetupRouter(gasHandler, cfg, zapLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
