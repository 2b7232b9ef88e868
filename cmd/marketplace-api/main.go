package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/api/server"
	"github.com/feral-file/ff-marketplace/internal/api/shared/executor"
	"github.com/feral-file/ff-marketplace/internal/collection"
	"github.com/feral-file/ff-marketplace/internal/config"
	"github.com/feral-file/ff-marketplace/internal/contract"
	"github.com/feral-file/ff-marketplace/internal/dashboard"
	"github.com/feral-file/ff-marketplace/internal/lifecycle"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/metadata"
	"github.com/feral-file/ff-marketplace/internal/registry"
	"github.com/feral-file/ff-marketplace/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service":  config.SERVICE_NAME,
			"chain_id": fmt.Sprintf("%d", cfg.Chain.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Marketplace API",
		zap.Uint64("chain_id", cfg.Chain.ChainID),
		zap.String("chain", cfg.Chain.Name))

	// Initialize adapters
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Collection.MetadataTimeout)

	// Connect to the chain
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial RPC endpoint", zap.Error(err), zap.String("rpc_url", cfg.Chain.RPCURL))
	}
	defer ethClient.Close()

	provider := contract.NewProvider(ethClient, contract.Config{
		ChainID:         cfg.Chain.ChainID,
		ReadTimeout:     cfg.Chain.ReadTimeout,
		RetryMaxElapsed: cfg.Chain.ReadRetryMaxElapsed,
		MaxRetries:      cfg.Chain.ReadMaxRetries,
	})
	if err := provider.VerifyChain(ctx); err != nil {
		logger.FatalCtx(ctx, "RPC endpoint serves the wrong chain", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to RPC endpoint", zap.String("rpc_url", cfg.Chain.RPCURL))

	// Load contract registry
	contracts, err := loadContractRegistry(cfg, fs, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load contract registry", zap.Error(err))
	}
	for _, entry := range contracts.Assets() {
		logger.InfoCtx(ctx, "Registered contract",
			zap.String("asset", entry.Asset),
			zap.String("address", entry.Address.Hex()),
			zap.String("standard", string(entry.Standard)))
	}

	// Build the read side
	normalizer, err := uri.NewNormalizer(uri.Config{
		IPFSGateway:    cfg.URI.IPFSGateway,
		ArweaveGateway: cfg.URI.ArweaveGateway,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create URI normalizer", zap.Error(err))
	}

	fetcher := metadata.NewFetcher(httpClient, jsonAdapter, normalizer, metadata.Config{
		Timeout: cfg.Collection.MetadataTimeout,
	})

	aggregator := collection.NewAggregator(fetcher, normalizer, clock, collection.Config{
		NativeSymbol:           cfg.Chain.NativeSymbol,
		NativeDecimals:         cfg.Chain.NativeDecimals,
		FanOut:                 cfg.Collection.FanOut,
		ViewTimeout:            cfg.Collection.ViewTimeout,
		MaxScanSize:            cfg.Collection.MaxScanSize,
		PlaceholderImage:       cfg.Collection.PlaceholderImage,
		PlaceholderDescription: cfg.Collection.PlaceholderDescription,
	})
	defer aggregator.Close()

	tracker := collection.NewTracker(aggregator, clock, cfg.Collection.ViewerIdleTTL)

	headerReader := collection.NewHeaderReader(fetcher, normalizer,
		cfg.Collection.PlaceholderImage, cfg.Collection.PlaceholderDescription)
	dashboardReader := dashboard.NewReader(headerReader, dashboard.Config{
		NativeSymbol:   cfg.Chain.NativeSymbol,
		NativeDecimals: cfg.Chain.NativeDecimals,
		MaxOwnedScan:   cfg.Dashboard.MaxOwnedScan,
	})

	exec := executor.NewExecutor(provider, contracts, aggregator, tracker, dashboardReader, executor.Config{
		DefaultScanSize: cfg.Collection.DefaultScanSize,
		MaxScanSize:     cfg.Collection.MaxScanSize,
		NativeDecimals:  cfg.Chain.NativeDecimals,
		TipValue:        cfg.Actions.TipValue,
	})

	errCh := make(chan error, 2)

	// Start the transaction lifecycle listener
	var listener lifecycle.Listener
	if cfg.NATS.Enabled() {
		listener, err = lifecycle.NewListener(lifecycle.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			ConsumerName:   cfg.NATS.ConsumerName,
			Subject:        cfg.NATS.Subject,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			AckWaitTimeout: cfg.NATS.AckWait,
			MaxDeliver:     cfg.NATS.MaxDeliver,
			ChainID:        cfg.Chain.ChainID,
		}, adapter.NewNatsJetStream(), tracker, jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create lifecycle listener", zap.Error(err))
		}

		go func() {
			if err := listener.Run(ctx); err != nil {
				errCh <- fmt.Errorf("lifecycle listener: %w", err)
			}
		}()
	} else {
		logger.WarnCtx(ctx, "NATS url not configured, views refresh only on request")
	}

	// Create and start server
	srv := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ChainID:        cfg.Chain.ChainID,
	}, exec)

	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "api"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}
	if listener != nil {
		listener.Close()
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Marketplace API stopped")
}

// loadContractRegistry reads the contracts file when configured, and the
// contracts config keys otherwise
func loadContractRegistry(cfg *config.APIConfig, fs adapter.FileSystem, jsonAdapter adapter.JSON) (registry.ContractRegistry, error) {
	if cfg.ContractsPath != "" {
		logger.Info("Loading contracts file", zap.String("path", cfg.ContractsPath))
		return registry.NewContractRegistryLoader(fs, jsonAdapter, cfg.Collection.DefaultScanSize).Load(cfg.ContractsPath)
	}

	if len(cfg.Contracts) == 0 {
		logger.Warn("No contracts configured, only the health endpoint is useful")
	}
	return registry.NewContractRegistry(cfg.Contracts, cfg.Collection.DefaultScanSize)
}
