package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"checkout-server/clients"
	"checkout-server/config"
	"checkout-server/handlers"
	"checkout-server/logger"
	"checkout-server/models"
	"checkout-server/rabbitmq"
	"checkout-server/validators"
	"checkout-server/web"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	configFile string
	port       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "checkout-server",
		Short: "Demo web shop checkout backed by a hosted payments API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", config.DefaultConfigFile, "Path to the config.properties file")
	rootCmd.Flags().StringVar(&opts.port, "port", "", "Port to listen on (overrides config)")

	rootCmd.AddCommand(newConsumeEventsCmd(opts))
	return rootCmd
}

func newConsumeEventsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "consume-events",
		Short: "Consume payment events and log outcome counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsumeEvents(cmd.Context(), opts)
		},
	}
}

func setup(opts *options) (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return nil, nil, err
	}
	if opts.port != "" {
		cfg.Port = opts.port
	}

	log, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.ConfigFile == "" {
		log.Warnw("config file not found, using environment and defaults", "path", opts.configFile)
	}
	return cfg, log, nil
}

func runServe(ctx context.Context, opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	if missing := cfg.Missing(); len(missing) > 0 {
		log.Warnw("required configuration is missing, provider calls will fail", "keys", missing)
	}

	log.Infow("starting checkout server",
		"port", cfg.Port,
		"merchant_account", cfg.MerchantAccount,
		"api_key", validators.MaskSecret(cfg.APIKey),
		"environment", cfg.Environment,
		"base_url", cfg.BaseURL)

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	var publisher handlers.EventPublisher = handlers.NewLogPublisher(log)
	if cfg.EventsEnabled() {
		channelPool, err := rabbitmq.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize, log)
		if err != nil {
			log.Errorw("failed to create RabbitMQ channel pool", "error", err)
			return err
		}
		defer channelPool.Close()
		publisher = rabbitmq.NewPublisher(channelPool, cfg.RabbitMQQueue, log)
	}

	checkoutClient := clients.NewCheckoutClient(clients.Options{
		APIKey:                cfg.APIKey,
		Environment:           cfg.Environment,
		LiveEndpointURLPrefix: cfg.LiveEndpointURLPrefix,
		Timeout:               cfg.ProviderTimeout,
	}, log)

	assets, err := staticAssets(cfg.StaticDir)
	if err != nil {
		log.Errorw("failed to open static assets", "error", err)
		return err
	}

	router, err := handlers.NewRouter(handlers.RouterConfig{
		Config:    cfg,
		Checkout:  checkoutClient,
		Publisher: publisher,
		Cart:      models.DefaultCart(),
		Assets:    assets,
		Logger:    log,
	})
	if err != nil {
		log.Errorw("failed to build router", "error", err)
		return err
	}

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server exited")
	return nil
}

func runConsumeEvents(ctx context.Context, opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	if !cfg.EventsEnabled() {
		err := errors.New("rabbitmqUrl is not configured")
		log.Errorw("cannot consume events", "error", err)
		return err
	}

	log.Infow("starting payment event consumer", "workers", cfg.NumWorkers, "queue", cfg.RabbitMQQueue)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Errorw("failed to connect to RabbitMQ", "error", err)
		return err
	}
	defer conn.Close()

	tracker := rabbitmq.NewOutcomeTracker(log)

	var wg sync.WaitGroup
	workers := make([]*rabbitmq.Worker, 0, cfg.NumWorkers)
	for i := 1; i <= cfg.NumWorkers; i++ {
		worker, err := rabbitmq.NewWorker(i, conn, cfg.RabbitMQQueue, tracker, log)
		if err != nil {
			log.Errorw("failed to create worker", "worker", i, "error", err)
			return err
		}
		workers = append(workers, worker)
		wg.Add(1)
		go worker.Start(&wg)
	}

	log.Infow("all workers started", "workers", cfg.NumWorkers)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	select {
	case <-ctx.Done():
		log.Info("received shutdown signal, stopping workers")
	case amqpErr := <-closed:
		log.Warnw("RabbitMQ connection closed", "error", amqpErr)
	}

	for _, worker := range workers {
		if err := worker.Stop(); err != nil {
			log.Warnw("failed to stop worker", "error", err)
		}
	}
	wg.Wait()

	tracker.LogSummary()
	log.Info("payment event consumer shut down")
	return nil
}

// staticAssets serves from dir when it exists on disk so assets can be edited
// without a rebuild, and from the embedded copy otherwise.
func staticAssets(dir string) (fs.FS, error) {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir), nil
		}
	}
	return fs.Sub(web.Static, "static")
}
