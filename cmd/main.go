package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/rs/cors"

	dnacclient "dnabot/clients/dnacenter"
	webexclient "dnabot/clients/webex"
	"dnabot/config"
	"dnabot/core/log"
	"dnabot/handlers"
	"dnabot/metrics"
	"dnabot/middleware"
	"dnabot/services/artifacts"
	"dnabot/services/charts"
	"dnabot/services/dnacenter"
	"dnabot/services/messages"
	"dnabot/services/webhooks"
)

type options struct {
	EnvFile  string `long:"env-file"  description:"Path to the env file"            default:".env"`
	LogLevel string `long:"log-level" description:"Log level (debug, info, warn, error), overrides LOG_LEVEL"`
	Port     string `long:"port"      description:"HTTP listen port, overrides PORT"`
}

func main() {
	if err := run(); err != nil {
		log.Error("❌ Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := config.LoadConfig(opts.EnvFile)
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Port != "" {
		cfg.Port = opts.Port
	}
	log.SetLevel(log.ParseLevel(cfg.LogLevel))

	if err := os.MkdirAll(cfg.TmpDir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory %s: %w", cfg.TmpDir, err)
	}

	// Authenticate once at startup, the token is reused for every controller request
	authCtx, cancelAuth := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	defer cancelAuth()
	dnacClient, err := dnacclient.NewDNACenterClient(
		cfg.DNACenterConfig.BaseURL(),
		cfg.DNACenterConfig.SSLVerify,
		cfg.HTTPTimeout,
	).Authenticate(authCtx, cfg.DNACenterConfig.Username, cfg.DNACenterConfig.Password)
	if err != nil {
		return fmt.Errorf("failed to authenticate with DNA Center: %w", err)
	}

	webexClient := webexclient.NewWebexClient(
		cfg.WebexConfig.BaseURL(),
		cfg.WebexConfig.BotToken,
		cfg.WebexConfig.SSLVerify,
		cfg.HTTPTimeout,
	)

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.AlertConfig{
		RoomID:      cfg.WebexConfig.AlertRoomID,
		Environment: cfg.Environment,
		AppName:     "dnabot",
	}, webexClient)

	dnacService := dnacenter.NewDNACenterService(
		dnacClient,
		charts.NewRenderer(),
		dnacenter.NewNaturalDateParser(time.Local),
		cfg.TmpDir,
	)
	validator := webhooks.NewValidator(cfg.WebexConfig.Identity(), webexClient)
	processor := messages.NewMessageProcessor(
		webexClient,
		dnacService,
		cfg.WebexConfig.BotName,
		messages.DefaultDedupTTL,
	)

	pool := workerpool.New(cfg.WorkerPoolSize)

	janitor := artifacts.NewJanitor(cfg.TmpDir, cfg.ArtifactRetention)
	if err := janitor.Start(cfg.ArtifactCleanupSchedule, alertMiddleware.WrapBackgroundTask); err != nil {
		return err
	}

	webexHandler := handlers.NewWebexEventsHandler(validator, processor, pool, alertMiddleware.WrapBackgroundTask)
	commandsHandler := handlers.NewCommandsHandler(dnacService)
	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(cfg.CommandAPIKey)

	router := mux.NewRouter()
	webexHandler.SetupEndpoints(router)
	commandsHandler.SetupEndpoints(router, apiKeyMiddleware)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Error("❌ Failed to write health check response", "error", err)
		}
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.Use(middleware.RequestID, metrics.Middleware)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	err = handleGracefulShutdown(server)

	<-janitor.Stop().Done()
	pool.StopWait()
	alertMiddleware.Wait()
	log.Info("✅ Background workers drained")

	return err
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("✅ Listening", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-stop:
		log.Info("🛑 Shutdown signal received, cleaning up...")
	case err := <-serverErr:
		log.Error("❌ Server error", "error", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("❌ Server shutdown error", "error", err)
		return err
	}

	log.Info("✅ Server stopped gracefully")
	return nil
}
