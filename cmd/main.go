package main

//
//  @title           tradepool API
//  @version         1.0
//  @description     Collateralized trade escrow service with oracle-driven settlement.
//  @termsOfService  https://github.com/guttosm/tradepool
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/tradepool
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        trades
//  @tag.description Trade lifecycle: create, deposit, settle, claim, withdraw
//
//  @tag.name        payoffs
//  @tag.description Payoff plugin registration
//
//  @tag.name        oracles
//  @tag.description Price source registration
//
//  @tag.name        accounts
//  @tag.description Account balances and provisioning
//
//  @tag.name        admin
//  @tag.description Pause switch
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goose "github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tradepool/config"
	_ "github.com/guttosm/tradepool/docs" // swagger docs
	"github.com/guttosm/tradepool/internal/app"
	"github.com/guttosm/tradepool/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up
// resources when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - stop (context.CancelFunc): Cancels background workers (the event hub).
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, stop context.CancelFunc, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	stop()
	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runMigrations applies all pending goose migrations from the given directory.
func runMigrations(dir string) error {
	db, err := app.InitPostgres(config.AppConfig)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, dir)
}

// main is the entry point of the tradepool application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API and the WebSocket event stream.
//   - migrate: Applies database migrations and exits.
//
// Flags:
//   - --mode:       Execution mode ("api" or "migrate"). Default: "api".
//   - --migrations: Directory with goose migration files. Default: "./db/migrations".
//   - --port:       Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or migrate")
	migrations := flag.String("migrations", "./db/migrations", "Directory with goose migration files")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "migrate":
		logger.L().Info().Str("dir", *migrations).Msg("running migrations")
		if err := runMigrations(*migrations); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}
		logger.L().Info().Msg("migrations applied")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, hub, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		// The event hub runs until shutdown cancels its context.
		hubCtx, stop := context.WithCancel(ctx)
		g, gctx := errgroup.WithContext(hubCtx)
		g.Go(func() error {
			if err := hub.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, stop, cleanup)

		if err := g.Wait(); err != nil {
			logger.L().Error().Err(err).Msg("event hub stopped with error")
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
