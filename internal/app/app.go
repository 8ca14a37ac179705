package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradepool/config"
	"github.com/guttosm/tradepool/internal/api"
	"github.com/guttosm/tradepool/internal/escrow"
	"github.com/guttosm/tradepool/internal/ledger"
	"github.com/guttosm/tradepool/internal/oracle"
	"github.com/guttosm/tradepool/internal/payoff"
	"github.com/guttosm/tradepool/internal/storage"
	"github.com/guttosm/tradepool/internal/ws"
)

// InitializeApp sets up all application dependencies and returns a fully
// configured Gin router, the WebSocket hub (to be run by the caller), a
// cleanup function for graceful shutdown, and any error encountered during
// initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the trade repository and the account ledger.
//   - Wires the oracle adapter, the digital payoff plugin and the registry.
//   - Builds the escrow engine with the pause gate and event emitters.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
func InitializeApp() (*gin.Engine, *ws.Hub, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Persistence: trade rows and account balances
	repo := storage.NewTradeRepository(db)
	accounts := ledger.NewPostgres(db)

	// Price sources and payoff plugins
	oracles := oracle.NewAdapter()
	digital := payoff.NewDigitalPool(oracles)
	registry := payoff.NewRegistry()
	registry.Register(digital)

	// Escrow engine with pause gate and event fan-out
	hub := ws.NewHub()
	gate := escrow.NewGate()
	engine := escrow.NewEngine(repo, accounts, registry)
	engine.SetPauses(gate)
	engine.SetEmitter(escrow.MultiEmitter{escrow.LogEmitter{}, hub})

	// HTTP layer
	handler := api.NewHandler(engine)
	admin := api.NewAdminHandler(digital, oracles, accounts, gate, hub, cfg.Oracle.HTTPTimeout)
	router := api.NewRouter(handler, admin, hub, cfg.Admin.Token)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return router, hub, cleanup, nil
}
