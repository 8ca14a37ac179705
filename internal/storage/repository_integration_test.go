//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/tradepool/internal/domain/models"
	"github.com/guttosm/tradepool/internal/escrow"
	"github.com/guttosm/tradepool/internal/ledger"
	"github.com/guttosm/tradepool/internal/oracle"
	"github.com/guttosm/tradepool/internal/payoff"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "tradepool",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=tradepool sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "tradepool")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

// newIntegrationEngine wires a full engine over the real database: trade rows
// and account balances both live in Postgres, prices come from a static
// source behind the oracle adapter.
func newIntegrationEngine(t *testing.T, db *sql.DB, spot string) (*escrow.Engine, *ledger.Postgres, func(int64)) {
	t.Helper()

	adapter := oracle.NewAdapter()
	oracleID, err := adapter.InsertOracle(oracle.NewStaticSource(decimal.RequireFromString(spot)))
	if err != nil {
		t.Fatalf("insert oracle: %v", err)
	}

	pool := payoff.NewDigitalPool(adapter)
	registry := payoff.NewRegistry()
	registry.Register(pool)

	payoffID, err := pool.CreateDigitalPayoff(decimal.RequireFromString("100"), true, oracleID)
	if err != nil {
		t.Fatalf("create payoff: %v", err)
	}
	if payoffID != 1 {
		t.Fatalf("payoff id = %d, want 1", payoffID)
	}

	accounts := ledger.NewPostgres(db)
	engine := escrow.NewEngine(NewTradeRepository(db), accounts, registry)

	now := time.Now().Unix()
	setNow := func(offset int64) { engine.SetNowFunc(func() int64 { return now + offset }) }
	setNow(0)
	return engine, accounts, setNow
}

func TestEscrowFlow_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	ctx := context.Background()
	engine, accounts, setNow := newIntegrationEngine(t, db, "120")

	if err := accounts.Credit(ctx, "USDC", "alice", decimal.NewFromInt(500)); err != nil {
		t.Fatalf("credit alice: %v", err)
	}
	if err := accounts.Credit(ctx, "USDC", "bob", decimal.NewFromInt(1000)); err != nil {
		t.Fatalf("credit bob: %v", err)
	}

	now := time.Now().Unix()
	terms := escrow.TradeTerms{
		CollateralAsset: "USDC",
		PayoffPlugin:    payoff.PluginDigital,
		PayoffID:        1,
		LongRequired:    decimal.NewFromInt(10),
		ShortRequired:   decimal.NewFromInt(100),
		DepositEnd:      now + 2*24*3600,
		SettleStart:     now + 15*24*3600,
	}

	created, err := engine.CreateTrade(ctx, terms)
	if err != nil {
		t.Fatalf("create trade: %v", err)
	}
	id := created.ID

	if _, err := engine.Deposit(ctx, id, models.SideLong, "alice"); err != nil {
		t.Fatalf("long deposit: %v", err)
	}
	if _, err := engine.Deposit(ctx, id, models.SideShort, "bob"); err != nil {
		t.Fatalf("short deposit: %v", err)
	}

	custody, _ := accounts.Balance(ctx, "USDC", ledger.Custody)
	if !custody.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("custody = %s, want 110", custody)
	}

	setNow(15*24*3600 + 1)
	if _, err := engine.Settle(ctx, id); err != nil {
		t.Fatalf("settle: %v", err)
	}
	// Spot above strike on a call: the long side takes the whole pot.
	if _, err := engine.Claim(ctx, id, models.SideLong, "alice"); err != nil {
		t.Fatalf("long claim: %v", err)
	}
	if _, err := engine.Claim(ctx, id, models.SideShort, "bob"); err != nil {
		t.Fatalf("short claim: %v", err)
	}

	alice, _ := accounts.Balance(ctx, "USDC", "alice")
	bob, _ := accounts.Balance(ctx, "USDC", "bob")
	custody, _ = accounts.Balance(ctx, "USDC", ledger.Custody)
	if !alice.Equal(decimal.NewFromInt(600)) || !bob.Equal(decimal.NewFromInt(900)) || !custody.IsZero() {
		t.Fatalf("final balances alice=%s bob=%s custody=%s, want 600/900/0", alice, bob, custody)
	}

	trade, err := engine.Get(ctx, id)
	if err != nil {
		t.Fatalf("get trade: %v", err)
	}
	if !trade.Settled || !trade.LongClaimed || !trade.ShortClaimed {
		t.Fatalf("final trade flags %+v", trade)
	}
}

func TestWithdrawFlow_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	ctx := context.Background()
	engine, accounts, setNow := newIntegrationEngine(t, db, "90")

	if err := accounts.Credit(ctx, "USDC", "alice", decimal.NewFromInt(500)); err != nil {
		t.Fatalf("credit alice: %v", err)
	}

	now := time.Now().Unix()
	trade, err := engine.CreateAndDeposit(ctx, escrow.TradeTerms{
		CollateralAsset: "USDC",
		PayoffPlugin:    payoff.PluginDigital,
		PayoffID:        1,
		LongRequired:    decimal.NewFromInt(10),
		ShortRequired:   decimal.NewFromInt(100),
		DepositEnd:      now + 2*24*3600,
		SettleStart:     now + 15*24*3600,
	}, models.SideLong, "alice")
	if err != nil {
		t.Fatalf("create and deposit: %v", err)
	}

	// Counterparty never funds; after the window closes the deposit comes back.
	setNow(2*24*3600 + 1)
	if _, err := engine.Withdraw(ctx, trade.ID, models.SideLong, "alice"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	alice, _ := accounts.Balance(ctx, "USDC", "alice")
	custody, _ := accounts.Balance(ctx, "USDC", ledger.Custody)
	if !alice.Equal(decimal.NewFromInt(500)) || !custody.IsZero() {
		t.Fatalf("balances alice=%s custody=%s, want 500/0", alice, custody)
	}
}
