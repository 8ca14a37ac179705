package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/guttosm/tradepool/internal/domain/dto"
	"github.com/guttosm/tradepool/internal/escrow"
	"github.com/guttosm/tradepool/internal/ledger"
	"github.com/guttosm/tradepool/internal/oracle"
	"github.com/guttosm/tradepool/internal/payoff"
)

type recordingEmitter struct {
	events []escrow.Event
}

func (r *recordingEmitter) Emit(evt escrow.Event) { r.events = append(r.events, evt) }

func setupAdminRouter(t *testing.T) (*gin.Engine, *escrow.Gate, *recordingEmitter, *ledger.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adapter := oracle.NewAdapter()
	pool := payoff.NewDigitalPool(adapter)
	accounts := ledger.NewMemory()
	gate := escrow.NewGate()
	emitter := &recordingEmitter{}

	h := NewAdminHandler(pool, adapter, accounts, gate, emitter, time.Second)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/payoffs/digital", h.CreateDigitalPayoff)
	v1.POST("/oracles", h.CreateOracle)
	v1.GET("/accounts/:asset/:holder", h.GetBalance)
	v1.POST("/accounts/credit", h.Credit)
	v1.POST("/admin/pause", h.Pause)
	v1.POST("/admin/unpause", h.Unpause)
	return r, gate, emitter, accounts
}

func TestCreateOracleAndPayoff(t *testing.T) {
	r, _, _, _ := setupAdminRouter(t)

	// Static oracle first so the payoff has something to point at.
	w := doJSON(t, r, http.MethodPost, "/api/v1/oracles", dto.CreateOracleRequest{Kind: "static", Price: decimal.NewFromInt(120)})
	if w.Code != http.StatusCreated {
		t.Fatalf("oracle: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var oracleResp dto.OracleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &oracleResp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/payoffs/digital", dto.CreateDigitalPayoffRequest{
		Strike:   decimal.NewFromInt(100),
		IsCall:   true,
		OracleID: oracleResp.OracleID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("payoff: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var payoffResp dto.PayoffResponse
	if err := json.Unmarshal(w.Body.Bytes(), &payoffResp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payoffResp.Plugin != payoff.PluginDigital || payoffResp.PayoffID != 1 {
		t.Fatalf("unexpected payoff response %+v", payoffResp)
	}

	// Invalid inputs.
	cases := []struct {
		name string
		path string
		body any
	}{
		{"unknown oracle kind", "/api/v1/oracles", dto.CreateOracleRequest{Kind: "carrier-pigeon"}},
		{"http oracle without url", "/api/v1/oracles", dto.CreateOracleRequest{Kind: "http"}},
		{"negative strike", "/api/v1/payoffs/digital", dto.CreateDigitalPayoffRequest{Strike: decimal.NewFromInt(-1), OracleID: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestCreditAndBalance(t *testing.T) {
	r, _, _, _ := setupAdminRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/accounts/credit", dto.CreditRequest{
		Asset: "USDC", Holder: "alice", Amount: decimal.NewFromInt(500),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("credit: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/USDC/alice", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("balance: expected 200, got %d", rec.Code)
	}
	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("balance = %s, want 500", resp.Balance)
	}

	// Custody account is not directly creditable.
	w = doJSON(t, r, http.MethodPost, "/api/v1/accounts/credit", dto.CreditRequest{
		Asset: "USDC", Holder: ledger.Custody, Amount: decimal.NewFromInt(1),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("custody credit: expected 400, got %d", w.Code)
	}
}

func TestPauseToggle(t *testing.T) {
	r, gate, emitter, _ := setupAdminRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/pause", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pause: expected 200, got %d", w.Code)
	}
	if !gate.IsPaused() {
		t.Fatal("gate not paused")
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/unpause", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unpause: expected 200, got %d", w.Code)
	}
	if gate.IsPaused() {
		t.Fatal("gate still paused")
	}

	if len(emitter.events) != 2 || emitter.events[0].Type != escrow.EventTypePoolPaused || emitter.events[1].Type != escrow.EventTypePoolUnpaused {
		t.Fatalf("unexpected events %+v", emitter.events)
	}
}
