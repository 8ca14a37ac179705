package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradepool/internal/domain/dto"
	"github.com/guttosm/tradepool/internal/escrow"
	"github.com/guttosm/tradepool/internal/ledger"
	"github.com/guttosm/tradepool/internal/logger"
	"github.com/guttosm/tradepool/internal/middleware"
	"github.com/guttosm/tradepool/internal/oracle"
	"github.com/guttosm/tradepool/internal/payoff"
)

// AdminHandler provides the platform endpoints around the trade lifecycle:
// payoff and oracle registration, account provisioning and the pause switch.
type AdminHandler struct {
	payoffs  *payoff.DigitalPool
	oracles  *oracle.Adapter
	accounts ledger.Ledger
	gate     *escrow.Gate
	emitter  escrow.Emitter
	timeout  time.Duration
}

// NewAdminHandler constructs an AdminHandler. The emitter receives pause and
// unpause events; pass escrow.NoopEmitter when nothing listens.
func NewAdminHandler(payoffs *payoff.DigitalPool, oracles *oracle.Adapter, accounts ledger.Ledger, gate *escrow.Gate, emitter escrow.Emitter, oracleTimeout time.Duration) *AdminHandler {
	return &AdminHandler{
		payoffs:  payoffs,
		oracles:  oracles,
		accounts: accounts,
		gate:     gate,
		emitter:  emitter,
		timeout:  oracleTimeout,
	}
}

// CreateDigitalPayoff handles POST /api/v1/payoffs/digital.
//
// CreateDigitalPayoff godoc
// @Summary      Register a digital payoff
// @Description  Registers a strike/direction pair against an oracle with the digital payoff plugin
// @Tags         payoffs
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateDigitalPayoffRequest  true  "Payoff parameters"
// @Success      201      {object}  dto.PayoffResponse              "Created"
// @Failure      400      {object}  dto.ErrorResponse               "Invalid parameters"
// @Router       /api/v1/payoffs/digital [post]
func (h *AdminHandler) CreateDigitalPayoff(c *gin.Context) {
	var req dto.CreateDigitalPayoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	id, err := h.payoffs.CreateDigitalPayoff(req.Strike, req.IsCall, req.OracleID)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid payoff parameters", err)
		return
	}
	c.JSON(http.StatusCreated, dto.PayoffResponse{Plugin: h.payoffs.Name(), PayoffID: id})
}

// CreateOracle handles POST /api/v1/oracles.
//
// CreateOracle godoc
// @Summary      Register a price oracle
// @Description  Registers an HTTP or static price source and returns its oracle id
// @Tags         oracles
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateOracleRequest  true  "Oracle source"
// @Success      201      {object}  dto.OracleResponse       "Created"
// @Failure      400      {object}  dto.ErrorResponse        "Invalid source"
// @Router       /api/v1/oracles [post]
func (h *AdminHandler) CreateOracle(c *gin.Context) {
	var req dto.CreateOracleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var source oracle.PriceSource
	switch strings.ToLower(req.Kind) {
	case "http":
		if req.URL == "" {
			middleware.AbortWithError(c, http.StatusBadRequest, "http oracle requires url", nil)
			return
		}
		source = oracle.NewHTTPSource(req.URL, h.timeout)
	case "static":
		source = oracle.NewStaticSource(req.Price)
	default:
		middleware.AbortWithError(c, http.StatusBadRequest, "unknown oracle kind", nil)
		return
	}

	id, err := h.oracles.InsertOracle(source)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid oracle source", err)
		return
	}
	c.JSON(http.StatusCreated, dto.OracleResponse{OracleID: id, Description: source.Describe()})
}

// GetBalance handles GET /api/v1/accounts/:asset/:holder.
//
// GetBalance godoc
// @Summary      Read an account balance
// @Tags         accounts
// @Produce      json
// @Param        asset   path      string               true  "Asset symbol"
// @Param        holder  path      string               true  "Holder name"
// @Success      200     {object}  dto.BalanceResponse  "Success"
// @Router       /api/v1/accounts/{asset}/{holder} [get]
func (h *AdminHandler) GetBalance(c *gin.Context) {
	asset := c.Param("asset")
	holder := c.Param("holder")
	balance, err := h.accounts.Balance(c.Request.Context(), asset, holder)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to read balance", err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Asset: asset, Holder: holder, Balance: balance})
}

// Credit handles POST /api/v1/accounts/credit.
//
// Credit godoc
// @Summary      Credit a holder account
// @Description  Mints collateral onto a holder account; admin only
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreditRequest    true  "Credit"
// @Success      200      {object}  dto.BalanceResponse  "New balance"
// @Failure      400      {object}  dto.ErrorResponse    "Invalid request"
// @Router       /api/v1/accounts/credit [post]
func (h *AdminHandler) Credit(c *gin.Context) {
	var req dto.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.accounts.Credit(c.Request.Context(), req.Asset, req.Holder, req.Amount); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "credit rejected", err)
		return
	}
	balance, err := h.accounts.Balance(c.Request.Context(), req.Asset, req.Holder)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to read balance", err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Asset: req.Asset, Holder: req.Holder, Balance: balance})
}

// Pause handles POST /api/v1/admin/pause.
//
// Pause godoc
// @Summary      Pause the pool
// @Description  Blocks deposits, claims and withdrawals until unpaused; reads and settlement stay open
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.PauseResponse  "Paused"
// @Router       /api/v1/admin/pause [post]
func (h *AdminHandler) Pause(c *gin.Context) {
	h.setPaused(c, true)
}

// Unpause handles POST /api/v1/admin/unpause.
//
// Unpause godoc
// @Summary      Unpause the pool
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.PauseResponse  "Unpaused"
// @Router       /api/v1/admin/unpause [post]
func (h *AdminHandler) Unpause(c *gin.Context) {
	h.setPaused(c, false)
}

func (h *AdminHandler) setPaused(c *gin.Context, paused bool) {
	if paused {
		h.gate.Pause()
	} else {
		h.gate.Unpause()
	}
	logger.L().Warn().Bool("paused", paused).Msg("pause state changed")
	if h.emitter != nil {
		h.emitter.Emit(escrow.NewPauseEvent(paused))
	}
	c.JSON(http.StatusOK, dto.PauseResponse{Paused: paused})
}
