package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradepool/internal/domain/dto"
	"github.com/guttosm/tradepool/internal/domain/models"
	"github.com/guttosm/tradepool/internal/escrow"
	"github.com/guttosm/tradepool/internal/middleware"
)

// EscrowService is the engine surface the HTTP layer depends on.
type EscrowService interface {
	CreateTrade(ctx context.Context, terms escrow.TradeTerms) (*models.Trade, error)
	CreateAndDeposit(ctx context.Context, terms escrow.TradeTerms, side models.Side, caller string) (*models.Trade, error)
	Deposit(ctx context.Context, tradeID int64, side models.Side, caller string) (*models.Trade, error)
	Settle(ctx context.Context, tradeID int64) (*models.Trade, error)
	Claim(ctx context.Context, tradeID int64, side models.Side, caller string) (*models.Trade, error)
	Withdraw(ctx context.Context, tradeID int64, side models.Side, caller string) (*models.Trade, error)
	Get(ctx context.Context, tradeID int64) (*models.Trade, error)
}

// Handler provides HTTP handlers for the trade lifecycle endpoints.
//
// Responsibilities:
//   - Validate incoming request bodies and path parameters
//   - Call the escrow engine
//   - Translate engine results and errors into JSON responses
type Handler struct {
	svc EscrowService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc EscrowService) *Handler {
	return &Handler{svc: svc}
}

func tradeTerms(req dto.CreateTradeRequest) escrow.TradeTerms {
	return escrow.TradeTerms{
		CollateralAsset: req.CollateralAsset,
		PayoffPlugin:    req.PayoffPlugin,
		PayoffID:        req.PayoffID,
		LongRequired:    req.LongRequired,
		ShortRequired:   req.ShortRequired,
		DepositEnd:      req.DepositEnd,
		SettleStart:     req.SettleStart,
	}
}

func tradeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid trade id", err)
		return 0, false
	}
	return id, true
}

func sideParty(c *gin.Context) (models.Side, string, bool) {
	var req dto.SideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return 0, "", false
	}
	side, err := models.ParseSide(req.Side)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid side", err)
		return 0, "", false
	}
	return side, req.User, true
}

func (h *Handler) respond(c *gin.Context, status int, trade *models.Trade, err error) {
	if err != nil {
		c.JSON(middleware.StatusFor(err), dto.NewErrorResponse("trade operation failed", err))
		return
	}
	c.JSON(status, dto.NewTradeResponse(trade))
}

// CreateTrade handles POST /api/v1/trades.
//
// CreateTrade godoc
// @Summary      Create a trade
// @Description  Registers a new collateralized trade with the given terms
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateTradeRequest  true  "Trade terms"
// @Success      201      {object}  dto.TradeResponse       "Created"
// @Failure      400      {object}  dto.ErrorResponse       "Invalid terms"
// @Failure      500      {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/trades [post]
func (h *Handler) CreateTrade(c *gin.Context) {
	var req dto.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	trade, err := h.svc.CreateTrade(c.Request.Context(), tradeTerms(req))
	h.respond(c, http.StatusCreated, trade, err)
}

// CreateAndDeposit handles POST /api/v1/trades/deposit.
//
// CreateAndDeposit godoc
// @Summary      Create a trade and fund one side
// @Description  Creates a trade and immediately deposits the caller's side; the trade is discarded if the deposit fails
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateAndDepositRequest  true  "Trade terms plus funding side"
// @Success      201      {object}  dto.TradeResponse            "Created and funded"
// @Failure      400      {object}  dto.ErrorResponse            "Invalid terms or side"
// @Failure      422      {object}  dto.ErrorResponse            "Transfer failure"
// @Failure      503      {object}  dto.ErrorResponse            "Pool paused"
// @Router       /api/v1/trades/deposit [post]
func (h *Handler) CreateAndDeposit(c *gin.Context) {
	var req dto.CreateAndDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	side, err := models.ParseSide(req.Side)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid side", err)
		return
	}
	trade, err := h.svc.CreateAndDeposit(c.Request.Context(), tradeTerms(req.CreateTradeRequest), side, req.User)
	h.respond(c, http.StatusCreated, trade, err)
}

// GetTrade handles GET /api/v1/trades/:id.
//
// GetTrade godoc
// @Summary      Get a trade
// @Description  Returns the current state of a trade
// @Tags         trades
// @Produce      json
// @Param        id   path      int                true  "Trade ID"
// @Success      200  {object}  dto.TradeResponse  "Success"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/trades/{id} [get]
func (h *Handler) GetTrade(c *gin.Context) {
	id, ok := tradeID(c)
	if !ok {
		return
	}
	trade, err := h.svc.Get(c.Request.Context(), id)
	h.respond(c, http.StatusOK, trade, err)
}

// Deposit handles POST /api/v1/trades/:id/deposit.
//
// Deposit godoc
// @Summary      Fund one side of a trade
// @Description  Transfers the side's required collateral into custody and binds the caller to that side
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Trade ID"
// @Param        request  body      dto.SideRequest    true  "Side and user"
// @Success      200      {object}  dto.TradeResponse  "Funded"
// @Failure      409      {object}  dto.ErrorResponse  "Window closed or side already funded"
// @Failure      422      {object}  dto.ErrorResponse  "Transfer failure"
// @Failure      503      {object}  dto.ErrorResponse  "Pool paused"
// @Router       /api/v1/trades/{id}/deposit [post]
func (h *Handler) Deposit(c *gin.Context) {
	id, ok := tradeID(c)
	if !ok {
		return
	}
	side, user, ok := sideParty(c)
	if !ok {
		return
	}
	trade, err := h.svc.Deposit(c.Request.Context(), id, side, user)
	h.respond(c, http.StatusOK, trade, err)
}

// Settle handles POST /api/v1/trades/:id/settle.
//
// Settle godoc
// @Summary      Settle a trade
// @Description  Runs the trade's payoff plugin once both sides are funded and the settlement window is open
// @Tags         trades
// @Produce      json
// @Param        id   path      int                true  "Trade ID"
// @Success      200  {object}  dto.TradeResponse  "Settled"
// @Failure      409  {object}  dto.ErrorResponse  "Too early, unfunded, or already settled"
// @Router       /api/v1/trades/{id}/settle [post]
func (h *Handler) Settle(c *gin.Context) {
	id, ok := tradeID(c)
	if !ok {
		return
	}
	trade, err := h.svc.Settle(c.Request.Context(), id)
	h.respond(c, http.StatusOK, trade, err)
}

// Claim handles POST /api/v1/trades/:id/claim.
//
// Claim godoc
// @Summary      Claim a settled payout
// @Description  Pays the side's settled amount out of custody to its bound user
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Trade ID"
// @Param        request  body      dto.SideRequest    true  "Side and user"
// @Success      200      {object}  dto.TradeResponse  "Claimed"
// @Failure      403      {object}  dto.ErrorResponse  "Caller is not the side's user"
// @Failure      409      {object}  dto.ErrorResponse  "Not settled or already claimed"
// @Failure      503     {object}  dto.ErrorResponse  "Pool paused"
// @Router       /api/v1/trades/{id}/claim [post]
func (h *Handler) Claim(c *gin.Context) {
	id, ok := tradeID(c)
	if !ok {
		return
	}
	side, user, ok := sideParty(c)
	if !ok {
		return
	}
	trade, err := h.svc.Claim(c.Request.Context(), id, side, user)
	h.respond(c, http.StatusOK, trade, err)
}

// Withdraw handles POST /api/v1/trades/:id/withdraw.
//
// Withdraw godoc
// @Summary      Withdraw a deposit from an unsettled trade
// @Description  Returns the side's deposit after the deposit window closed without settlement
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Trade ID"
// @Param        request  body      dto.SideRequest    true  "Side and user"
// @Success      200      {object}  dto.TradeResponse  "Withdrawn"
// @Failure      403      {object}  dto.ErrorResponse  "Caller is not the side's user"
// @Failure      409      {object}  dto.ErrorResponse  "Window still open, settled, or nothing to withdraw"
// @Failure      503      {object}  dto.ErrorResponse  "Pool paused"
// @Router       /api/v1/trades/{id}/withdraw [post]
func (h *Handler) Withdraw(c *gin.Context) {
	id, ok := tradeID(c)
	if !ok {
		return
	}
	side, user, ok := sideParty(c)
	if !ok {
		return
	}
	trade, err := h.svc.Withdraw(c.Request.Context(), id, side, user)
	h.respond(c, http.StatusOK, trade, err)
}
