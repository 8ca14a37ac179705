package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tradepool/internal/domain/dto"
	"github.com/guttosm/tradepool/internal/escrow"
	"github.com/guttosm/tradepool/internal/ledger"
)

// StatusFor maps domain errors onto HTTP status codes. Unknown errors map
// to 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, escrow.ErrInvalidTerms):
		return http.StatusBadRequest
	case errors.Is(err, escrow.ErrWindowViolation):
		return http.StatusConflict
	case errors.Is(err, escrow.ErrStateConflict):
		return http.StatusConflict
	case errors.Is(err, escrow.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, escrow.ErrTransferFailure), errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, escrow.ErrPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, escrow.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError attaches an error envelope to the response and stops the
// handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

// ErrorHandler converts errors collected via c.Error into a JSON envelope
// using the domain status mapping. Handlers that already wrote a response
// are left alone.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	c.JSON(StatusFor(err), dto.NewErrorResponse("Request failed", err))
}
