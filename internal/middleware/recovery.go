package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tradepool/internal/domain/dto"
	"github.com/guttosm/tradepool/internal/logger"
)

// RecoveryMiddleware recovers from panics during request handling, logs the
// stack trace, and returns a standardized JSON error response.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.L().Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				errResponse := dto.NewErrorResponse("Internal server error", fmt.Errorf("%v", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError, errResponse)
			}
		}()

		c.Next()
	}
}
