package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sentinel-energy/uncertainty-cascade/internal/api/models"
)

// ErrorHandler recovers handler panics, logs the recovered value and
// answers with the standard error envelope instead of a bare 500.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		var detail string
		switch v := recovered.(type) {
		case error:
			detail = v.Error()
		case string:
			detail = v
		default:
			detail = fmt.Sprintf("%v", recovered)
		}
		log.Error().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("panic", detail).
			Msg("recovered from handler panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "An unexpected error occurred",
			},
		})
	})
}
