package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

// ErrorMiddleware turns errors attached via c.Error into JSON responses.
// Display text always goes through apperror.Display so no handler can leak a
// blank or internal message to the user.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		if status >= 500 {
			log.Error("Request failed", err, zap.String("path", c.Request.URL.Path))
		} else {
			log.Warn("Request rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(status, appErr.ToJSON())
			return
		}
		c.JSON(status, gin.H{"error": apperror.Display(err)})
	}
}

// CORSMiddleware mirrors the permissive policy of the original deployment.
// No pack library covers CORS; the header set is small enough to write out.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
