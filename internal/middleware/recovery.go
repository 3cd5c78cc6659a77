package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/BerylCAtieno/content-generator/internal/apperror"
	"github.com/BerylCAtieno/content-generator/internal/logger"
	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 JSON error.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					fmt.Errorf("%v", r),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    apperror.CodeInternal,
					"message": "internal server error",
				})
			}
		}()

		c.Next()
	}
}
