package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

// Recovery turns a panic into a 500 envelope. The stack trace is included in
// the response only when showStack is set.
func Recovery(logger logrus.FieldLogger, showStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			stack := string(debug.Stack())
			logger.WithFields(logrus.Fields{
				"panic":  fmt.Sprint(rec),
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"stack":  stack,
			}).Error("Recovered from panic")

			resp := models.APIResponse{
				Success: false,
				Error:   "Internal server error",
			}
			if showStack {
				resp.Error = fmt.Sprint(rec)
				resp.Stack = stack
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		}()

		c.Next()
	}
}
