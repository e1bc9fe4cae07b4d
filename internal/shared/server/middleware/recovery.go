package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"career-coach/internal/shared/server/respond"
	"career-coach/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 internal_error envelope. The
// stack is logged with the request and profile it belongs to.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("panic", respond.LogFields(c, map[string]any{
				"error": telemetry.Truncate(fmt.Sprint(rec), 500),
				"route": c.FullPath(),
				"stack": string(debug.Stack()),
			}))
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
		}()
		c.Next()
	}
}
