package middleware

import (
	"net/http"
	"runtime/debug"

	"git.thinkinpower.net/cardtype/mod"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

// Recovery turns a panic in a handler into a logged stack trace and a 500
// response envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithFields(logger.Fields{
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				}).Errorf("panic: %v\n%s", err, string(debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					mod.ResponseValue{Code: mod.ResponseCodeFailure, Msg: "服务器内部错误"})
			}
		}()
		c.Next()
	}
}
