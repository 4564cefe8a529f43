package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/orgauth-service/pkg/apperror"
	"github.com/oksasatya/orgauth-service/pkg/response"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Operational errors go out verbatim; anything else is logged and hidden
// behind a generic 500.
func ErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		if ae, ok := apperror.As(err); ok && ae.Operational() {
			if !c.Writer.Written() {
				response.Error(c, ae.Code, ae.Message)
			}
			return
		}

		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(CtxRequestIDKey),
			"user_id":    c.GetString(CtxUserIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		if !c.Writer.Written() {
			response.Error(c, http.StatusInternalServerError, apperror.GenericMessage)
		}
	}
}

// Recovery turns a panic into the generic 500 body.
func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(CtxRequestIDKey),
			"path":       c.Request.URL.Path,
		}).Errorf("panic recovered: %v", recovered)
		response.Error(c, http.StatusInternalServerError, apperror.GenericMessage)
		c.Abort()
	})
}

// NoRoute reports unknown routes through the error boundary.
func NoRoute(c *gin.Context) {
	_ = c.Error(apperror.NotFound(fmt.Sprintf("Sorry this route %s doesn't exist", c.Request.URL.String()), 0))
}
