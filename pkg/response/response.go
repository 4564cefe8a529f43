package response

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/orgauth-service/pkg/apperror"
)

const StatusSuccess = "success"

// APIResponse is the envelope of every JSON body the service writes.
// Status is "success", "error" (4xx) or "fail" (everything else).
type APIResponse[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// Success writes a success envelope carrying data.
func Success[T any](c *gin.Context, code int, message string, data T) {
	c.JSON(code, APIResponse[T]{Status: StatusSuccess, Message: message, Data: data})
}

// Message writes a success envelope without data.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse[any]{Status: StatusSuccess, Message: message})
}

// Fail writes a failure envelope that still carries data.
func Fail[T any](c *gin.Context, code int, message string, data T) {
	c.JSON(code, APIResponse[T]{Status: apperror.StatusFor(code), Message: message, Data: data})
}

// Error writes a failure envelope. The status word is derived from code.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse[any]{Status: apperror.StatusFor(code), Message: message})
}
