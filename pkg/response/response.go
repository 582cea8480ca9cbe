package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the payload returned for failures that carry one.
// Bad or missing identifiers answer with an empty body, matching the
// documented wire contract.
type ErrorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// Error writes an error payload with the given status.
func Error(c *gin.Context, status int, msg string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, ErrorBody{Error: msg, Details: details})
}

// AbortError writes an error payload and aborts the handler chain.
func AbortError(c *gin.Context, status int, msg string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg, Details: details})
}
