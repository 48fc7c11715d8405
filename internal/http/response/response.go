package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Client-facing error messages. The invalid-chat message deliberately does
// not reveal whether the section or the question number was wrong.
const (
	MsgMissingChatParams = "Missing required parameters: section and questionNumber"
	MsgInvalidChat       = "Invalid section or question number"
	MsgInternalError     = "Internal server error"
	MsgNotFound          = "Resource not found"
	MsgTooManyRequests   = "Too many requests, please try again later."
)

// ErrorEnvelope is the wire shape of every non-200 response.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorEnvelope{Error: msg})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
