package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// AttachRequestID tags every request with an id so log lines from one
// exchange can be correlated. Honors an incoming X-Request-ID.
func AttachRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestID returns the id set by AttachRequestID, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
