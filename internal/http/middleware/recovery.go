package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/faqbot-backend/internal/http/response"
	"github.com/campusgate/faqbot-backend/internal/platform/logger"
)

// Recovery converts panics into the generic 500 envelope. The detail is
// logged for operators and never reaches the client.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if log != nil {
			log.Error("panic recovered",
				"path", c.Request.URL.Path,
				"panic", recovered,
				"request_id", RequestID(c),
			)
		}
		response.RespondError(c, http.StatusInternalServerError, response.MsgInternalError)
		c.Abort()
	})
}
