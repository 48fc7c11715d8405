package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpH "github.com/campusgate/faqbot-backend/internal/http/handlers"
	httpMW "github.com/campusgate/faqbot-backend/internal/http/middleware"
	"github.com/campusgate/faqbot-backend/internal/http/response"
	"github.com/campusgate/faqbot-backend/internal/platform/logger"
)

type RouterConfig struct {
	Logger *logger.Logger

	QuestionsHandler *httpH.QuestionsHandler
	ChatHandler      *httpH.ChatHandler
	HealthHandler    *httpH.HealthHandler

	AllowedOrigins []string
	RateLimit      httpMW.RateLimitConfig
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(httpMW.Recovery(cfg.Logger))
	r.Use(httpMW.AttachRequestID())
	r.Use(httpMW.RequestLogger(cfg.Logger))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.RateLimit(cfg.RateLimit))

	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.QuestionsHandler != nil {
		r.GET("/questions/:section", cfg.QuestionsHandler.GetQuestions)
	}
	if cfg.ChatHandler != nil {
		r.POST("/chat", cfg.ChatHandler.PostChat)
	}

	r.NoRoute(func(c *gin.Context) {
		response.RespondError(c, http.StatusNotFound, response.MsgNotFound)
	})

	return r
}
