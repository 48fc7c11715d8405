package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/faqbot-backend/internal/faq"
	"github.com/campusgate/faqbot-backend/internal/http/response"
	"github.com/campusgate/faqbot-backend/internal/platform/logger"
)

type QuestionsHandler struct {
	log *logger.Logger
	svc *faq.Service
}

func NewQuestionsHandler(log *logger.Logger, svc *faq.Service) *QuestionsHandler {
	return &QuestionsHandler{log: log, svc: svc}
}

// GET /questions/:section
func (h *QuestionsHandler) GetQuestions(c *gin.Context) {
	section := c.Param("section")

	questions, err := h.svc.ListQuestions(section)
	if err != nil {
		if errors.Is(err, faq.ErrUnknownSection) {
			msg := "Invalid section. Available sections: " + strings.Join(h.svc.Sections(), ", ")
			response.RespondError(c, http.StatusBadRequest, msg)
			return
		}
		h.log.Error("list questions failed", "section", section, "error", err)
		response.RespondError(c, http.StatusInternalServerError, response.MsgInternalError)
		return
	}

	h.log.Debug("questions served", "section", section, "count", len(questions))
	response.RespondOK(c, gin.H{"questions": questions})
}
