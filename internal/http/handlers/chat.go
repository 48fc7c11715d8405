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

type ChatHandler struct {
	log *logger.Logger
	svc *faq.Service
}

func NewChatHandler(log *logger.Logger, svc *faq.Service) *ChatHandler {
	return &ChatHandler{log: log, svc: svc}
}

// chatRequest keeps QuestionNumber as a pointer so a body carrying an
// explicit 0 still counts as present: question numbers are 1-based, and 0
// must reach range validation instead of being mistaken for an absent field.
type chatRequest struct {
	Section        string `json:"section"`
	QuestionNumber *int   `json:"questionNumber"`
}

// POST /chat
func (h *ChatHandler) PostChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.MsgMissingChatParams)
		return
	}
	if strings.TrimSpace(req.Section) == "" || req.QuestionNumber == nil {
		response.RespondError(c, http.StatusBadRequest, response.MsgMissingChatParams)
		return
	}

	h.log.Debug("chat request", "section", req.Section, "question_number", *req.QuestionNumber)

	payload, err := h.svc.Answer(req.Section, *req.QuestionNumber)
	if err != nil {
		if errors.Is(err, faq.ErrUnknownSection) || errors.Is(err, faq.ErrUnknownQuestion) {
			response.RespondError(c, http.StatusBadRequest, response.MsgInvalidChat)
			return
		}
		h.log.Error("answer lookup failed", "section", req.Section, "question_number", *req.QuestionNumber, "error", err)
		response.RespondError(c, http.StatusInternalServerError, response.MsgInternalError)
		return
	}

	response.RespondOK(c, payload)
}
