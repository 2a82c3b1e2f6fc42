package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Effortree/backend/dto"
	"github.com/Effortree/backend/middleware"
	"github.com/Effortree/backend/model"
	"github.com/Effortree/backend/usecase"
	"github.com/Effortree/backend/utils"

	"github.com/gin-gonic/gin"
)

// Tutor is the LLM collaborator boundary for the tutoring chat.
type Tutor interface {
	TutorReply(ctx context.Context, history, message string) string
	SummarizeLogs(ctx context.Context, logsText string) string
}

// ChatStore persists both sides of the tutor conversation.
type ChatStore interface {
	AppendMessage(ctx context.Context, msg *model.ChatMessage) error
	RecentMessages(ctx context.Context, userID int, limit int) ([]*model.ChatMessage, error)
}

type TutorHandler struct {
	chats ChatStore
	llm   Tutor
}

func NewTutorHandler(chats ChatStore, llm Tutor) *TutorHandler {
	return &TutorHandler{chats: chats, llm: llm}
}

func (h *TutorHandler) Chat(c *gin.Context) {
	var req dto.TutorChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId and message are required")
		return
	}

	ctx := c.Request.Context()

	recent, err := h.chats.RecentMessages(ctx, req.UserID, 6)
	if err != nil {
		log.Printf("loading chat history: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		// A missing history shouldn't block the answer.
		recent = nil
	}

	answer := h.llm.TutorReply(ctx, usecase.BuildTutorHistory(recent), req.Message)

	now := time.Now().UTC().Format(time.RFC3339)
	for _, msg := range []*model.ChatMessage{
		{UserID: req.UserID, Role: model.RoleUser, Content: req.Message, CreatedAt: now},
		{UserID: req.UserID, Role: model.RoleAssistant, Content: answer, CreatedAt: now},
	} {
		if err := h.chats.AppendMessage(ctx, msg); err != nil {
			log.Printf("persisting chat message: %v", err)
			middleware.ErrorsTotal.WithLabelValues("db").Inc()
		}
	}

	middleware.LLMCallsTotal.WithLabelValues("tutor", "ok").Inc()
	c.JSON(http.StatusOK, dto.TutorChatResponse{Answer: answer})
}

// Summarize turns a day's raw activity log text into a short
// reflective summary.
func (h *TutorHandler) Summarize(c *gin.Context) {
	var req struct {
		Logs string `json:"logs" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "logs text is required")
		return
	}

	summary := h.llm.SummarizeLogs(c.Request.Context(), req.Logs)
	middleware.LLMCallsTotal.WithLabelValues("summary", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
