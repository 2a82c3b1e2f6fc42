package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Effortree/backend/dto"
	"github.com/Effortree/backend/middleware"
	"github.com/Effortree/backend/model"
	"github.com/Effortree/backend/repository"
	"github.com/Effortree/backend/services"
	"github.com/Effortree/backend/usecase"
	"github.com/Effortree/backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Interpreter is the LLM collaborator boundary for the parent view.
// Only narrative sentences cross it, never raw counts or dates.
type Interpreter interface {
	Interpret(ctx context.Context, narrative []string) services.ParentInterpretation
	Answer(ctx context.Context, narrative []string, question string) string
}

// GiftStore is what the gift endpoints need from persistence.
type GiftStore interface {
	UpsertGift(ctx context.Context, gift *model.Gift) error
	FindGift(ctx context.Context, childUserID int) (*model.Gift, error)
	DeleteGift(ctx context.Context, childUserID int) error
}

// ImageUploader stores a resized gift image and returns its public URL.
type ImageUploader interface {
	UploadGiftImage(ctx context.Context, objectName string, r io.Reader) (string, error)
}

type ParentsHandler struct {
	analytics *usecase.AnalyticsService
	gifts     GiftStore
	llm       Interpreter
	cache     *services.InterpretationCache
	storage   ImageUploader
}

// NewParentsHandler wires the parent view. cache and storage may be
// nil; interpretation then regenerates every request and gifts save
// without images.
func NewParentsHandler(
	analytics *usecase.AnalyticsService,
	gifts GiftStore,
	llm Interpreter,
	cache *services.InterpretationCache,
	storage ImageUploader,
) *ParentsHandler {
	return &ParentsHandler{
		analytics: analytics,
		gifts:     gifts,
		llm:       llm,
		cache:     cache,
		storage:   storage,
	}
}

func (h *ParentsHandler) GetInterpretation(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if cached, ok := h.cache.Get(ctx, userID); ok {
		c.JSON(http.StatusOK, dto.InterpretationResponse{
			CurrentGuidance:         cached.CurrentGuidance,
			InterpretationRationale: cached.InterpretationRationale,
		})
		return
	}

	signals, err := h.analytics.ExtractParentSignals(ctx, userID)
	if err != nil {
		log.Printf("extracting parent signals: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to read activity")
		return
	}

	narrative := usecase.BuildNarrativeFeatures(signals)
	interp := h.llm.Interpret(ctx, narrative)

	outcome := "ok"
	if interp.CurrentGuidance == services.ParentFallbackAnswer {
		outcome = "fallback"
	} else {
		h.cache.Set(ctx, userID, interp)
	}
	middleware.LLMCallsTotal.WithLabelValues("interpretation", outcome).Inc()

	c.JSON(http.StatusOK, dto.InterpretationResponse{
		CurrentGuidance:         interp.CurrentGuidance,
		InterpretationRationale: interp.InterpretationRationale,
	})
}

func (h *ParentsHandler) ParentChat(c *gin.Context) {
	var req dto.ParentChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId and question are required")
		return
	}

	ctx := c.Request.Context()

	signals, err := h.analytics.ExtractParentSignals(ctx, req.UserID)
	if err != nil {
		log.Printf("extracting parent signals: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to read activity")
		return
	}

	answer := h.llm.Answer(ctx, usecase.BuildNarrativeFeatures(signals), req.Question)

	outcome := "ok"
	switch answer {
	case services.ParentRefusalAnswer:
		outcome = "refused"
	case services.ParentFallbackAnswer:
		outcome = "fallback"
	}
	middleware.LLMCallsTotal.WithLabelValues("chat", outcome).Inc()

	c.JSON(http.StatusOK, dto.ParentChatResponse{
		Answer:     answer,
		Disclaimer: services.ParentChatDisclaimer,
	})
}

func (h *ParentsHandler) SaveGift(c *gin.Context) {
	userIDStr := c.PostForm("userId")
	message := c.PostForm("message")
	if userIDStr == "" || message == "" {
		utils.BadRequest(c, "Missing data")
		return
	}
	userID, err := strconv.Atoi(userIDStr)
	if err != nil {
		utils.BadRequest(c, "Missing or invalid userId")
		return
	}

	imageURL := ""
	if file, err := c.FormFile("giftImage"); err == nil && h.storage != nil {
		src, err := file.Open()
		if err != nil {
			utils.BadRequest(c, "Unreadable image")
			return
		}
		defer src.Close()

		objectName := "gift_" + userIDStr + "_" + uuid.New().String() + ".jpg"
		imageURL, err = h.storage.UploadGiftImage(c.Request.Context(), objectName, src)
		if err != nil {
			log.Printf("uploading gift image: %v", err)
			middleware.ErrorsTotal.WithLabelValues("storage").Inc()
			utils.InternalError(c, "Failed to store image")
			return
		}
	}

	gift := &model.Gift{
		ChildUserID: userID,
		Message:     message,
		ImageURL:    imageURL,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.gifts.UpsertGift(c.Request.Context(), gift); err != nil {
		log.Printf("saving gift: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to save gift")
		return
	}

	c.JSON(http.StatusOK, dto.GiftSavedResponse{Status: "saved", ImageURL: imageURL})
}

func (h *ParentsHandler) GetGift(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	gift, err := h.gifts.FindGift(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrGiftNotFound) {
		utils.NotFound(c, "No gift found for this child.")
		return
	}
	if err != nil {
		log.Printf("fetching gift: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to fetch gift")
		return
	}

	c.JSON(http.StatusOK, dto.GiftResponse{
		ChildUserID: gift.ChildUserID,
		Message:     gift.Message,
		ImageURL:    gift.ImageURL,
		UpdatedAt:   gift.UpdatedAt,
	})
}

func (h *ParentsHandler) DeleteGift(c *gin.Context) {
	var req dto.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId is required")
		return
	}

	err := h.gifts.DeleteGift(c.Request.Context(), req.UserID)
	if errors.Is(err, repository.ErrGiftNotFound) {
		utils.NotFound(c, "No gift found to delete.")
		return
	}
	if err != nil {
		log.Printf("deleting gift: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to delete gift")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
