package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Effortree/backend/dto"
	"github.com/Effortree/backend/middleware"
	"github.com/Effortree/backend/model"
	"github.com/Effortree/backend/repository"
	"github.com/Effortree/backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// QuestStore is what the quest endpoints need from persistence.
// *repository.QuestsRepo satisfies it; tests plug in fakes.
type QuestStore interface {
	CreateQuest(ctx context.Context, quest *model.Quest) error
	FindQuestsByUser(ctx context.Context, userID int) ([]*model.Quest, error)
	UpdateQuestFields(ctx context.Context, userID, questID int, fields bson.M) error
	UpdateQuestStatus(ctx context.Context, userID, questID int, status model.QuestStatus) error
	AppendSpentLog(ctx context.Context, userID, questID int, entry model.TimeLogEntry) error
	DeleteQuest(ctx context.Context, userID, questID int) ([]int, error)
}

// IDSource hands out the next questId.
type IDSource interface {
	Next(ctx context.Context, name string) (int, error)
}

type QuestsHandler struct {
	store    QuestStore
	counters IDSource
}

func NewQuestsHandler(store QuestStore, counters IDSource) *QuestsHandler {
	return &QuestsHandler{store: store, counters: counters}
}

func (h *QuestsHandler) CreateQuest(c *gin.Context) {
	var req dto.CreateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	status := model.QuestStatus(req.Status)
	if req.Status == "" {
		status = model.StatusPrepare
	}
	if !model.ValidStatus(status) {
		utils.BadRequest(c, "Invalid status")
		return
	}

	if req.Deadline != "" {
		if _, ok := utils.ParseDate(req.Deadline); !ok {
			utils.BadRequest(c, "Invalid deadline")
			return
		}
	}

	questID, err := h.counters.Next(c.Request.Context(), "questId")
	if err != nil {
		log.Printf("allocating questId: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to create quest")
		return
	}

	quest := &model.Quest{
		QuestID:          questID,
		UserID:           req.UserID,
		Title:            req.Title,
		Subject:          req.Subject,
		Topic:            req.Topic,
		SuggestedMinutes: req.SuggestedMinutes,
		Deadline:         req.Deadline,
		Visibility:       req.Visibility,
		Status:           status,
		CreatedAt:        utils.FormatDate(utils.Today()),
	}

	if err := h.store.CreateQuest(c.Request.Context(), quest); err != nil {
		log.Printf("creating quest: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to create quest")
		return
	}

	middleware.QuestOperationsTotal.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, quest)
}

func (h *QuestsHandler) GetUserQuests(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	quests, err := h.store.FindQuestsByUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("fetching quests: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to fetch quests")
		return
	}
	if quests == nil {
		quests = []*model.Quest{}
	}
	c.JSON(http.StatusOK, quests)
}

func (h *QuestsHandler) UpdateQuest(c *gin.Context) {
	var req dto.UpdateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId and questId are required")
		return
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Difficulty != nil {
		fields["difficulty"] = *req.Difficulty
	}
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	err := h.store.UpdateQuestFields(c.Request.Context(), req.UserID, req.QuestID, fields)
	if errors.Is(err, repository.ErrQuestNotFound) {
		utils.NotFound(c, "Quest not found")
		return
	}
	if err != nil {
		log.Printf("updating quest: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to update quest")
		return
	}

	middleware.QuestOperationsTotal.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Quest updated successfully!"})
}

func (h *QuestsHandler) ChangeQuestStatus(c *gin.Context) {
	var req dto.ChangeQuestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId, questId, and status are required")
		return
	}

	status := model.QuestStatus(req.Status)
	if !model.ValidStatus(status) {
		utils.BadRequest(c, "Invalid status")
		return
	}

	err := h.store.UpdateQuestStatus(c.Request.Context(), req.UserID, req.QuestID, status)
	if errors.Is(err, repository.ErrQuestNotFound) {
		utils.NotFound(c, "Quest not found")
		return
	}
	if err != nil {
		log.Printf("changing quest status: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to change quest status")
		return
	}

	middleware.QuestOperationsTotal.WithLabelValues("status").Inc()
	c.JSON(http.StatusOK, dto.StatusChangedResponse{
		UserID:  req.UserID,
		QuestID: req.QuestID,
		Status:  status,
	})
}

func (h *QuestsHandler) AppendLog(c *gin.Context) {
	var req dto.AppendLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId, questId, and spent_at are required")
		return
	}

	if _, ok := utils.ParseDate(req.SpentAt); !ok {
		utils.BadRequest(c, "Invalid spent_at date")
		return
	}

	entry := model.TimeLogEntry{
		SpentAt:      req.SpentAt,
		SpentMinutes: req.SpentMinutes,
	}

	err := h.store.AppendSpentLog(c.Request.Context(), req.UserID, req.QuestID, entry)
	if errors.Is(err, repository.ErrQuestNotFound) {
		utils.NotFound(c, "Quest not found")
		return
	}
	if err != nil {
		log.Printf("appending spent log: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to record time log")
		return
	}

	middleware.QuestOperationsTotal.WithLabelValues("log").Inc()
	c.JSON(http.StatusOK, entry)
}

func (h *QuestsHandler) DeleteQuest(c *gin.Context) {
	var req dto.DeleteQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId and questId are required")
		return
	}

	remaining, err := h.store.DeleteQuest(c.Request.Context(), req.UserID, req.QuestID)
	if errors.Is(err, repository.ErrQuestNotFound) {
		utils.NotFound(c, "Quest not found for this user")
		return
	}
	if err != nil {
		log.Printf("deleting quest: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to delete quest")
		return
	}

	middleware.QuestOperationsTotal.WithLabelValues("delete").Inc()
	c.JSON(http.StatusOK, dto.RemainingQuestsResponse{
		UserID: req.UserID,
		Quests: remaining,
	})
}
