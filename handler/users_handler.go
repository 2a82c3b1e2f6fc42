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
	"github.com/Effortree/backend/services"
	"github.com/Effortree/backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// UserStore is what the user endpoints need from persistence.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUserFields(ctx context.Context, userID int, fields bson.M) (*model.User, error)
	DeleteUser(ctx context.Context, userID int) error
}

// QuestCascade removes a user's quests when the account goes away.
type QuestCascade interface {
	DeleteQuestsByUser(ctx context.Context, userID int) error
}

type UsersHandler struct {
	store    UserStore
	quests   QuestCascade
	counters IDSource
}

func NewUsersHandler(store UserStore, quests QuestCascade, counters IDSource) *UsersHandler {
	return &UsersHandler{store: store, quests: quests, counters: counters}
}

func (h *UsersHandler) RegisterUser(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "email and password are required")
		return
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	userID, err := h.counters.Next(c.Request.Context(), "userId")
	if err != nil {
		log.Printf("allocating userId: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to register user")
		return
	}

	user := &model.User{
		UserID:       userID,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    utils.FormatDate(utils.Today()),
	}

	err = h.store.CreateUser(c.Request.Context(), user)
	if errors.Is(err, repository.ErrEmailTaken) {
		utils.Conflict(c, "Email already registered")
		return
	}
	if err != nil {
		log.Printf("creating user: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.UserResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId is required")
		return
	}

	fields := bson.M{}
	if req.Nickname != nil {
		fields["nickname"] = *req.Nickname
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	user, err := h.store.UpdateUserFields(c.Request.Context(), req.UserID, fields)
	if errors.Is(err, repository.ErrUserNotFound) {
		utils.NotFound(c, "User not found")
		return
	}
	if err != nil {
		log.Printf("updating user: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		UserID:    user.UserID,
		Nickname:  user.Nickname,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

func (h *UsersHandler) DeleteUser(c *gin.Context) {
	var req dto.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId is required")
		return
	}

	err := h.store.DeleteUser(c.Request.Context(), req.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		utils.NotFound(c, "User not found")
		return
	}
	if err != nil {
		log.Printf("deleting user: %v", err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
		utils.InternalError(c, "Failed to delete user")
		return
	}

	// Quests go with the account. A failure here leaves orphans that
	// only a manual cleanup can reach, so log loudly.
	if err := h.quests.DeleteQuestsByUser(c.Request.Context(), req.UserID); err != nil {
		log.Printf("cascading quest delete for user %d failed: %v", req.UserID, err)
		middleware.ErrorsTotal.WithLabelValues("db").Inc()
	}

	c.JSON(http.StatusOK, gin.H{"status": "Success"})
}
