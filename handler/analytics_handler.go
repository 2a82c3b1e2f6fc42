package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Effortree/backend/middleware"
	"github.com/Effortree/backend/usecase"
	"github.com/Effortree/backend/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *usecase.AnalyticsService
}

func NewAnalyticsHandler(service *usecase.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// parseUserID reads the required userId query parameter. Writes the
// 400 response itself when missing or non-numeric.
func parseUserID(c *gin.Context) (int, bool) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil {
		utils.BadRequest(c, "Missing or invalid userId")
		return 0, false
	}
	return userID, true
}

func parseMode(c *gin.Context) usecase.Mode {
	return usecase.Mode(c.DefaultQuery("mode", "daily"))
}

// respondError maps service failures onto the error envelope: an
// unknown mode is the caller's fault, everything else is a 500.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrInvalidMode) {
		utils.BadRequest(c, "Invalid mode")
		return
	}
	log.Printf("analytics query failed: %v", err)
	middleware.ErrorsTotal.WithLabelValues("db").Inc()
	utils.InternalError(c, "Failed to compute analytics")
}

func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID, parseMode(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsHandler) GetPlanVsActual(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	rows, err := h.service.PlanVsActual(c.Request.Context(), userID, parseMode(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *AnalyticsHandler) GetSubjects(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	shares, err := h.service.Subjects(c.Request.Context(), userID, parseMode(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shares)
}

func (h *AnalyticsHandler) GetStreak(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	streak, err := h.service.Streak(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak_days": streak})
}

func (h *AnalyticsHandler) GetKanban(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var anchor time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, ok := utils.ParseDate(dateStr)
		if !ok {
			utils.BadRequest(c, "Invalid date")
			return
		}
		anchor = parsed
	}

	report, err := h.service.Kanban(c.Request.Context(), userID, parseMode(c), anchor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) GetDailyActualLongRange(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	series, err := h.service.DailyActualLongRange(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}
