package dto

import "github.com/Effortree/backend/model"

// CreateQuestRequest is the POST /quests body.
type CreateQuestRequest struct {
	UserID           int    `json:"userId" binding:"required"`
	Title            string `json:"title" binding:"required"`
	Subject          string `json:"subject"`
	Topic            string `json:"topic"`
	SuggestedMinutes int    `json:"suggested_minutes" binding:"gte=0"`
	Deadline         string `json:"deadline"`
	Visibility       string `json:"visibility"`
	Status           string `json:"status"`
}

// UpdateQuestRequest is the PATCH /quests body. Pointer fields
// distinguish "absent" from "set to empty".
type UpdateQuestRequest struct {
	UserID      int     `json:"userId" binding:"required"`
	QuestID     int     `json:"questId" binding:"required"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Difficulty  *string `json:"difficulty"`
}

// ChangeQuestStatusRequest is the PATCH /quests/status body.
type ChangeQuestStatusRequest struct {
	UserID  int    `json:"userId" binding:"required"`
	QuestID int    `json:"questId" binding:"required"`
	Status  string `json:"status" binding:"required,queststatus"`
}

// DeleteQuestRequest is the DELETE /quests body.
type DeleteQuestRequest struct {
	UserID  int `json:"userId" binding:"required"`
	QuestID int `json:"questId" binding:"required"`
}

// AppendLogRequest is the POST /quests/logs body.
type AppendLogRequest struct {
	UserID       int    `json:"userId" binding:"required"`
	QuestID      int    `json:"questId" binding:"required"`
	SpentAt      string `json:"spent_at" binding:"required"`
	SpentMinutes int    `json:"spent_minutes"`
}

// RemainingQuestsResponse is returned after a delete.
type RemainingQuestsResponse struct {
	UserID int   `json:"userId"`
	Quests []int `json:"quests"`
}

// StatusChangedResponse echoes a status transition.
type StatusChangedResponse struct {
	UserID  int               `json:"userId"`
	QuestID int               `json:"questId"`
	Status  model.QuestStatus `json:"status"`
}
