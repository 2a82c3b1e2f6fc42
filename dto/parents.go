package dto

// InterpretationResponse is the GET /parents/interpretation payload.
type InterpretationResponse struct {
	CurrentGuidance         string `json:"current_guidance"`
	InterpretationRationale string `json:"interpretation_rationale"`
}

// ParentChatRequest is the POST /parents/chat body.
type ParentChatRequest struct {
	UserID   int    `json:"userId" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// ParentChatResponse is the POST /parents/chat payload.
type ParentChatResponse struct {
	Answer     string `json:"answer"`
	Disclaimer string `json:"disclaimer"`
}

// GiftResponse is the GET /parents/gift payload.
type GiftResponse struct {
	ChildUserID int    `json:"childUserId"`
	Message     string `json:"message"`
	ImageURL    string `json:"imageUrl,omitempty"`
	UpdatedAt   string `json:"updated_at"`
}

// GiftSavedResponse acknowledges a gift upsert.
type GiftSavedResponse struct {
	Status   string `json:"status"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// TutorChatRequest is the POST /tutor/chat body.
type TutorChatRequest struct {
	UserID  int    `json:"userId" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// TutorChatResponse is the POST /tutor/chat payload.
type TutorChatResponse struct {
	Answer string `json:"answer"`
}
