package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one side of a tutor conversation.
type ChatMessage struct {
	UserID    int    `bson:"userId" json:"userId"`
	Role      string `bson:"role" json:"role"`
	Content   string `bson:"content" json:"content"`
	CreatedAt string `bson:"created_at" json:"created_at"`
}
