package model

// Gift is a parent's message (optionally with an uploaded image) for a
// child. One gift per child; writes upsert.
type Gift struct {
	ChildUserID int    `bson:"childUserId" json:"childUserId"`
	Message     string `bson:"message" json:"message"`
	ImageURL    string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	UpdatedAt   string `bson:"updated_at" json:"updated_at"`
}
