package model

// User is an account document. PasswordHash stores the encoded
// argon2id salt+hash, never the raw password.
type User struct {
	UserID       int    `bson:"userId" json:"userId"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password" json:"-"`
	Nickname     string `bson:"nickname,omitempty" json:"nickname,omitempty"`
	Role         string `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt    string `bson:"created_at" json:"created_at"`
}
