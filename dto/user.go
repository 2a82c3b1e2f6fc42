package dto

// RegisterUserRequest is the POST /users body.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

// UpdateUserRequest is the PATCH /users body.
type UpdateUserRequest struct {
	UserID   int     `json:"userId" binding:"required"`
	Nickname *string `json:"nickname"`
	Role     *string `json:"role"`
}

// DeleteUserRequest is the DELETE /users body.
type DeleteUserRequest struct {
	UserID int `json:"userId" binding:"required"`
}

// UserResponse is the public view of a user document.
type UserResponse struct {
	UserID    int    `json:"userId"`
	Email     string `json:"email,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"created_at"`
}
