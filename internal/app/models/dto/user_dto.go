package dto

// CreateUserRequest is used by system administrators to create accounts of any role
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required" example:"recruitment_admin"`
}

// ResetPasswordRequest sets a new password for a user
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
