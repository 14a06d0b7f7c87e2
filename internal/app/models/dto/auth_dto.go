package dto

// RegisterRequest creates a student account. The role is never taken from the client.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the opaque session token
type LoginResponse struct {
	Token     string `json:"token" example:"3f0c1e8e-5a8e-4f61-9f57-7f9b7c1d2a40"`
	TokenType string `json:"tokenType" example:"Bearer"`
	UserID    int64  `json:"userId" example:"1"`
	Username  string `json:"username" example:"zhangsan"`
	// Role is the coarse display role: ADMIN, RECRUIT or STUDENT
	Role string `json:"role" example:"STUDENT"`
}

// IdentityResponse describes the caller
type IdentityResponse struct {
	UserID   int64  `json:"userId" example:"1"`
	Username string `json:"username" example:"zhangsan"`
	Role     string `json:"role" example:"student"`
}
