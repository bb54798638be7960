package dto

// ── auth module DTOs ──

// RegisterRequest creates an admin account. Registration is gated by the
// shared register key.
type RegisterRequest struct {
	Username        string `json:"username"         binding:"required,min=2,max=20"`
	Email           string `json:"email"            binding:"required,email"`
	Password        string `json:"password"         binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	RegisterKey     string `json:"register_key"     binding:"required"`
}

// LoginRequest authenticates an admin account.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued session token.
type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int             `json:"expires_in"` // seconds
	Account     AccountResponse `json:"account"`
}

// AccountResponse is the sanitized account view.
type AccountResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterResponse confirms account creation.
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
