package dto

// ── raffle module DTOs ──

// CreateRaffleRequest creates a raffle. Bound from multipart form fields so
// the optional artwork image can travel in the same request.
type CreateRaffleRequest struct {
	Name           string `form:"name"             binding:"required,min=2,max=100"`
	StartDate      string `form:"start_date"       binding:"required"` // "2026-09-15"
	MaxNumber      int    `form:"max_number"       binding:"required,min=1"`
	PricePerNumber int    `form:"price_per_number" binding:"required,min=1"`
}

// UpdateRaffleRequest edits a raffle. Only provided fields change.
type UpdateRaffleRequest struct {
	Name           *string `form:"name"             binding:"omitempty,min=2,max=100"`
	StartDate      *string `form:"start_date"`
	MaxNumber      *int    `form:"max_number"       binding:"omitempty,min=1"`
	PricePerNumber *int    `form:"price_per_number" binding:"omitempty,min=1"`
}

// RaffleResponse is the admin view of a raffle.
type RaffleResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	StartDate      string `json:"start_date"`
	Active         bool   `json:"active"`
	MaxNumber      int    `json:"max_number"`
	PricePerNumber int    `json:"price_per_number"`
	ImageURL       string `json:"image_url,omitempty"`
	NumbersCount   int64  `json:"numbers_count"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// ActiveRaffleResponse is the public view backing the entry form.
type ActiveRaffleResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	StartDate        string `json:"start_date"`
	MaxNumber        int    `json:"max_number"`
	PricePerNumber   int    `json:"price_per_number"`
	ImageURL         string `json:"image_url,omitempty"`
	NumbersRemaining int64  `json:"numbers_remaining"`
}

// ToggleRaffleResponse reports a toggle and which raffles were deactivated
// as a side effect of an activation.
type ToggleRaffleResponse struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Active      bool     `json:"active"`
	Deactivated []string `json:"deactivated,omitempty"`
}
