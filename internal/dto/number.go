package dto

// ── raffle number module DTOs ──

// ListNumbersRequest filters the allocation listing.
type ListNumbersRequest struct {
	RaffleID *uint `form:"raffle_id" binding:"omitempty,min=1"`
	PaginationRequest
}

// NumberResponse is the admin view of one allocation.
type NumberResponse struct {
	ID               uint   `json:"id"`
	Number           string `json:"number"`
	RaffleID         uint   `json:"raffle_id"`
	RaffleName       string `json:"raffle_name,omitempty"`
	ParticipantID    uint   `json:"participant_id"`
	ParticipantName  string `json:"participant_name,omitempty"`
	ParticipantEmail string `json:"participant_email,omitempty"`
	CreatedAt        string `json:"created_at"`
}
