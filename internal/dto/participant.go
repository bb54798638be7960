package dto

// ── participant module DTOs ──

// ParticipantResponse is the admin view of a participant.
type ParticipantResponse struct {
	ID              uint     `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Address         string   `json:"address"`
	ReferenceNumber string   `json:"reference_number"`
	BankAccount     string   `json:"bank_account"`
	Email           string   `json:"email"`
	Confirmed       bool     `json:"confirmed"`
	Numbers         []string `json:"numbers"`
	CreatedAt       string   `json:"created_at"`
}

// SendNumbersResponse confirms a re-send of allocated numbers.
type SendNumbersResponse struct {
	Email   string   `json:"email"`
	Numbers []string `json:"numbers"`
}
