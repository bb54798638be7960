package dto

// ── entry (number allocation) DTOs ──

// EntryRequest is a participant's submission against the active raffle.
// NumNumbers is one of the preset quantities or "custom"; choosing "custom"
// requires CustomNumber to be a positive integer.
type EntryRequest struct {
	FirstName       string `json:"first_name"       binding:"required,max=50"`
	LastName        string `json:"last_name"        binding:"required,max=50"`
	Address         string `json:"address"          binding:"required,max=200"`
	ReferenceNumber string `json:"reference_number" binding:"required,max=100"`
	Email           string `json:"email"            binding:"required,email"`
	NumNumbers      string `json:"num_numbers"      binding:"required,oneof=5 10 20 custom"`
	CustomNumber    *int   `json:"custom_number"    binding:"omitempty,min=1"`
	BankAccount     string `json:"bank_account"     binding:"required,max=50"`
}

// EntryResponse reports the outcome of an allocation.
// EmailSent is false when the numbers were reserved but the notification
// mail could not be delivered; the allocation itself is already committed.
type EntryResponse struct {
	RaffleID   uint     `json:"raffle_id"`
	RaffleName string   `json:"raffle_name"`
	Numbers    []string `json:"numbers"`
	TotalPrice int      `json:"total_price"`
	EmailSent  bool     `json:"email_sent"`
}
