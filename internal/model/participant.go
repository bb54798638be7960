package model

// Participant is a person who submitted an entry, identified by email.
// Repeat submissions with the same email overwrite the contact fields.
type Participant struct {
	ID              uint   `gorm:"primaryKey"                        json:"id"`
	FirstName       string `gorm:"type:varchar(50);not null"         json:"first_name"`
	LastName        string `gorm:"type:varchar(50);not null"         json:"last_name"`
	Address         string `gorm:"type:varchar(200);not null"        json:"address"`
	ReferenceNumber string `gorm:"type:varchar(100);not null"        json:"reference_number"`
	BankAccount     string `gorm:"type:varchar(100);not null;default:''" json:"bank_account"`
	Email           string `gorm:"type:varchar(120);not null;unique" json:"email"`
	Confirmed       bool   `gorm:"not null;default:false"            json:"confirmed"` // payment confirmed by an admin
	BaseModel

	RaffleNumbers []RaffleNumber `gorm:"foreignKey:ParticipantID" json:"raffle_numbers,omitempty"`
}

// TableName sets the table name.
func (Participant) TableName() string { return "participants" }
