package model

// RaffleNumber binds one drawn number to a participant within a raffle.
// The number is stored as a string zero-padded to the digit width of the
// raffle's max_number. The (number, raffle_id) unique index is the storage
// backstop behind the allocation workflow's conditional insert.
type RaffleNumber struct {
	ID            uint   `gorm:"primaryKey"                                             json:"id"`
	Number        string `gorm:"type:varchar(10);not null;uniqueIndex:uix_number_raffle_id" json:"number"`
	ParticipantID uint   `gorm:"not null;index"                                         json:"participant_id"`
	RaffleID      uint   `gorm:"not null;uniqueIndex:uix_number_raffle_id"              json:"raffle_id"`
	BaseModel

	Participant *Participant `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	Raffle      *Raffle      `gorm:"foreignKey:RaffleID"      json:"raffle,omitempty"`
}

// TableName sets the table name.
func (RaffleNumber) TableName() string { return "raffle_numbers" }
