package model

import "time"

// Raffle is a single drawing event with a bounded number range and a price
// per number. At most one raffle is active at a time; activating one
// deactivates the others.
type Raffle struct {
	ID             uint      `gorm:"primaryKey"                        json:"id"`
	Name           string    `gorm:"type:varchar(100);not null;unique" json:"name"`
	StartDate      time.Time `gorm:"type:date;not null"                json:"start_date"`
	Active         bool      `gorm:"not null;default:false;index"      json:"active"`
	MaxNumber      int       `gorm:"not null"                          json:"max_number"`
	PricePerNumber int       `gorm:"not null"                          json:"price_per_number"`
	ImageFilename  string    `gorm:"type:varchar(255)"                 json:"image_filename,omitempty"`
	BaseModel

	RaffleNumbers []RaffleNumber `gorm:"foreignKey:RaffleID" json:"raffle_numbers,omitempty"`
}

// TableName sets the table name.
func (Raffle) TableName() string { return "raffles" }
