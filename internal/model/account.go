package model

// Account is an administrator identity. Accounts only gate the admin routes;
// registration is guarded by the shared register key.
type Account struct {
	ID           uint   `gorm:"primaryKey"                        json:"id"`
	Username     string `gorm:"type:varchar(150);not null;unique" json:"username"`
	Email        string `gorm:"type:varchar(150);not null;unique" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"        json:"-"`
	BaseModel
}

// TableName sets the table name.
func (Account) TableName() string { return "accounts" }
