package users

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User accounts are phone-first: the phone number is the login
// identifier, email is optional and only used for notifications.
type User struct {
	ID           string  `gorm:"type:char(36);primaryKey"`
	PhoneE164    string  `gorm:"type:varchar(32);not null;uniqueIndex:ux_users_phone"`
	Email        *string `gorm:"type:varchar(255);uniqueIndex:ux_users_email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	FirstName    *string `gorm:"type:varchar(100)"`
	LastName     *string `gorm:"type:varchar(100)"`
	Role         string  `gorm:"type:varchar(16);not null;default:customer"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (User) TableName() string { return "users" }
