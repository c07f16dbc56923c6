package payments

import "time"

// Receipt review states. A rejected receipt can be replaced by a new
// submission; the order stays pending until a receipt is verified.
const (
	StatusSubmitted = "submitted"
	StatusVerified  = "verified"
	StatusRejected  = "rejected"
)

// Receipt is a mobile-money payment proof uploaded by the customer.
// Verification is a manual back-office step; there is no PSP callback.
type Receipt struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	OrderID     string `gorm:"type:char(36);not null;index:ix_receipts_order_id"`
	ClientPhone string `gorm:"type:varchar(32);not null"`
	ReceiptURL  string `gorm:"type:varchar(512);not null"`
	Status      string `gorm:"type:varchar(16);not null;index:ix_receipts_status"`

	ReviewedBy *string    `gorm:"type:char(36)"`
	ReviewedAt *time.Time `gorm:"type:datetime(3)"`
	ReviewNote *string    `gorm:"type:varchar(255)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Receipt) TableName() string { return "payment_receipts" }
