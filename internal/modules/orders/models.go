package orders

import (
	"time"

	"gorm.io/datatypes"
)

// Order statuses. The forward path is pending_payment ->
// payment_verified -> processing -> shipped -> delivered; cancelled and
// refunded are the off-ramps.
const (
	StatusPendingPayment  = "pending_payment"
	StatusPaymentVerified = "payment_verified"
	StatusProcessing      = "processing"
	StatusShipped         = "shipped"
	StatusDelivered       = "delivered"
	StatusCancelled       = "cancelled"
	StatusRefunded        = "refunded"
)

type Order struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	OrderNumber string  `gorm:"type:varchar(16);not null;uniqueIndex:ux_orders_number"`
	UserID      *string `gorm:"type:char(36);index:ix_orders_user_id"`
	GuestPhone  *string `gorm:"type:varchar(32)"`
	Status      string  `gorm:"type:varchar(32);not null;index:ix_orders_status"`

	SubtotalFCFA int `gorm:"not null"`
	ShippingFCFA int `gorm:"not null"`
	TotalFCFA    int `gorm:"not null"`

	PaymentMethod string `gorm:"type:varchar(16);not null"`

	// Serialized snapshots of the transient checkout state.
	ShippingAddressJSON datatypes.JSON `gorm:"type:json;not null"`
	DeliveryZoneJSON    datatypes.JSON `gorm:"type:json"`
	PaymentInfoJSON     datatypes.JSON `gorm:"type:json"`

	IdempotencyKey *string `gorm:"type:varchar(64);uniqueIndex:ux_orders_idem"`

	PaymentVerifiedAt *time.Time `gorm:"type:datetime(3)"`
	CreatedAt         time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt         time.Time  `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_order_items_order_id"`
	ProductID   string    `gorm:"type:char(36);not null"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	SKU         string    `gorm:"type:varchar(64)"`
	PriceFCFA   int       `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	LineFCFA    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderEvent is the audit trail of admin status actions.
type OrderEvent struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_order_events_order_id"`
	ActorUserID string    `gorm:"type:char(36);not null"`
	Action      string    `gorm:"type:varchar(32);not null"`
	FromStatus  string    `gorm:"type:varchar(32);not null"`
	ToStatus    string    `gorm:"type:varchar(32);not null"`
	Note        *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderEvent) TableName() string { return "order_events" }

// FinancialEntry is a ledger line (payment verified, refund, ...).
type FinancialEntry struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	OrderID    string    `gorm:"type:char(36);not null;index:ix_financial_order_id"`
	Event      string    `gorm:"type:varchar(32);not null"`
	AmountFCFA int       `gorm:"not null"`
	RefType    string    `gorm:"type:varchar(32)"`
	RefID      string    `gorm:"type:char(36)"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (FinancialEntry) TableName() string { return "financial_entries" }
