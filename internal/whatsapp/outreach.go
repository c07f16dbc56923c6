package whatsapp

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// OutreachLog records back-office WhatsApp contacts so two admins do
// not message the same customer twice about one order.
type OutreachLog struct {
	ID          int64     `gorm:"primaryKey"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_wa_outreach_order_id"`
	PhoneE164   string    `gorm:"type:varchar(32);not null"`
	Kind        string    `gorm:"type:varchar(32);not null"` // payment_reminder, delivery_update, other
	Note        *string   `gorm:"type:varchar(255)"`
	ActorUserID string    `gorm:"type:char(36);not null"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (OutreachLog) TableName() string { return "whatsapp_outreach_logs" }

type OutreachService struct {
	db *gorm.DB
}

func NewOutreachService(db *gorm.DB) *OutreachService {
	return &OutreachService{db: db}
}

type RecordInput struct {
	OrderID     string
	PhoneE164   string
	Kind        string
	Note        string
	ActorUserID string
}

func (s *OutreachService) Record(ctx context.Context, in RecordInput) error {
	entry := OutreachLog{
		OrderID:     in.OrderID,
		PhoneE164:   in.PhoneE164,
		Kind:        in.Kind,
		ActorUserID: in.ActorUserID,
		CreatedAt:   time.Now(),
	}
	if in.Note != "" {
		entry.Note = &in.Note
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// ForOrder lists contacts newest first.
func (s *OutreachService) ForOrder(ctx context.Context, orderID string) ([]OutreachLog, error) {
	var logs []OutreachLog
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
