package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotActionable     = errors.New("order not actionable")
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService { return &AdminService{db: db} }

type TransitionInput struct {
	OrderID     string
	ActorUserID string // admin user id
	Action      string // verify|process|ship|deliver|cancel|refund
	Note        string
}

func (s *AdminService) Transition(ctx context.Context, in TransitionInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.TransitionInTx(ctx, tx, in)
	})
}

// TransitionInTx runs the status change inside a caller-owned
// transaction, so a caller can commit it together with its own rows.
func (s *AdminService) TransitionInTx(ctx context.Context, tx *gorm.DB, in TransitionInput) error {
	if in.OrderID == "" || in.ActorUserID == "" || in.Action == "" {
		return ErrNotActionable
	}

	var o Order

	// row lock
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, "id = ?", in.OrderID).Error; err != nil {
		return err
	}

	from := o.Status
	to, err := nextStatus(from, in.Action)
	if err != nil {
		return err
	}
	if from == to {
		return ErrInvalidTransition
	}

	now := time.Now()
	updates := map[string]any{
		"status":     to,
		"updated_at": now,
	}
	if to == StatusPaymentVerified && o.PaymentVerifiedAt == nil {
		updates["payment_verified_at"] = now
	}

	if err := tx.WithContext(ctx).
		Model(&Order{}).
		Where("id = ? AND status = ?", o.ID, from). // optimistic guard
		Updates(updates).Error; err != nil {
		return err
	}

	var notePtr *string
	if n := strings.TrimSpace(in.Note); n != "" {
		notePtr = &n
	}

	ev := OrderEvent{
		ID:          uuid.NewString(),
		OrderID:     o.ID,
		ActorUserID: in.ActorUserID,
		Action:      in.Action,
		FromStatus:  from,
		ToStatus:    to,
		Note:        notePtr,
		CreatedAt:   now,
	}
	if err := tx.WithContext(ctx).Create(&ev).Error; err != nil {
		return err
	}

	// Ledger lines for money movements.
	switch to {
	case StatusPaymentVerified:
		return tx.WithContext(ctx).Create(&FinancialEntry{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			Event:      "payment_verified",
			AmountFCFA: o.TotalFCFA,
			RefType:    "order_event",
			RefID:      ev.ID,
			CreatedAt:  now,
		}).Error
	case StatusRefunded:
		return tx.WithContext(ctx).Create(&FinancialEntry{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			Event:      "refund",
			AmountFCFA: -o.TotalFCFA,
			RefType:    "order_event",
			RefID:      ev.ID,
			CreatedAt:  now,
		}).Error
	}
	return nil
}

func nextStatus(from, action string) (string, error) {
	switch action {
	case "verify":
		if from == StatusPendingPayment {
			return StatusPaymentVerified, nil
		}
	case "process":
		if from == StatusPaymentVerified {
			return StatusProcessing, nil
		}
	case "ship":
		if from == StatusProcessing {
			return StatusShipped, nil
		}
	case "deliver":
		if from == StatusShipped {
			return StatusDelivered, nil
		}
	case "cancel":
		switch from {
		case StatusPendingPayment, StatusPaymentVerified, StatusProcessing:
			return StatusCancelled, nil
		}
	case "refund":
		switch from {
		case StatusPaymentVerified, StatusProcessing, StatusShipped, StatusDelivered:
			return StatusRefunded, nil
		}
	}
	return "", ErrInvalidTransition
}
