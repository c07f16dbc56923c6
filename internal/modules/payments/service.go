package payments

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sikassosugu.ml/app/internal/modules/checkout"
	"sikassosugu.ml/app/internal/modules/orders"
)

type Service struct {
	db         *gorm.DB
	orderAdmin *orders.AdminService
}

func NewService(db *gorm.DB, orderAdmin *orders.AdminService) *Service {
	return &Service{db: db, orderAdmin: orderAdmin}
}

type AttachInput struct {
	OrderID     string
	ActorUserID *string // nil for guest orders
	ClientPhone string
	ReceiptURL  string
}

// Attach records a payment proof for a mobile-money order awaiting
// verification. A resubmission supersedes an earlier rejected (or still
// pending) receipt; verified receipts are final.
func (s *Service) Attach(ctx context.Context, in AttachInput) (Receipt, error) {
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ReceiptURL = strings.TrimSpace(in.ReceiptURL)
	if in.OrderID == "" || in.ClientPhone == "" || in.ReceiptURL == "" {
		return Receipt{}, ErrReceiptRequired
	}

	var created Receipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ord orders.Order
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ord, "id = ?", in.OrderID).Error; err != nil {
			return err
		}

		if ord.UserID != nil {
			if in.ActorUserID == nil || *ord.UserID != *in.ActorUserID {
				return ErrForbidden
			}
		}
		if ord.PaymentMethod != checkout.MethodMobileMoney || ord.Status != orders.StatusPendingPayment {
			return ErrOrderNotEligible
		}

		// a verified receipt never gets superseded
		var verified int64
		if err := tx.WithContext(ctx).Model(&Receipt{}).
			Where("order_id = ? AND status = ?", ord.ID, StatusVerified).
			Count(&verified).Error; err != nil {
			return err
		}
		if verified > 0 {
			return ErrOrderNotEligible
		}

		now := time.Now()
		if err := tx.WithContext(ctx).Model(&Receipt{}).
			Where("order_id = ? AND status = ?", ord.ID, StatusSubmitted).
			Updates(map[string]any{"status": StatusRejected, "updated_at": now}).Error; err != nil {
			return err
		}

		created = Receipt{
			ID:          uuid.NewString(),
			OrderID:     ord.ID,
			ClientPhone: in.ClientPhone,
			ReceiptURL:  in.ReceiptURL,
			Status:      StatusSubmitted,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return tx.WithContext(ctx).Create(&created).Error
	})
	if err != nil {
		return Receipt{}, err
	}
	return created, nil
}

type ReviewInput struct {
	ReceiptID   string
	AdminUserID string
	Approve     bool
	Note        string
}

// Review finalizes a submitted receipt. Approval drives the order to
// payment_verified through the usual transition path so the event log
// and the ledger stay consistent; rejection leaves the order pending so
// the customer can resubmit.
func (s *Service) Review(ctx context.Context, in ReviewInput) error {
	if in.ReceiptID == "" || in.AdminUserID == "" {
		return ErrOrderNotEligible
	}

	// One transaction: the order transition and the receipt row commit
	// or roll back together, so a verified order can never be left with
	// a receipt still marked submitted.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rcpt Receipt
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rcpt, "id = ?", in.ReceiptID).Error; err != nil {
			return err
		}
		if rcpt.Status != StatusSubmitted {
			return ErrAlreadyReviewed
		}

		if in.Approve {
			// transition first: it carries the optimistic status guard
			err := s.orderAdmin.TransitionInTx(ctx, tx, orders.TransitionInput{
				OrderID:     rcpt.OrderID,
				ActorUserID: in.AdminUserID,
				Action:      "verify",
				Note:        in.Note,
			})
			if err != nil {
				return err
			}
		}

		status := StatusRejected
		if in.Approve {
			status = StatusVerified
		}

		now := time.Now()
		updates := map[string]any{
			"status":      status,
			"reviewed_by": in.AdminUserID,
			"reviewed_at": now,
			"updated_at":  now,
		}
		if n := strings.TrimSpace(in.Note); n != "" {
			updates["review_note"] = n
		}

		return tx.WithContext(ctx).Model(&Receipt{}).
			Where("id = ? AND status = ?", rcpt.ID, StatusSubmitted).
			Updates(updates).Error
	})
}

// ReceiptWithOrder joins a receipt to the order fields the review
// screen displays.
type ReceiptWithOrder struct {
	Receipt
	OrderNumber string `gorm:"column:order_number"`
	TotalFCFA   int    `gorm:"column:total_fcfa"`
	OrderStatus string `gorm:"column:order_status"`
}

// ListPending returns submitted receipts oldest first for the review
// queue.
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]ReceiptWithOrder, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&Receipt{}).
		Where("status = ?", StatusSubmitted).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ReceiptWithOrder
	err := s.db.WithContext(ctx).
		Table("payment_receipts AS r").
		Select("r.*, o.order_number AS order_number, o.total_fcfa AS total_fcfa, o.status AS order_status").
		Joins("JOIN orders o ON o.id = r.order_id").
		Where("r.status = ?", StatusSubmitted).
		Order("r.created_at ASC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, total, err
}

// ForOrder returns all receipts of one order, newest first.
func (s *Service) ForOrder(ctx context.Context, orderID string) ([]Receipt, error) {
	var rows []Receipt
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
