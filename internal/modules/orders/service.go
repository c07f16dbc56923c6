package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/modules/checkout"
	"sikassosugu.ml/app/internal/modules/delivery"
)

// Notifier dispatches the best-effort admin notification for a new
// order. A failed notification never fails order creation.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, o Order, items []OrderItem) error
}

type Service struct {
	db       *gorm.DB
	notifier Notifier
}

func NewService(db *gorm.DB, n Notifier) *Service {
	return &Service{db: db, notifier: n}
}

type CreateInput struct {
	UserID     *string
	GuestPhone *string

	Address       checkout.Address
	Zone          *delivery.Zone
	PaymentMethod string
	Payment       checkout.PaymentInfo

	Items []checkout.Line

	// TotalFCFA is the client-computed total. Presence is required by
	// the contract; the persisted total is recomputed server-side.
	TotalFCFA int

	IdempotencyKey *string
}

type CreateResult struct {
	OrderID     string
	OrderNumber string
	Order       Order
	Items       []OrderItem
	Idempotent  bool
}

// ValidateCreate applies the order-creation contract checks, in the
// order the collaborator documents them.
func ValidateCreate(in CreateInput) error {
	if strings.TrimSpace(in.Address.FirstName) == "" && strings.TrimSpace(in.Address.Line1) == "" && strings.TrimSpace(in.Address.City) == "" {
		return ErrMissingAddress
	}
	if len(in.Items) == 0 {
		return ErrEmptyItems
	}
	if in.TotalFCFA <= 0 {
		return ErrMissingTotal
	}
	if in.Zone == nil && strings.TrimSpace(in.Address.Line1) == "" {
		return ErrNoZoneNoLine
	}
	if in.PaymentMethod == checkout.MethodMobileMoney {
		if strings.TrimSpace(in.Payment.ClientPhone) == "" || strings.TrimSpace(in.Payment.ReceiptURL) == "" {
			return ErrIncompletePayment
		}
	}
	return nil
}

// Totals recomputes subtotal, shipping fee and grand total from the line
// items and the matched zone. The persisted order always satisfies
// total = subtotal + fee whatever the client sent.
func Totals(items []checkout.Line, zone *delivery.Zone) (subtotal, shipping, total int) {
	for _, it := range items {
		q := it.Quantity
		if q < 1 {
			q = 1
		}
		subtotal += it.PriceFCFA * q
	}
	shipping = delivery.ShippingFee(subtotal, zone)
	return subtotal, shipping, subtotal + shipping
}

const orderNumberFormat = "SKS-%06d"

// nextOrderNumber issues the number after the highest sequence seen so
// far. Sequences are monotonic for life: a deleted order leaves a hole,
// never a number to reissue.
func nextOrderNumber(maxSeq int64) string {
	return fmt.Sprintf(orderNumberFormat, maxSeq+1)
}

// Create validates, persists the order and its items atomically, and
// dispatches the admin notification best-effort after commit.
func (s *Service) Create(ctx context.Context, in CreateInput) (CreateResult, error) {
	if err := ValidateCreate(in); err != nil {
		return CreateResult{}, err
	}

	// Idempotent replay: same key returns the already-created order.
	if res, ok, rerr := s.replayByKey(ctx, in.IdempotencyKey); rerr != nil {
		return CreateResult{}, rerr
	} else if ok {
		return res, nil
	}

	subtotal, shipping, total := Totals(in.Items, in.Zone)

	addrJSON, err := json.Marshal(in.Address)
	if err != nil {
		return CreateResult{}, err
	}
	var zoneJSON []byte
	if in.Zone != nil {
		if zoneJSON, err = json.Marshal(in.Zone); err != nil {
			return CreateResult{}, err
		}
	}
	var payJSON []byte
	if in.PaymentMethod == checkout.MethodMobileMoney {
		if payJSON, err = json.Marshal(in.Payment); err != nil {
			return CreateResult{}, err
		}
	}

	var created Order
	var createdItems []OrderItem

	// The order number continues from the highest one ever issued, not
	// from the row count: deletions must never make a number reusable.
	// A concurrent insert can still collide on the unique index, so the
	// whole tx retries.
	const attempts = 3
	for attempt := 0; attempt < attempts; attempt++ {
		created = Order{}
		createdItems = nil

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			lines := make([]checkout.StockLine, 0, len(in.Items))
			for _, it := range in.Items {
				lines = append(lines, checkout.StockLine{ProductID: it.ProductID, Qty: it.Quantity})
			}
			if err := checkout.DeductStockInTx(ctx, tx, lines); err != nil {
				return err
			}

			var maxSeq int64
			if err := tx.Model(&Order{}).
				Select("COALESCE(MAX(CAST(SUBSTRING(order_number, 5) AS UNSIGNED)), 0)").
				Scan(&maxSeq).Error; err != nil {
				return err
			}
			now := time.Now()

			created = Order{
				ID:                  uuid.NewString(),
				OrderNumber:         nextOrderNumber(maxSeq),
				UserID:              in.UserID,
				GuestPhone:          in.GuestPhone,
				Status:              StatusPendingPayment,
				SubtotalFCFA:        subtotal,
				ShippingFCFA:        shipping,
				TotalFCFA:           total,
				PaymentMethod:       in.PaymentMethod,
				ShippingAddressJSON: datatypes.JSON(addrJSON),
				DeliveryZoneJSON:    datatypes.JSON(zoneJSON),
				PaymentInfoJSON:     datatypes.JSON(payJSON),
				IdempotencyKey:      normalizeKey(in.IdempotencyKey),
				CreatedAt:           now,
				UpdatedAt:           now,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}

			for _, it := range in.Items {
				q := it.Quantity
				if q < 1 {
					q = 1
				}
				item := OrderItem{
					ID:          uuid.NewString(),
					OrderID:     created.ID,
					ProductID:   it.ProductID,
					ProductName: it.Name,
					SKU:         it.SKU,
					PriceFCFA:   it.PriceFCFA,
					Quantity:    q,
					LineFCFA:    it.PriceFCFA * q,
					CreatedAt:   now,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				createdItems = append(createdItems, item)
			}
			return nil
		})

		if err == nil {
			break
		}
		if isDuplicateKey(err) {
			// A concurrent submit with the same idempotency key may
			// have won the race; hand back its order instead of the
			// raw constraint error.
			if res, ok, rerr := s.replayByKey(ctx, in.IdempotencyKey); rerr != nil {
				return CreateResult{}, rerr
			} else if ok {
				return res, nil
			}
			if attempt < attempts-1 {
				continue
			}
		}
		return CreateResult{}, err
	}
	if err != nil {
		return CreateResult{}, err
	}

	if s.notifier != nil {
		// Best-effort by contract: the error is logged and discarded,
		// never surfaced to the customer.
		if nerr := s.notifier.NotifyNewOrder(ctx, created, createdItems); nerr != nil {
			log.Printf("orders: admin notification failed for %s: %v", created.OrderNumber, nerr)
		}
	}

	return CreateResult{OrderID: created.ID, OrderNumber: created.OrderNumber, Order: created, Items: createdItems}, nil
}

// replayByKey looks up a previously created order by idempotency key.
// ok reports whether a replayable order was found; a missing key or an
// unknown key is not an error.
func (s *Service) replayByKey(ctx context.Context, key *string) (CreateResult, bool, error) {
	k := normalizeKey(key)
	if k == nil {
		return CreateResult{}, false, nil
	}

	var existing Order
	err := s.db.WithContext(ctx).First(&existing, "idempotency_key = ?", *k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CreateResult{}, false, nil
	}
	if err != nil {
		return CreateResult{}, false, err
	}

	items, err := s.itemsOf(ctx, existing.ID)
	if err != nil {
		return CreateResult{}, false, err
	}
	return CreateResult{
		OrderID:     existing.ID,
		OrderNumber: existing.OrderNumber,
		Order:       existing,
		Items:       items,
		Idempotent:  true,
	}, true, nil
}

func (s *Service) itemsOf(ctx context.Context, orderID string) ([]OrderItem, error) {
	var items []OrderItem
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&items, "order_id = ?", orderID).Error
	return items, err
}

func normalizeKey(k *string) *string {
	if k == nil {
		return nil
	}
	v := strings.TrimSpace(*k)
	if v == "" {
		return nil
	}
	return &v
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}
