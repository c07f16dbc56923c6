package cart

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/cartcookie"
	"sikassosugu.ml/app/pkg/view"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type cartRow struct {
	ProductID string `gorm:"column:product_id"`
	Qty       int    `gorm:"column:qty"`
	PriceFCFA int    `gorm:"column:price_fcfa"`

	ProductName string `gorm:"column:product_name"`
	ProductSlug string `gorm:"column:product_slug"`
	SKU         string `gorm:"column:sku"`
	ImageURL    string `gorm:"column:image_url"`
}

func (s *Service) BuildCartPageForUser(ctx context.Context, userID string) (view.CartPage, error) {
	if userID == "" {
		return view.CartPage{}, errors.New("missing userID")
	}

	var cartID string
	err := s.db.WithContext(ctx).
		Model(&Cart{}).
		Where("user_id = ? AND status = ?", userID, "open").
		Order("updated_at DESC").
		Limit(1).
		Pluck("id", &cartID).Error
	if err != nil {
		return view.CartPage{}, err
	}
	if cartID == "" {
		return view.CartPage{Items: []view.CartItem{}}, nil
	}

	const q = `
SELECT
  ci.product_id AS product_id,
  ci.quantity   AS qty,
  p.price_fcfa  AS price_fcfa,
  p.name        AS product_name,
  p.slug        AS product_slug,
  p.sku         AS sku,
  COALESCE((SELECT url FROM product_images pi WHERE pi.product_id = p.id ORDER BY pi.position ASC LIMIT 1), '') AS image_url
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = ?
ORDER BY ci.created_at ASC;
`

	var rows []cartRow
	if err := s.db.WithContext(ctx).Raw(q, cartID).Scan(&rows).Error; err != nil {
		return view.CartPage{}, err
	}

	return buildCartVMFromRows(rows), nil
}

func (s *Service) BuildCartPageFromCookie(ctx context.Context, c *cartcookie.Cart) (view.CartPage, error) {
	if c == nil || len(c.Items) == 0 {
		return view.CartPage{Items: []view.CartItem{}}, nil
	}

	qtyByID := make(map[string]int, len(c.Items))
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID == "" || it.Qty <= 0 {
			continue
		}
		if _, ok := qtyByID[it.ProductID]; !ok {
			ids = append(ids, it.ProductID)
		}
		qtyByID[it.ProductID] += it.Qty
	}
	if len(ids) == 0 {
		return view.CartPage{Items: []view.CartItem{}}, nil
	}

	// deterministic IN query
	sort.Strings(ids)

	var rows []cartRow
	if err := s.db.WithContext(ctx).
		Table("products AS p").
		Select(`p.id AS product_id,
			0 AS qty,
			p.price_fcfa AS price_fcfa,
			p.name AS product_name,
			p.slug AS product_slug,
			p.sku AS sku,
			COALESCE((SELECT url FROM product_images pi WHERE pi.product_id = p.id ORDER BY pi.position ASC LIMIT 1), '') AS image_url`).
		Where("p.id IN ? AND p.status = ?", ids, "active").
		Scan(&rows).Error; err != nil {
		return view.CartPage{}, err
	}

	infoByID := make(map[string]cartRow, len(rows))
	for _, r := range rows {
		infoByID[r.ProductID] = r
	}

	// keep cookie order; drop products that vanished from the catalog
	final := make([]cartRow, 0, len(ids))
	for _, it := range c.Items {
		if it.ProductID == "" || it.Qty <= 0 {
			continue
		}
		r, ok := infoByID[it.ProductID]
		if !ok {
			continue
		}
		r.Qty = it.Qty
		final = append(final, r)
	}

	return buildCartVMFromRows(final), nil
}

func buildCartVMFromRows(rows []cartRow) view.CartPage {
	vm := view.CartPage{Items: make([]view.CartItem, 0, len(rows))}

	subtotal := 0
	count := 0

	for _, r := range rows {
		if r.Qty <= 0 {
			continue
		}
		line := r.PriceFCFA * r.Qty
		subtotal += line
		count += r.Qty

		vm.Items = append(vm.Items, view.CartItem{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			ProductSlug: r.ProductSlug,
			ImageURL:    r.ImageURL,
			SKU:         r.SKU,
			Qty:         r.Qty,

			UnitPriceFCFA: r.PriceFCFA,
			LineTotalFCFA: line,

			UnitPrice: view.FormatFCFA(r.PriceFCFA),
			LineTotal: view.FormatFCFA(line),
		})
	}

	vm.Count = count
	vm.SubtotalFCFA = subtotal
	vm.Subtotal = view.FormatFCFA(subtotal)
	return vm
}
