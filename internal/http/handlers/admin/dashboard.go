package admin

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/modules/catalog"
	"sikassosugu.ml/app/internal/modules/orders"
	"sikassosugu.ml/app/internal/modules/users"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/pkg/view"
)

const lowStockThreshold = 5

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Show handles GET /api/admin/dashboard.
func (h *DashboardHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	var out view.AdminDashboard

	queries := []func() error{
		func() error {
			return h.db.WithContext(ctx).Model(&orders.Order{}).
				Where("status = ?", orders.StatusPendingPayment).
				Count(&out.PendingOrders).Error
		},
		func() error {
			startOfDay := time.Now().Truncate(24 * time.Hour)
			return h.db.WithContext(ctx).Model(&orders.Order{}).
				Where("created_at >= ?", startOfDay).
				Count(&out.OrdersToday).Error
		},
		func() error {
			return h.db.WithContext(ctx).Model(&catalog.Product{}).
				Where("status = ?", catalog.StatusActive).
				Count(&out.ActiveProducts).Error
		},
		func() error {
			return h.db.WithContext(ctx).Model(&catalog.Product{}).
				Where("status = ? AND stock <= ?", catalog.StatusActive, lowStockThreshold).
				Count(&out.LowStock).Error
		},
		func() error {
			return h.db.WithContext(ctx).Model(&users.User{}).
				Where("role = ?", users.RoleCustomer).
				Count(&out.Customers).Error
		},
	}
	for _, q := range queries {
		if err := q(); err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
	}

	var revenue int64
	err := h.db.WithContext(ctx).Model(&orders.FinancialEntry{}).
		Select("COALESCE(SUM(amount_fcfa), 0)").
		Scan(&revenue).Error
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	out.RevenueVerified = view.FormatFCFA(int(revenue))

	render.OK(c, out)
}
