package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/modules/delivery"
	"sikassosugu.ml/app/internal/modules/orders"
	"sikassosugu.ml/app/internal/modules/payments"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/internal/whatsapp"
	"sikassosugu.ml/app/pkg/view"
)

type OrdersHandler struct {
	repo     *orders.Repo
	receipts *payments.Service
	wa       *whatsapp.LinkBuilder
}

func NewOrdersHandler(repo *orders.Repo, receipts *payments.Service, wa *whatsapp.LinkBuilder) *OrdersHandler {
	return &OrdersHandler{repo: repo, receipts: receipts, wa: wa}
}

// Track handles GET /api/orders/:number. Guests must supply the phone
// used at checkout; owners are matched by session.
func (h *OrdersHandler) Track(c *gin.Context) {
	o, items, err := h.repo.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Commande introuvable."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if !h.mayView(c, o) {
		// same answer as not-found so order numbers cannot be guessed
		middleware.Fail(c, apperr.NotFoundErr("Commande introuvable."))
		return
	}

	detail := orderDetail(o, items)
	render.OK(c, gin.H{
		"order":         detail,
		"whatsapp_link": h.wa.OrderLink(o, items),
	})
}

func (h *OrdersHandler) mayView(c *gin.Context, o orders.Order) bool {
	if u, ok := middleware.CurrentUser(c); ok {
		if u.Role == "admin" {
			return true
		}
		if o.UserID != nil && *o.UserID == u.ID {
			return true
		}
	}
	if o.GuestPhone != nil {
		given := normalizeDigits(c.Query("phone"))
		return given != "" && given == normalizeDigits(*o.GuestPhone)
	}
	return false
}

// AttachReceipt handles POST /api/orders/:number/receipt: a customer
// resubmits the mobile-money proof after a rejection.
func (h *OrdersHandler) AttachReceipt(c *gin.Context) {
	var in struct {
		ClientPhone string `json:"client_phone"`
		ReceiptURL  string `json:"receipt_url"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Les données envoyées sont invalides.", nil))
		return
	}

	o, _, err := h.repo.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Commande introuvable."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if !h.mayView(c, o) {
		middleware.Fail(c, apperr.NotFoundErr("Commande introuvable."))
		return
	}

	attach := payments.AttachInput{
		OrderID:     o.ID,
		ClientPhone: in.ClientPhone,
		ReceiptURL:  in.ReceiptURL,
	}
	if u, ok := middleware.CurrentUser(c); ok {
		attach.ActorUserID = &u.ID
	}

	rcpt, err := h.receipts.Attach(c.Request.Context(), attach)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrReceiptRequired):
			middleware.Fail(c, apperr.InvalidErr("Le numéro payeur et le reçu sont obligatoires.", nil))
		case errors.Is(err, payments.ErrOrderNotEligible):
			middleware.Fail(c, apperr.ConflictErr("Cette commande n'attend pas de reçu de paiement."))
		case errors.Is(err, payments.ErrForbidden):
			middleware.Fail(c, apperr.NotFoundErr("Commande introuvable."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}
	render.Created(c, gin.H{"receipt_id": rcpt.ID, "status": rcpt.Status})
}

// ListMine handles GET /api/account/orders.
func (h *OrdersHandler) ListMine(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	res, err := h.repo.ListByUser(c.Request.Context(), orders.ListByUserParams{
		UserID:   u.ID,
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 20),
		Status:   c.Query("status"),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := view.AccountOrdersPage{
		Items:      make([]view.AccountOrderItem, 0, len(res.Items)),
		Total:      res.Total,
		Page:       res.Page,
		TotalPages: totalPages(res.Total, res.PageSize),
	}
	for _, it := range res.Items {
		out.Items = append(out.Items, view.AccountOrderItem{
			OrderNumber: it.Order.OrderNumber,
			Status:      it.Order.Status,
			Total:       view.FormatFCFA(it.Order.TotalFCFA),
			ItemCount:   it.Count,
			CreatedAt:   it.Order.CreatedAt.Format(time.RFC3339),
		})
	}
	render.OK(c, out)
}

// ShowMine handles GET /api/account/orders/:number.
func (h *OrdersHandler) ShowMine(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	o, items, err := h.repo.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil || o.UserID == nil || *o.UserID != u.ID {
		middleware.Fail(c, apperr.NotFoundErr("Commande introuvable."))
		return
	}

	render.OK(c, gin.H{
		"order":         orderDetail(o, items),
		"whatsapp_link": h.wa.OrderLink(o, items),
	})
}

func orderDetail(o orders.Order, items []orders.OrderItem) view.OrderDetail {
	zoneName := ""
	if len(o.DeliveryZoneJSON) > 0 {
		var z delivery.Zone
		if err := json.Unmarshal(o.DeliveryZoneJSON, &z); err == nil {
			zoneName = z.Name
		}
	}

	d := view.OrderDetail{
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		Subtotal:      view.FormatFCFA(o.SubtotalFCFA),
		Shipping:      view.FormatFCFA(o.ShippingFCFA),
		Total:         view.FormatFCFA(o.TotalFCFA),
		PaymentMethod: o.PaymentMethod,
		Zone:          zoneName,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		Items:         make([]view.OrderItem, 0, len(items)),
	}
	for _, it := range items {
		d.Items = append(d.Items, view.OrderItem{
			ProductName: it.ProductName,
			SKU:         it.SKU,
			Qty:         it.Quantity,
			PriceEach:   view.FormatFCFA(it.PriceFCFA),
			LineTotal:   view.FormatFCFA(it.LineFCFA),
		})
	}
	return d
}

func normalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	// compare the last 8 digits so local and E.164 forms match
	out := b.String()
	if len(out) > 8 {
		out = out[len(out)-8:]
	}
	return out
}
