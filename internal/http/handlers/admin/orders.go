package admin

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/http/validation"
	"sikassosugu.ml/app/internal/modules/checkout"
	"sikassosugu.ml/app/internal/modules/delivery"
	"sikassosugu.ml/app/internal/modules/orders"
	"sikassosugu.ml/app/internal/modules/payments"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/internal/whatsapp"
	"sikassosugu.ml/app/pkg/view"
)

type OrdersHandler struct {
	repo     *orders.Repo
	admin    *orders.AdminService
	receipts *payments.Service
	outreach *whatsapp.OutreachService
}

func NewOrdersHandler(repo *orders.Repo, adminSvc *orders.AdminService,
	receipts *payments.Service, outreach *whatsapp.OutreachService) *OrdersHandler {
	return &OrdersHandler{repo: repo, admin: adminSvc, receipts: receipts, outreach: outreach}
}

// List handles GET /api/admin/orders.
func (h *OrdersHandler) List(c *gin.Context) {
	page := atoiOr(c.DefaultQuery("page", "1"), 1)

	res, err := h.repo.AdminList(c.Request.Context(), orders.AdminListParams{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: atoiOr(c.DefaultQuery("page_size", "30"), 30),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := view.AdminOrdersListPage{
		Items:      make([]view.AdminOrderListItem, 0, len(res.Items)),
		Q:          c.Query("q"),
		Status:     c.Query("status"),
		Page:       page,
		TotalPages: int((res.Total + 29) / 30),
	}
	if out.TotalPages < 1 {
		out.TotalPages = 1
	}
	for _, o := range res.Items {
		item := view.AdminOrderListItem{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			Status:      o.Status,
			Total:       view.FormatFCFA(o.TotalFCFA),
			Method:      o.PaymentMethod,
			CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		}
		if o.GuestPhone != nil {
			item.GuestPhone = *o.GuestPhone
		}
		if o.UserID != nil {
			item.UserID = *o.UserID
		}
		out.Items = append(out.Items, item)
	}
	render.OK(c, out)
}

// Show handles GET /api/admin/orders/:id.
func (h *OrdersHandler) Show(c *gin.Context) {
	id := c.Param("id")

	o, items, events, err := h.repo.AdminGetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Commande introuvable."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	financial, err := h.repo.AdminListFinancial(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	receipts, err := h.receipts.ForOrder(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	contacts, err := h.outreach.ForOrder(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	render.OK(c, gin.H{
		"order":    adminOrderDetail(o, items, events, financial),
		"receipts": receipts,
		"outreach": contacts,
	})
}

type transitionInput struct {
	Action string `json:"action" binding:"required,oneof=verify process ship deliver cancel refund"`
	Note   string `json:"note"`
}

// Transition handles POST /api/admin/orders/:id/transition.
func (h *OrdersHandler) Transition(c *gin.Context) {
	var in transitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	u, _ := middleware.CurrentUser(c)
	err := h.admin.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID:     c.Param("id"),
		ActorUserID: u.ID,
		Action:      in.Action,
		Note:        in.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidTransition):
			middleware.Fail(c, apperr.ConflictErr("Cette transition n'est pas permise depuis le statut actuel."))
		case errors.Is(err, gorm.ErrRecordNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Commande introuvable."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}
	render.NoContent(c)
}

// Delete handles DELETE /api/admin/orders/:id.
func (h *OrdersHandler) Delete(c *gin.Context) {
	if err := h.repo.AdminDelete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.NoContent(c)
}

func adminOrderDetail(o orders.Order, items []orders.OrderItem, events []orders.OrderEvent, financial []orders.FinancialEntry) view.AdminOrderDetail {
	d := view.AdminOrderDetail{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		Subtotal:      view.FormatFCFA(o.SubtotalFCFA),
		Shipping:      view.FormatFCFA(o.ShippingFCFA),
		Total:         view.FormatFCFA(o.TotalFCFA),
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
	if o.UserID != nil {
		d.UserID = *o.UserID
	}
	if o.GuestPhone != nil {
		d.GuestPhone = *o.GuestPhone
	}

	var addr checkout.Address
	if json.Unmarshal(o.ShippingAddressJSON, &addr) == nil {
		line := addr.FirstName + " " + addr.LastName
		if addr.Line1 != "" {
			line += ", " + addr.Line1
		}
		if addr.Phone != "" {
			line += " (" + addr.Phone + ")"
		}
		d.Address = line
	}
	if len(o.DeliveryZoneJSON) > 0 {
		var z delivery.Zone
		if json.Unmarshal(o.DeliveryZoneJSON, &z) == nil {
			d.Zone = z.Name
		}
	}
	if len(o.PaymentInfoJSON) > 0 {
		var p checkout.PaymentInfo
		if json.Unmarshal(o.PaymentInfoJSON, &p) == nil {
			d.PaymentInfo = p.ClientPhone
		}
	}

	for _, it := range items {
		d.Items = append(d.Items, view.AdminOrderItem{
			ProductName: it.ProductName,
			SKU:         it.SKU,
			Qty:         it.Quantity,
			Unit:        view.FormatFCFA(it.PriceFCFA),
			Line:        view.FormatFCFA(it.LineFCFA),
		})
	}
	for _, ev := range events {
		item := view.AdminOrderEvent{
			Action:      ev.Action,
			From:        ev.FromStatus,
			To:          ev.ToStatus,
			ActorUserID: ev.ActorUserID,
			At:          ev.CreatedAt.Format(time.RFC3339),
		}
		if ev.Note != nil {
			item.Note = *ev.Note
		}
		d.Events = append(d.Events, item)
	}
	for _, f := range financial {
		d.Financial = append(d.Financial, view.AdminOrderFinancialEntry{
			Event:      f.Event,
			AmountFCFA: f.AmountFCFA,
			AmountStr:  view.FormatFCFA(f.AmountFCFA),
			RefType:    f.RefType,
			RefID:      f.RefID,
			At:         f.CreatedAt.Format(time.RFC3339),
		})
	}
	return d
}
