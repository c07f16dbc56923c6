package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/cartcookie"
	"sikassosugu.ml/app/internal/http/checkoutcookie"
	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/http/validation"
	"sikassosugu.ml/app/internal/modules/cart"
	"sikassosugu.ml/app/internal/modules/checkout"
	"sikassosugu.ml/app/internal/modules/delivery"
	"sikassosugu.ml/app/internal/modules/orders"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/internal/whatsapp"
	"sikassosugu.ml/app/pkg/view"
)

// CheckoutHandler drives the three-step flow. The session travels in a
// signed cookie; every mutation answers with the full checkout state so
// the frontend re-renders from one payload.
type CheckoutHandler struct {
	db       *gorm.DB
	sessions *checkoutcookie.Codec
	carts    *cartcookie.Codec
	cartSvc  *cart.Service
	orderSvc *orders.Service
	wa       *whatsapp.LinkBuilder
}

func NewCheckoutHandler(db *gorm.DB, sessions *checkoutcookie.Codec, carts *cartcookie.Codec,
	cartSvc *cart.Service, orderSvc *orders.Service, wa *whatsapp.LinkBuilder) *CheckoutHandler {
	return &CheckoutHandler{db: db, sessions: sessions, carts: carts, cartSvc: cartSvc, orderSvc: orderSvc, wa: wa}
}

// State handles GET /api/checkout.
func (h *CheckoutHandler) State(c *gin.Context) {
	sess := h.sessions.Get(c)
	state, err := h.buildState(c, sess)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.OK(c, state)
}

// Reset handles POST /api/checkout/reset: back to a fresh address step.
func (h *CheckoutHandler) Reset(c *gin.Context) {
	h.sessions.Clear(c)
	render.NoContent(c)
}

type addressInput struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Line1     string   `json:"line1"`
	Line2     string   `json:"line2"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Phone     string   `json:"phone"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`

	// Manual zone choice when geolocation is refused.
	ZoneName string `json:"zone_name"`
}

// SubmitAddress handles POST /api/checkout/address.
func (h *CheckoutHandler) SubmitAddress(c *gin.Context) {
	var in addressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	sess := h.sessions.Get(c)

	var zone *delivery.Zone
	if in.Lat != nil && in.Lng != nil {
		zone = delivery.FindNearestZone(*in.Lat, *in.Lng)
	}
	if zone == nil && strings.TrimSpace(in.ZoneName) != "" {
		zone = zoneByName(in.ZoneName)
	}

	addr := checkout.Address{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Line1:     in.Line1,
		Line2:     in.Line2,
		City:      in.City,
		Country:   in.Country,
		Phone:     in.Phone,
		Lat:       in.Lat,
		Lng:       in.Lng,
	}
	if err := sess.SubmitAddress(addr, zone); err != nil {
		h.failStep(c, err)
		return
	}

	if err := h.sessions.Set(c, sess); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	state, err := h.buildState(c, sess)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.OK(c, state)
}

type paymentInput struct {
	Method         string `json:"method" binding:"required"`
	ClientPhone    string `json:"client_phone"`
	ReceiptURL     string `json:"receipt_url"`
	IdempotencyKey string `json:"idempotency_key"`
}

// SubmitPayment handles POST /api/checkout/payment: the payment guard,
// then order creation, then the terminal transition. The guard rejects
// before anything touches the database.
func (h *CheckoutHandler) SubmitPayment(c *gin.Context) {
	var in paymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	sess := h.sessions.Get(c)
	pay := checkout.PaymentInfo{ClientPhone: in.ClientPhone, ReceiptURL: in.ReceiptURL}
	if err := sess.ValidatePayment(in.Method, pay); err != nil {
		h.failStep(c, err)
		return
	}

	page, err := h.currentCart(c)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if len(page.Items) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Votre panier est vide.", nil))
		return
	}

	lines := make([]checkout.Line, 0, len(page.Items))
	for _, it := range page.Items {
		lines = append(lines, checkout.Line{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			PriceFCFA: it.UnitPriceFCFA,
			Quantity:  it.Qty,
			SKU:       it.SKU,
		})
	}
	_, total := sess.Totals(page.SubtotalFCFA)

	createIn := orders.CreateInput{
		Address:       sess.Address,
		Zone:          sess.Zone,
		PaymentMethod: in.Method,
		Payment:       pay,
		Items:         lines,
		TotalFCFA:     total,
	}
	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		createIn.IdempotencyKey = &key
	}
	if u, ok := middleware.CurrentUser(c); ok {
		createIn.UserID = &u.ID
	} else {
		phone := strings.TrimSpace(sess.Address.Phone)
		if phone == "" {
			phone = strings.TrimSpace(in.ClientPhone)
		}
		if phone != "" {
			createIn.GuestPhone = &phone
		}
	}

	res, err := h.orderSvc.Create(c.Request.Context(), createIn)
	if err != nil {
		var oos *checkout.OutOfStockError
		if errors.As(err, &oos) {
			middleware.Fail(c, apperr.ConflictErr("Certains articles ne sont plus en stock."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if err := sess.Confirm(res.OrderNumber, lines); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if err := h.sessions.Set(c, sess); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.clearCart(c)

	state, err := h.buildState(c, sess)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	state.WhatsAppLink = h.wa.OrderLink(res.Order, res.Items)
	render.Created(c, state)
}

func (h *CheckoutHandler) failStep(c *gin.Context, err error) {
	var ve *checkout.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.Fail(c, apperr.InvalidErr(ve.Message, map[string]string{ve.Field: ve.Message}))
	case errors.Is(err, checkout.ErrSessionDone):
		middleware.Fail(c, apperr.ConflictErr("Cette commande est déjà confirmée."))
	case errors.Is(err, checkout.ErrAddressFirst):
		middleware.Fail(c, apperr.InvalidErr("Renseignez d'abord votre adresse de livraison.", nil))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}

func (h *CheckoutHandler) buildState(c *gin.Context, sess *checkout.Session) (view.CheckoutState, error) {
	state := view.CheckoutState{Step: string(sess.Step)}

	if sess.Step == checkout.StepConfirmation {
		// the cart is gone; the summary comes from the snapshot
		state.OrderNumber = sess.OrderNumber
		state.Snapshot = snapshotItems(sess.Snapshot)
		state.Summary = summaryFromLines(sess, sess.Snapshot)
		return state, nil
	}

	page, err := h.currentCart(c)
	if err != nil {
		return view.CheckoutState{}, err
	}
	state.Summary = summaryFromCart(sess, page)
	return state, nil
}

func (h *CheckoutHandler) currentCart(c *gin.Context) (view.CartPage, error) {
	if u, ok := middleware.CurrentUser(c); ok {
		return h.cartSvc.BuildCartPageForUser(c.Request.Context(), u.ID)
	}
	return h.cartSvc.BuildCartPageFromCookie(c.Request.Context(), h.carts.Get(c))
}

func (h *CheckoutHandler) clearCart(c *gin.Context) {
	if u, ok := middleware.CurrentUser(c); ok {
		repo := cart.NewRepo(h.db)
		if userCart, err := repo.GetOrCreateUserCart(c.Request.Context(), u.ID); err == nil {
			_ = repo.ClearCart(c.Request.Context(), userCart.ID)
		}
		return
	}
	h.carts.Clear(c)
}

func summaryFromCart(sess *checkout.Session, page view.CartPage) view.CheckoutSummary {
	shipping, total := sess.Totals(page.SubtotalFCFA)
	s := view.CheckoutSummary{
		Items:        page.Items,
		Count:        page.Count,
		SubtotalFCFA: page.SubtotalFCFA,
		ShippingFCFA: shipping,
		TotalFCFA:    total,
		Subtotal:     view.FormatFCFA(page.SubtotalFCFA),
		Shipping:     view.FormatFCFA(shipping),
		Total:        view.FormatFCFA(total),
	}
	if sess.Zone != nil {
		opt := zoneOption(*sess.Zone)
		s.Zone = &opt
	}
	return s
}

func summaryFromLines(sess *checkout.Session, lines []checkout.Line) view.CheckoutSummary {
	items := snapshotItems(lines)
	subtotal := 0
	count := 0
	for _, it := range items {
		subtotal += it.LineTotalFCFA
		count += it.Qty
	}
	shipping, total := sess.Totals(subtotal)
	s := view.CheckoutSummary{
		Items:        items,
		Count:        count,
		SubtotalFCFA: subtotal,
		ShippingFCFA: shipping,
		TotalFCFA:    total,
		Subtotal:     view.FormatFCFA(subtotal),
		Shipping:     view.FormatFCFA(shipping),
		Total:        view.FormatFCFA(total),
	}
	if sess.Zone != nil {
		opt := zoneOption(*sess.Zone)
		s.Zone = &opt
	}
	return s
}

func snapshotItems(lines []checkout.Line) []view.CartItem {
	out := make([]view.CartItem, 0, len(lines))
	for _, l := range lines {
		line := l.PriceFCFA * l.Quantity
		out = append(out, view.CartItem{
			ProductID:     l.ProductID,
			ProductName:   l.Name,
			SKU:           l.SKU,
			Qty:           l.Quantity,
			UnitPriceFCFA: l.PriceFCFA,
			LineTotalFCFA: line,
			UnitPrice:     view.FormatFCFA(l.PriceFCFA),
			LineTotal:     view.FormatFCFA(line),
		})
	}
	return out
}

func zoneByName(name string) *delivery.Zone {
	name = strings.TrimSpace(name)
	for _, z := range delivery.Zones() {
		if strings.EqualFold(z.Name, name) {
			matched := z
			return &matched
		}
	}
	return nil
}
