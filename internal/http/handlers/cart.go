package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/cartcookie"
	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/http/validation"
	"sikassosugu.ml/app/internal/modules/cart"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/pkg/view"
)

// CartHandler serves the cart for both audiences: logged-in users get a
// database cart, guests a signed cookie.
type CartHandler struct {
	db  *gorm.DB
	ck  *cartcookie.Codec
	svc *cart.Service
}

func NewCartHandler(db *gorm.DB, ck *cartcookie.Codec, svc *cart.Service) *CartHandler {
	return &CartHandler{db: db, ck: ck, svc: svc}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	page, err := h.currentPage(c)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.OK(c, page)
}

type cartMutation struct {
	ProductID string `json:"product_id" binding:"required"`
	Qty       int    `json:"qty"`
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	var in cartMutation
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}
	qty := clampQty(in.Qty, 1)

	if u, ok := middleware.CurrentUser(c); ok {
		repo := cart.NewRepo(h.db)
		userCart, err := repo.GetOrCreateUserCart(c.Request.Context(), u.ID)
		if err == nil {
			err = repo.AddItem(c.Request.Context(), userCart.ID, in.ProductID, qty)
		}
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
	} else {
		cc := h.ck.Get(c)
		cc.Add(in.ProductID, qty)
		if err := h.ck.Set(c, *cc); err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
	}

	h.Get(c)
}

// Update handles PUT /api/cart/items/:productID. Qty 0 removes the
// line.
func (h *CartHandler) Update(c *gin.Context) {
	productID := c.Param("productID")
	var in struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}
	qty := clampQty(in.Qty, 0)

	if u, ok := middleware.CurrentUser(c); ok {
		repo := cart.NewRepo(h.db)
		userCart, err := repo.GetOrCreateUserCart(c.Request.Context(), u.ID)
		if err == nil {
			err = repo.UpdateItemQty(c.Request.Context(), userCart.ID, productID, qty)
		}
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
	} else {
		cc := h.ck.Get(c)
		cc.SetQty(productID, qty)
		if err := h.ck.Set(c, *cc); err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
	}

	h.Get(c)
}

// Remove handles DELETE /api/cart/items/:productID.
func (h *CartHandler) Remove(c *gin.Context) {
	productID := c.Param("productID")

	if u, ok := middleware.CurrentUser(c); ok {
		repo := cart.NewRepo(h.db)
		userCart, err := repo.GetOrCreateUserCart(c.Request.Context(), u.ID)
		if err == nil {
			err = repo.RemoveItem(c.Request.Context(), userCart.ID, productID)
		}
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
	} else {
		cc := h.ck.Get(c)
		cc.Remove(productID)
		if err := h.ck.Set(c, *cc); err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
	}

	h.Get(c)
}

func (h *CartHandler) currentPage(c *gin.Context) (view.CartPage, error) {
	if u, ok := middleware.CurrentUser(c); ok {
		return h.svc.BuildCartPageForUser(c.Request.Context(), u.ID)
	}
	return h.svc.BuildCartPageFromCookie(c.Request.Context(), h.ck.Get(c))
}

func clampQty(q, min int) int {
	if q < min {
		return min
	}
	if q > 99 {
		return 99
	}
	return q
}
