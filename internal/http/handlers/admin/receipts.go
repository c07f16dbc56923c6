package admin

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/http/validation"
	"sikassosugu.ml/app/internal/modules/orders"
	"sikassosugu.ml/app/internal/modules/payments"
	"sikassosugu.ml/app/internal/shared/apperr"
)

// ReceiptsHandler is the mobile-money verification queue.
type ReceiptsHandler struct {
	receipts *payments.Service
}

func NewReceiptsHandler(receipts *payments.Service) *ReceiptsHandler {
	return &ReceiptsHandler{receipts: receipts}
}

// Pending handles GET /api/admin/receipts.
func (h *ReceiptsHandler) Pending(c *gin.Context) {
	limit := atoiOr(c.DefaultQuery("page_size", "20"), 20)
	page := atoiOr(c.DefaultQuery("page", "1"), 1)
	if page < 1 {
		page = 1
	}

	rows, total, err := h.receipts.ListPending(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.OK(c, gin.H{"items": rows, "total": total, "page": page})
}

type reviewInput struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// Review handles POST /api/admin/receipts/:id/review.
func (h *ReceiptsHandler) Review(c *gin.Context) {
	var in reviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	u, _ := middleware.CurrentUser(c)
	err := h.receipts.Review(c.Request.Context(), payments.ReviewInput{
		ReceiptID:   c.Param("id"),
		AdminUserID: u.ID,
		Approve:     in.Approve,
		Note:        in.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Reçu introuvable."))
		case errors.Is(err, payments.ErrAlreadyReviewed):
			middleware.Fail(c, apperr.ConflictErr("Ce reçu a déjà été traité."))
		case errors.Is(err, orders.ErrInvalidTransition):
			middleware.Fail(c, apperr.ConflictErr("La commande n'attend plus de vérification."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}
	render.NoContent(c)
}
