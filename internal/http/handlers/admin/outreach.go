package admin

import (
	"github.com/gin-gonic/gin"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/http/validation"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/internal/whatsapp"
)

type OutreachHandler struct {
	outreach *whatsapp.OutreachService
}

func NewOutreachHandler(outreach *whatsapp.OutreachService) *OutreachHandler {
	return &OutreachHandler{outreach: outreach}
}

type outreachInput struct {
	OrderID   string `json:"order_id" binding:"required"`
	PhoneE164 string `json:"phone" binding:"required"`
	Kind      string `json:"kind" binding:"required,oneof=payment_reminder delivery_update other"`
	Note      string `json:"note"`
}

// Record handles POST /api/admin/outreach: logs that an admin contacted
// the customer on WhatsApp.
func (h *OutreachHandler) Record(c *gin.Context) {
	var in outreachInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	u, _ := middleware.CurrentUser(c)
	err := h.outreach.Record(c.Request.Context(), whatsapp.RecordInput{
		OrderID:     in.OrderID,
		PhoneE164:   in.PhoneE164,
		Kind:        in.Kind,
		Note:        in.Note,
		ActorUserID: u.ID,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.NoContent(c)
}
