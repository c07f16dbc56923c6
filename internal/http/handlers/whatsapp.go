package handlers

import (
	"github.com/gin-gonic/gin"

	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/whatsapp"
)

type WhatsAppHandler struct {
	wa *whatsapp.LinkBuilder
}

func NewWhatsAppHandler(wa *whatsapp.LinkBuilder) *WhatsAppHandler {
	return &WhatsAppHandler{wa: wa}
}

// Contact handles GET /api/whatsapp.
func (h *WhatsAppHandler) Contact(c *gin.Context) {
	sales, support := h.wa.Numbers()
	render.OK(c, gin.H{
		"sales_number":   sales,
		"support_number": support,
		"support_link":   h.wa.SupportLink(),
	})
}
