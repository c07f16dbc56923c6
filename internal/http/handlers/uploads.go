package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/internal/uploadauth"
)

// UploadsHandler signs direct-to-CDN uploads (payment receipts).
type UploadsHandler struct {
	signer *uploadauth.Signer
}

func NewUploadsHandler(signer *uploadauth.Signer) *UploadsHandler {
	return &UploadsHandler{signer: signer}
}

// Auth handles GET /api/uploads/auth.
func (h *UploadsHandler) Auth(c *gin.Context) {
	p, err := h.signer.Sign()
	if err != nil {
		if errors.Is(err, uploadauth.ErrNotConfigured) {
			middleware.Fail(c, apperr.ConflictErr("Le téléversement de reçus n'est pas disponible pour le moment."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.OK(c, p)
}
