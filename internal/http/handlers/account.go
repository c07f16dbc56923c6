package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/http/validation"
	"sikassosugu.ml/app/internal/modules/users"
	"sikassosugu.ml/app/internal/shared/apperr"
)

type AccountHandler struct {
	svc *users.Service
}

func NewAccountHandler(svc *users.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

type profileInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
}

// UpdateProfile handles PUT /api/account/profile.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	var in profileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	err := h.svc.UpdateProfile(c.Request.Context(), u.ID, users.ProfileInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	})
	if err != nil {
		if errors.Is(err, users.ErrPhoneTaken) {
			middleware.Fail(c, apperr.ConflictErr("Cet e-mail est déjà utilisé."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	full, err := h.svc.GetByID(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.OK(c, userPayload(full))
}

type passwordInput struct {
	Current string `json:"current" binding:"required"`
	Next    string `json:"next" binding:"required,min=8"`
}

// ChangePassword handles PUT /api/account/password.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	var in passwordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	err := h.svc.ChangePassword(c.Request.Context(), u.ID, in.Current, in.Next)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidCredentials):
			middleware.Fail(c, apperr.UnauthorizedErr("Mot de passe actuel incorrect."))
		case errors.Is(err, users.ErrWeakPassword):
			middleware.Fail(c, apperr.InvalidErr("Le mot de passe doit contenir au moins 8 caractères.", nil))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}
	render.NoContent(c)
}
