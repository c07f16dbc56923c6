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

type AuthHandler struct {
	svc        *users.Service
	sessionCfg middleware.SessionCfg
}

func NewAuthHandler(svc *users.Service, sessionCfg middleware.SessionCfg) *AuthHandler {
	return &AuthHandler{svc: svc, sessionCfg: sessionCfg}
}

type registerInput struct {
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register handles POST /api/auth/register and opens a session right
// away.
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	u, err := h.svc.Register(c.Request.Context(), users.RegisterInput{
		Phone:     in.Phone,
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrPhoneTaken):
			middleware.Fail(c, apperr.ConflictErr("Ce numéro est déjà enregistré."))
		case errors.Is(err, users.ErrWeakPassword):
			middleware.Fail(c, apperr.InvalidErr("Le mot de passe doit contenir au moins 8 caractères.", nil))
		case errors.Is(err, users.ErrInvalidCredentials):
			middleware.Fail(c, apperr.InvalidErr("Numéro de téléphone invalide.", nil))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	if err := h.openSession(c, u.ID); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Created(c, userPayload(u))
}

type loginInput struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login. Identifier is the phone number or
// the account email.
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	u, err := h.svc.Login(c.Request.Context(), in.Identifier, in.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			middleware.Fail(c, apperr.UnauthorizedErr("Identifiants incorrects."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if err := h.openSession(c, u.ID); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.OK(c, userPayload(u))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.sessionCfg.CookieName); err == nil && sessionID != "" {
		_ = middleware.DeleteSession(h.sessionCfg, sessionID)
	}
	c.SetSameSite(2) // Lax
	c.SetCookie(h.sessionCfg.CookieName, "", -1, "/", "", h.sessionCfg.Secure, true)
	render.NoContent(c)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Connectez-vous pour continuer."))
		return
	}

	full, err := h.svc.GetByID(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.OK(c, userPayload(full))
}

func (h *AuthHandler) openSession(c *gin.Context, userID string) error {
	sess, err := middleware.CreateSession(h.sessionCfg, userID)
	if err != nil {
		return err
	}
	maxAge := int(h.sessionCfg.TTL.Seconds())
	c.SetSameSite(2) // Lax
	c.SetCookie(h.sessionCfg.CookieName, sess.ID, maxAge, "/", "", h.sessionCfg.Secure, true)
	return nil
}

func userPayload(u users.User) gin.H {
	out := gin.H{
		"id":    u.ID,
		"phone": u.PhoneE164,
		"role":  u.Role,
	}
	if u.Email != nil {
		out["email"] = *u.Email
	}
	if u.FirstName != nil {
		out["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		out["last_name"] = *u.LastName
	}
	return out
}
