package admin

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/http/validation"
	"sikassosugu.ml/app/internal/modules/users"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/pkg/view"
)

type UsersHandler struct {
	db *gorm.DB
}

func NewUsersHandler(db *gorm.DB) *UsersHandler {
	return &UsersHandler{db: db}
}

// List handles GET /api/admin/users.
func (h *UsersHandler) List(c *gin.Context) {
	page := atoiOr(c.DefaultQuery("page", "1"), 1)
	if page < 1 {
		page = 1
	}
	size := atoiOr(c.DefaultQuery("page_size", "30"), 30)
	if size < 1 || size > 100 {
		size = 30
	}

	q := h.db.WithContext(c.Request.Context()).Model(&users.User{})
	if term := strings.TrimSpace(c.Query("q")); term != "" {
		like := "%" + term + "%"
		q = q.Where("(phone_e164 LIKE ? OR email LIKE ? OR first_name LIKE ? OR last_name LIKE ?)", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var list []users.User
	if err := q.Order("created_at DESC").Limit(size).Offset((page - 1) * size).Find(&list).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	items := make([]view.AdminUserItem, 0, len(list))
	for _, u := range list {
		name := ""
		if u.FirstName != nil {
			name = *u.FirstName
		}
		if u.LastName != nil {
			name = strings.TrimSpace(name + " " + *u.LastName)
		}
		items = append(items, view.AdminUserItem{
			ID:        u.ID,
			Phone:     u.PhoneE164,
			Name:      name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	render.OK(c, gin.H{"items": items, "total": total, "page": page})
}

type roleInput struct {
	Role string `json:"role" binding:"required,oneof=customer admin"`
}

// UpdateRole handles PUT /api/admin/users/:id/role. Admins cannot
// demote themselves, so there is always at least one admin left.
func (h *UsersHandler) UpdateRole(c *gin.Context) {
	var in roleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	id := c.Param("id")
	if u, ok := middleware.CurrentUser(c); ok && u.ID == id {
		middleware.Fail(c, apperr.ConflictErr("Vous ne pouvez pas modifier votre propre rôle."))
		return
	}

	res := h.db.WithContext(c.Request.Context()).Model(&users.User{}).
		Where("id = ?", id).Update("role", in.Role)
	if res.Error != nil {
		middleware.Fail(c, apperr.Wrap(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		middleware.Fail(c, apperr.NotFoundErr("Utilisateur introuvable."))
		return
	}
	render.NoContent(c)
}
