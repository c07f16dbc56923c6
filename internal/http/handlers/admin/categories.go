package admin

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/http/validation"
	"sikassosugu.ml/app/internal/modules/catalog"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/internal/shared/slug"
)

type CategoriesHandler struct {
	repo    *catalog.Repo
	catalog *catalog.Service
}

func NewCategoriesHandler(repo *catalog.Repo, catalogSvc *catalog.Service) *CategoriesHandler {
	return &CategoriesHandler{repo: repo, catalog: catalogSvc}
}

type categoryInput struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug"`
	Position int    `json:"position"`
}

func (in categoryInput) parts() (name, s string, position int) {
	name = strings.TrimSpace(in.Name)
	s = strings.TrimSpace(in.Slug)
	if s == "" {
		s = slug.FromName(name)
	}
	return name, s, in.Position
}

// Create handles POST /api/admin/categories.
func (h *CategoriesHandler) Create(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	name, s, position := in.parts()
	cat, err := h.repo.CreateCategory(c.Request.Context(), name, s, position)
	if err != nil {
		if catalog.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("Ce slug est déjà utilisé."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	render.Created(c, cat)
}

// Update handles PUT /api/admin/categories/:id.
func (h *CategoriesHandler) Update(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	name, s, position := in.parts()
	if err := h.repo.UpdateCategory(c.Request.Context(), c.Param("id"), name, s, position); err != nil {
		if catalog.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("Ce slug est déjà utilisé."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	render.NoContent(c)
}

// Delete handles DELETE /api/admin/categories/:id.
func (h *CategoriesHandler) Delete(c *gin.Context) {
	if err := h.repo.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.catalog.Invalidate(c.Request.Context())
	render.NoContent(c)
}

func atoiOr(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
