package admin

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/http/validation"
	"sikassosugu.ml/app/internal/modules/catalog"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/internal/shared/slug"
	"sikassosugu.ml/app/internal/storage"
	"sikassosugu.ml/app/pkg/view"
)

const maxImageSize = 5 << 20 // 5 MiB

type ProductsHandler struct {
	repo    *catalog.Repo
	catalog *catalog.Service
	store   storage.Storage
}

func NewProductsHandler(repo *catalog.Repo, catalogSvc *catalog.Service, store storage.Storage) *ProductsHandler {
	return &ProductsHandler{repo: repo, catalog: catalogSvc, store: store}
}

// List handles GET /api/admin/products.
func (h *ProductsHandler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := make([]view.AdminProductListItem, 0, len(items))
	for _, p := range items {
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		out = append(out, view.AdminProductListItem{
			ID:        p.ID,
			Name:      p.Name,
			Slug:      p.Slug,
			SKU:       p.SKU,
			Price:     view.FormatFCFA(p.PriceFCFA),
			PriceFCFA: p.PriceFCFA,
			Stock:     p.Stock,
			Status:    p.Status,
			Category:  category,
			UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
		})
	}
	render.OK(c, gin.H{"items": out})
}

// Show handles GET /api/admin/products/:id.
func (h *ProductsHandler) Show(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Produit introuvable."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.OK(c, p)
}

type productInput struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	SKU         string  `json:"sku"`
	PriceFCFA   int     `json:"price_fcfa" binding:"required,gte=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Status      string  `json:"status" binding:"omitempty,oneof=active draft"`
	CategoryID  *string `json:"category_id"`
}

func (in productInput) toModel() catalog.Product {
	s := strings.TrimSpace(in.Slug)
	if s == "" {
		s = slug.FromName(in.Name)
	}
	status := in.Status
	if status == "" {
		status = catalog.StatusDraft
	}
	return catalog.Product{
		Name:        strings.TrimSpace(in.Name),
		Slug:        s,
		Description: in.Description,
		SKU:         strings.TrimSpace(in.SKU),
		PriceFCFA:   in.PriceFCFA,
		Stock:       in.Stock,
		Status:      status,
		CategoryID:  in.CategoryID,
	}
}

// Create handles POST /api/admin/products.
func (h *ProductsHandler) Create(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	p, err := h.repo.CreateProduct(c.Request.Context(), in.toModel())
	if err != nil {
		if catalog.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("Ce slug est déjà utilisé."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	render.Created(c, p)
}

// Update handles PUT /api/admin/products/:id.
func (h *ProductsHandler) Update(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		render.ValidationFailed(c, validation.FromBindError(err, &in))
		return
	}

	id := c.Param("id")
	if err := h.repo.UpdateProduct(c.Request.Context(), id, in.toModel()); err != nil {
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

// Delete handles DELETE /api/admin/products/:id.
func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.repo.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.catalog.Invalidate(c.Request.Context())
	render.NoContent(c)
}

// UploadImage handles POST /api/admin/products/:id/images
// (multipart/form-data, field "image").
func (h *ProductsHandler) UploadImage(c *gin.Context) {
	productID := c.Param("id")

	if _, err := h.repo.Get(c.Request.Context(), productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Produit introuvable."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Aucune image reçue.", nil))
		return
	}
	if fh.Size > maxImageSize {
		middleware.Fail(c, apperr.InvalidErr("L'image dépasse 5 Mo.", nil))
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		middleware.Fail(c, apperr.InvalidErr("Le fichier doit être une image.", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	put, err := h.store.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	position := 0
	if v := c.Query("position"); v != "" {
		position = atoiOr(v, 0)
	}

	im, err := h.repo.AddImage(c.Request.Context(), productID, put.Key, put.URL, position)
	if err != nil {
		// orphaned object, best effort cleanup
		_ = h.store.Delete(c.Request.Context(), put.Key)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, im)
}

// DeleteImage handles DELETE /api/admin/products/:id/images/:imageID.
func (h *ProductsHandler) DeleteImage(c *gin.Context) {
	productID, imageID := c.Param("id"), c.Param("imageID")

	im, err := h.repo.GetImage(c.Request.Context(), productID, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Image introuvable."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if err := h.repo.DeleteImage(c.Request.Context(), productID, imageID); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if im.StorageKey != "" {
		_ = h.store.Delete(c.Request.Context(), im.StorageKey)
	}

	h.catalog.Invalidate(c.Request.Context())
	render.NoContent(c)
}
