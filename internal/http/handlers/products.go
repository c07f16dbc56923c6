package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sikassosugu.ml/app/internal/http/middleware"
	"sikassosugu.ml/app/internal/http/render"
	"sikassosugu.ml/app/internal/modules/catalog"
	"sikassosugu.ml/app/internal/shared/apperr"
	"sikassosugu.ml/app/internal/whatsapp"
	"sikassosugu.ml/app/pkg/view"
)

type ProductsHandler struct {
	svc *catalog.Service
	wa  *whatsapp.LinkBuilder
}

func NewProductsHandler(svc *catalog.Service, wa *whatsapp.LinkBuilder) *ProductsHandler {
	return &ProductsHandler{svc: svc, wa: wa}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *gin.Context) {
	in := catalog.ListParams{
		CategorySlug: c.Query("category"),
		Q:            c.Query("q"),
		Page:         intQuery(c, "page", 1),
		PageSize:     intQuery(c, "page_size", 24),
	}

	res, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 24
	}

	out := view.ProductListPage{
		Items:      make([]view.ProductCard, 0, len(res.Items)),
		Total:      res.Total,
		Page:       page,
		TotalPages: totalPages(res.Total, size),
	}
	for _, p := range res.Items {
		out.Items = append(out.Items, productCard(p))
	}
	render.OK(c, out)
}

// Show handles GET /api/products/:slug.
func (h *ProductsHandler) Show(c *gin.Context) {
	p, err := h.svc.Detail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Produit introuvable."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	detail := productDetail(p)
	render.OK(c, gin.H{
		"product":       detail,
		"whatsapp_link": h.wa.ProductLink(p.Name, p.Slug),
	})
}

// Categories handles GET /api/categories.
func (h *ProductsHandler) Categories(c *gin.Context) {
	cats, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	out := make([]view.CategoryItem, 0, len(cats))
	for _, cat := range cats {
		out = append(out, view.CategoryItem{ID: cat.ID, Name: cat.Name, Slug: cat.Slug})
	}
	render.OK(c, gin.H{"items": out})
}

func productCard(p catalog.Product) view.ProductCard {
	img := ""
	if len(p.Images) > 0 {
		img = p.Images[0].URL
	}
	category := ""
	if p.Category != nil {
		category = p.Category.Name
	}
	return view.ProductCard{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		PriceFCFA: p.PriceFCFA,
		Price:     view.FormatFCFA(p.PriceFCFA),
		ImageURL:  img,
		Category:  category,
		InStock:   p.Stock > 0,
	}
}

func productDetail(p catalog.Product) view.ProductDetail {
	imgs := make([]string, 0, len(p.Images))
	for _, im := range p.Images {
		imgs = append(imgs, im.URL)
	}
	category := ""
	if p.Category != nil {
		category = p.Category.Name
	}
	return view.ProductDetail{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		SKU:         p.SKU,
		PriceFCFA:   p.PriceFCFA,
		Price:       view.FormatFCFA(p.PriceFCFA),
		Stock:       p.Stock,
		Category:    category,
		Images:      imgs,
	}
}

func intQuery(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func totalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	return pages
}
