package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type ListParams struct {
	CategorySlug string
	Q            string
	Page         int
	PageSize     int
}

type ListResult struct {
	Items []Product
	Total int64
}

type Repository interface {
	ListActive(ctx context.Context, in ListParams) (ListResult, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) ListActive(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 24
	}

	q := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("products.status = ?", StatusActive)

	if slug := strings.TrimSpace(in.CategorySlug); slug != "" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", slug)
	}
	if term := strings.TrimSpace(in.Q); term != "" {
		like := "%" + term + "%"
		q = q.Where("(products.name LIKE ? OR products.description LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var items []Product
	if err := q.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Preload("Category").
		Order("products.created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: items, Total: total}, nil
}

func (r *GormRepo) GetBySlug(ctx context.Context, slug string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("slug = ? AND status = ?", slug, StatusActive).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Preload("Category").
		First(&p).Error
	return p, err
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]Category, error) {
	var cats []Category
	err := r.db.WithContext(ctx).
		Order("position ASC, name ASC").
		Find(&cats).Error
	return cats, err
}
