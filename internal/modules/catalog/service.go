package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Cacher is satisfied by cache.Cache. A nil Cacher disables caching.
type Cacher interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value any) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

const cachePrefix = "catalog:"

type Service struct {
	repo  Repository
	cache Cacher
}

func NewService(repo Repository, cache Cacher) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context, in ListParams) (ListResult, error) {
	key := fmt.Sprintf("%slist:%s:%s:%d:%d", cachePrefix, in.CategorySlug, in.Q, in.Page, in.PageSize)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var res ListResult
			if uerr := json.Unmarshal(raw, &res); uerr == nil {
				return res, nil
			}
		}
	}

	res, err := s.repo.ListActive(ctx, in)
	if err != nil {
		return ListResult{}, err
	}

	if s.cache != nil {
		if cerr := s.cache.Set(ctx, key, res); cerr != nil {
			log.Printf("catalog: cache set failed: %v", cerr)
		}
	}
	return res, nil
}

func (s *Service) Detail(ctx context.Context, slug string) (Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

// Invalidate drops every cached catalog read. Called by the admin
// handlers after any product or category mutation.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, cachePrefix); err != nil {
		log.Printf("catalog: cache invalidation failed: %v", err)
	}
}
