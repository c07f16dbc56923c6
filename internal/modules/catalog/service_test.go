package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type stubRepo struct {
	listCalls int
	result    ListResult
	err       error
}

func (r *stubRepo) ListActive(ctx context.Context, in ListParams) (ListResult, error) {
	r.listCalls++
	return r.result, r.err
}

func (r *stubRepo) GetBySlug(ctx context.Context, slug string) (Product, error) {
	return Product{}, errors.New("not implemented")
}

func (r *stubRepo) ListCategories(ctx context.Context) ([]Category, error) {
	return nil, nil
}

type memCache struct {
	data    map[string][]byte
	deletes []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("miss")
}

func (c *memCache) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.deletes = append(c.deletes, prefix)
	for k := range c.data {
		delete(c.data, k)
	}
	return nil
}

func TestListUsesCache(t *testing.T) {
	repo := &stubRepo{result: ListResult{Items: []Product{{ID: "p1", Name: "Sucre 5kg", PriceFCFA: 3500}}, Total: 1}}
	c := newMemCache()
	svc := NewService(repo, c)

	in := ListParams{Page: 1, PageSize: 24}

	first, err := svc.List(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.List(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}

	if repo.listCalls != 1 {
		t.Errorf("repo hit %d times, want 1 (second read from cache)", repo.listCalls)
	}
	if len(second.Items) != 1 || second.Items[0].Name != first.Items[0].Name {
		t.Errorf("cached result differs: %+v", second)
	}
}

func TestListWithoutCache(t *testing.T) {
	repo := &stubRepo{result: ListResult{Total: 0}}
	svc := NewService(repo, nil)

	if _, err := svc.List(context.Background(), ListParams{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.List(context.Background(), ListParams{}); err != nil {
		t.Fatal(err)
	}
	if repo.listCalls != 2 {
		t.Errorf("repo hit %d times, want 2", repo.listCalls)
	}
}

func TestInvalidateDropsEntries(t *testing.T) {
	repo := &stubRepo{result: ListResult{Total: 3}}
	c := newMemCache()
	svc := NewService(repo, c)

	if _, err := svc.List(context.Background(), ListParams{}); err != nil {
		t.Fatal(err)
	}
	svc.Invalidate(context.Background())

	if len(c.deletes) != 1 || c.deletes[0] != cachePrefix {
		t.Errorf("deletes = %v", c.deletes)
	}
	if _, err := svc.List(context.Background(), ListParams{}); err != nil {
		t.Fatal(err)
	}
	if repo.listCalls != 2 {
		t.Errorf("repo hit %d times after invalidation, want 2", repo.listCalls)
	}
}
