package casestudies

import (
	"context"
	"errors"
	"sort"
	"sync"

	"agency-backend/internal/models"
	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/mongo"
)

type memoryRepo struct {
	mu        sync.Mutex
	items     map[string]CaseStudy
	failViews bool
}

func newMemoryRepo(items ...CaseStudy) *memoryRepo {
	r := &memoryRepo{items: map[string]CaseStudy{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *memoryRepo) Create(ctx context.Context, item CaseStudy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.SEO.Slug == item.SEO.Slug {
			return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}
		}
	}
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) Replace(ctx context.Context, item CaseStudy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	delete(r.items, id)
	return ok, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (CaseStudy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return CaseStudy{}, mongo.ErrNoDocuments
	}
	return it, nil
}

func (r *memoryRepo) GetBySlug(ctx context.Context, slug string) (CaseStudy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.SEO.Slug == slug {
			return it, nil
		}
	}
	return CaseStudy{}, mongo.ErrNoDocuments
}

func (r *memoryRepo) matching(f ListFilter) []CaseStudy {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CaseStudy, 0, len(r.items))
	for _, it := range r.items {
		if f.PublishedOnly && !it.IsPublished {
			continue
		}
		if f.Featured && !it.IsFeatured {
			continue
		}
		if f.Industry != "" && it.Client.Industry != f.Industry {
			continue
		}
		if len(f.Services) > 0 && !anyOf(it.Services, f.Services) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func anyOf(have, want []string) bool {
	for _, w := range want {
		if models.Contains(have, w) {
			return true
		}
	}
	return false
}

func (r *memoryRepo) List(ctx context.Context, f ListFilter) ([]CaseStudy, error) {
	all := r.matching(f)
	start, end := window(f.Page, len(all))
	return all[start:end], nil
}

func (r *memoryRepo) Count(ctx context.Context, f ListFilter) (int64, error) {
	return int64(len(r.matching(f))), nil
}

func (r *memoryRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failViews {
		return errors.New("write conflict")
	}
	it := r.items[id]
	it.ViewCount++
	r.items[id] = it
	return nil
}

func window(p query.Page, n int) (start, end int) {
	if p.Limit <= 0 {
		return 0, n
	}
	start = int(min(p.Skip(), int64(n)))
	end = int(min(int64(start)+p.Limit, int64(n)))
	return start, end
}
