package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/mongo"
)

type memoryRepo struct {
	mu    sync.Mutex
	items map[string]Service
	lists int
}

func newMemoryRepo(items ...Service) *memoryRepo {
	r := &memoryRepo{items: map[string]Service{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *memoryRepo) Create(ctx context.Context, item Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) Replace(ctx context.Context, item Service) error {
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

func (r *memoryRepo) GetByID(ctx context.Context, id string) (Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return Service{}, mongo.ErrNoDocuments
	}
	return it, nil
}

func (r *memoryRepo) matching(f ListFilter) []Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Service, 0, len(r.items))
	for _, it := range r.items {
		if f.ActiveOnly && !it.IsActive {
			continue
		}
		if f.Featured && !it.IsFeatured {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.Search != "" && !contains(it.Title+" "+it.Description, f.Search) {
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

func (r *memoryRepo) List(ctx context.Context, f ListFilter) ([]Service, error) {
	r.mu.Lock()
	r.lists++
	r.mu.Unlock()
	all := r.matching(f)
	start, end := window(f.Page, len(all))
	return all[start:end], nil
}

func (r *memoryRepo) Count(ctx context.Context, f ListFilter) (int64, error) {
	return int64(len(r.matching(f))), nil
}

func (r *memoryRepo) SetOrder(ctx context.Context, id string, order int, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	it.Order = order
	it.UpdatedAt = now
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

func contains(haystack, term string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(term)))
}
