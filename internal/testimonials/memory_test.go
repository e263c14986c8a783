package testimonials

import (
	"context"
	"sort"
	"sync"

	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/mongo"
)

type memoryRepo struct {
	mu    sync.Mutex
	items map[string]Testimonial
}

func newMemoryRepo(items ...Testimonial) *memoryRepo {
	r := &memoryRepo{items: map[string]Testimonial{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *memoryRepo) Create(ctx context.Context, item Testimonial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) Replace(ctx context.Context, item Testimonial) error {
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

func (r *memoryRepo) GetByID(ctx context.Context, id string) (Testimonial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return Testimonial{}, mongo.ErrNoDocuments
	}
	return it, nil
}

func (r *memoryRepo) matching(f ListFilter) []Testimonial {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Testimonial, 0, len(r.items))
	for _, it := range r.items {
		if f.PublishedOnly && !it.IsPublished {
			continue
		}
		if f.Featured && !it.IsFeatured {
			continue
		}
		if f.Verified && it.VerificationStatus != VerificationVerified {
			continue
		}
		if f.Service != "" && it.Service != f.Service {
			continue
		}
		if f.MinRating > 0 && it.Rating < f.MinRating {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memoryRepo) List(ctx context.Context, f ListFilter) ([]Testimonial, error) {
	all := r.matching(f)
	start, end := window(f.Page, len(all))
	return all[start:end], nil
}

func (r *memoryRepo) Count(ctx context.Context, f ListFilter) (int64, error) {
	return int64(len(r.matching(f))), nil
}

func window(p query.Page, n int) (start, end int) {
	if p.Limit <= 0 {
		return 0, n
	}
	start = int(min(p.Skip(), int64(n)))
	end = int(min(int64(start)+p.Limit, int64(n)))
	return start, end
}
