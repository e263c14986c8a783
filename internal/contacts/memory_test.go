package contacts

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/mongo"
)

type memoryRepo struct {
	mu      sync.Mutex
	items   map[string]Contact
	failAll bool
}

func newMemoryRepo(items ...Contact) *memoryRepo {
	r := &memoryRepo{items: map[string]Contact{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

var errStore = errors.New("connection reset by peer")

func (r *memoryRepo) Create(ctx context.Context, item Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errStore
	}
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) Replace(ctx context.Context, item Contact) error {
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

func (r *memoryRepo) GetByID(ctx context.Context, id string) (Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return Contact{}, mongo.ErrNoDocuments
	}
	return it, nil
}

func (r *memoryRepo) matching(f ListFilter) []Contact {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Contact, 0, len(r.items))
	for _, it := range r.items {
		if f.Status != "" && it.Status != f.Status {
			continue
		}
		if f.Priority != "" && it.Priority != f.Priority {
			continue
		}
		if f.Spam != nil && it.IsSpam != *f.Spam {
			continue
		}
		if f.Search != "" && !contains(it.Name+" "+it.Email+" "+it.Company+" "+it.Message, f.Search) {
			continue
		}
		if !f.From.IsZero() && it.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && it.CreatedAt.After(f.To) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memoryRepo) List(ctx context.Context, f ListFilter) ([]Contact, error) {
	if r.failAll {
		return nil, errStore
	}
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

func contains(haystack, term string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(term)))
}
