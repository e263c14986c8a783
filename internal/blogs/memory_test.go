package blogs

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/mongo"
)

type memoryRepo struct {
	mu        sync.Mutex
	items     map[string]Blog
	failViews bool
}

func newMemoryRepo(items ...Blog) *memoryRepo {
	r := &memoryRepo{items: map[string]Blog{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *memoryRepo) Create(ctx context.Context, item Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.Slug == item.Slug {
			return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}
		}
	}
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) Replace(ctx context.Context, item Blog) error {
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

func (r *memoryRepo) GetByID(ctx context.Context, id string) (Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return Blog{}, mongo.ErrNoDocuments
	}
	return it, nil
}

func (r *memoryRepo) GetBySlug(ctx context.Context, slug string) (Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.Slug == slug {
			return it, nil
		}
	}
	return Blog{}, mongo.ErrNoDocuments
}

func (r *memoryRepo) matching(filter ListFilter) []Blog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Blog, 0, len(r.items))
	for _, it := range r.items {
		if filter.VisibleOnly && !it.Visible() {
			continue
		}
		if filter.Status != "" && !filter.VisibleOnly && it.Status != filter.Status {
			continue
		}
		if filter.Featured && !it.IsFeatured {
			continue
		}
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !contains(it.Title+" "+it.Excerpt+" "+it.Content+" "+strings.Join(it.Tags, " "), filter.Search) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memoryRepo) List(ctx context.Context, filter ListFilter) ([]Blog, error) {
	all := r.matching(filter)
	start, end := window(filter.Page, len(all))
	return all[start:end], nil
}

func (r *memoryRepo) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *memoryRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failViews {
		return errors.New("write conflict")
	}
	it := r.items[id]
	it.Views++
	r.items[id] = it
	return nil
}

func (r *memoryRepo) IncrementLikes(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	it.Likes++
	r.items[id] = it
	return it.Likes, nil
}

func (r *memoryRepo) AddComment(ctx context.Context, id string, c Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	it.Comments = append(it.Comments, c)
	r.items[id] = it
	return nil
}

func (r *memoryRepo) ApproveComment(ctx context.Context, id, commentID string, now time.Time) (Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return Blog{}, mongo.ErrNoDocuments
	}
	for i := range it.Comments {
		if it.Comments[i].ID == commentID {
			it.Comments[i].IsApproved = true
			it.UpdatedAt = now
			r.items[id] = it
			return it, nil
		}
	}
	return Blog{}, mongo.ErrNoDocuments
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
