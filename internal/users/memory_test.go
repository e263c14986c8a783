package users

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
	items map[string]User
}

func newMemoryRepo(items ...User) *memoryRepo {
	r := &memoryRepo{items: map[string]User{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func duplicate() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
}

func (r *memoryRepo) emailTaken(email, except string) bool {
	for _, it := range r.items {
		if it.Email == email && it.ID != except {
			return true
		}
	}
	return false
}

func (r *memoryRepo) Create(ctx context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(user.Email, "") {
		return duplicate()
	}
	r.items[user.ID] = user
	return nil
}

func (r *memoryRepo) Replace(ctx context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[user.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	if r.emailTaken(user.Email, user.ID) {
		return duplicate()
	}
	r.items[user.ID] = user
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	delete(r.items, id)
	return ok, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return User{}, mongo.ErrNoDocuments
	}
	return it, nil
}

func (r *memoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.Email == email {
			return it, nil
		}
	}
	return User{}, mongo.ErrNoDocuments
}

func (r *memoryRepo) matching(f ListFilter) []User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]User, 0, len(r.items))
	for _, it := range r.items {
		if f.Role != "" && it.Role != f.Role {
			continue
		}
		if f.Active != nil && it.IsActive != *f.Active {
			continue
		}
		if f.Search != "" && !contains(it.Name+" "+it.Email, f.Search) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memoryRepo) List(ctx context.Context, f ListFilter) ([]User, error) {
	all := r.matching(f)
	start, end := window(f.Page, len(all))
	return all[start:end], nil
}

func (r *memoryRepo) Count(ctx context.Context, f ListFilter) (int64, error) {
	return int64(len(r.matching(f))), nil
}

func (r *memoryRepo) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	it.LastLogin = &at
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
