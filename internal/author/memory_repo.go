package author

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory author repository for development and testing.
type MemoryRepo struct {
	mu      sync.Mutex
	authors []Author
}

var _ Repository = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// GetOrCreate holds the lock across lookup and insert, so the same new name
// can never be created twice.
func (r *MemoryRepo) GetOrCreate(ctx context.Context, name string) (Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.authors {
		if a.Name == name {
			return a, nil
		}
	}

	now := time.Now().UTC()
	a := Author{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.authors = append(r.authors, a)
	return a, nil
}

func (r *MemoryRepo) GetByName(ctx context.Context, name string) (Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.authors {
		if a.Name == name {
			return a, nil
		}
	}
	return Author{}, ErrNotFound
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.authors {
		if a.ID == id {
			return a, nil
		}
	}
	return Author{}, ErrNotFound
}

func (r *MemoryRepo) UpdateBorn(ctx context.Context, name string, born int) (Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.authors {
		if r.authors[i].Name == name {
			b := born
			r.authors[i].Born = &b
			r.authors[i].UpdatedAt = time.Now().UTC()
			return r.authors[i], nil
		}
	}
	return Author{}, ErrNotFound
}

func (r *MemoryRepo) All(ctx context.Context) ([]Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Author, len(r.authors))
	copy(out, r.authors)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.authors), nil
}
