package book

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory book repository for development and testing.
type MemoryRepo struct {
	mu    sync.Mutex
	books []Book
}

var _ Repository = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.books = append(r.books, *b)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, q Query) ([]Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Book{}
	for _, b := range r.books {
		if q.Genre != "" && !slices.Contains(b.Genres, q.Genre) {
			continue
		}
		if q.AuthorID != "" && b.AuthorID != q.AuthorID {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.books), nil
}

func (r *MemoryRepo) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, b := range r.books {
		if b.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}
