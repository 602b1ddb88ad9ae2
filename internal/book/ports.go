package book

import (
	"context"

	"libraryql/internal/author"
)

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	List(ctx context.Context, q Query) ([]Book, error)
	Count(ctx context.Context) (int, error)
	CountByAuthor(ctx context.Context, authorID string) (int, error)
}

// AuthorResolver resolves author names to author records, creating them on
// demand. Implemented by the author service.
type AuthorResolver interface {
	GetOrCreate(ctx context.Context, name string) (author.Author, error)
	GetByName(ctx context.Context, name string) (author.Author, error)
}
