package author

import (
	"context"
)

// Repository defines the contract for author data storage.
type Repository interface {
	// GetOrCreate returns the author with the given name, inserting it
	// first if it does not exist. The lookup-or-insert must be atomic so
	// that concurrent calls for the same new name yield a single record.
	GetOrCreate(ctx context.Context, name string) (Author, error)
	GetByName(ctx context.Context, name string) (Author, error)
	GetByID(ctx context.Context, id string) (Author, error)
	UpdateBorn(ctx context.Context, name string, born int) (Author, error)
	All(ctx context.Context) ([]Author, error)
	Count(ctx context.Context) (int, error)
}

// BookCounter counts books referencing an author. Implemented by the book
// repository; declared here so the author service does not import it.
type BookCounter interface {
	CountByAuthor(ctx context.Context, authorID string) (int, error)
}
