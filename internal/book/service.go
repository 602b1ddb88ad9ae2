package book

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"libraryql/internal/author"
	"libraryql/internal/notify"
)

// Service provides book-related business logic.
type Service struct {
	repo     Repository
	authors  AuthorResolver
	notifier notify.Notifier
}

// NewService creates a new book service.
func NewService(repo Repository, authors AuthorResolver, notifier notify.Notifier) *Service {
	return &Service{repo: repo, authors: authors, notifier: notifier}
}

// Add resolves or creates the author, inserts the book, and announces it on
// the book-added topic. The author is persisted before the book, so a failed
// book insert can leave the author behind without a compensating delete.
func (s *Service) Add(ctx context.Context, in AddInput) (Book, error) {
	a, err := s.authors.GetOrCreate(ctx, in.Author)
	if err != nil {
		return Book{}, err
	}

	genres := in.Genres
	if genres == nil {
		genres = []string{}
	}

	b := Book{
		Title:     in.Title,
		Published: in.Published,
		AuthorID:  a.ID,
		Genres:    genres,
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}

	payload, err := json.Marshal(b)
	if err != nil {
		return Book{}, err
	}
	if err := s.notifier.Publish(ctx, notify.TopicBookAdded, payload); err != nil {
		// The book is already persisted; a failed announcement is logged,
		// not surfaced.
		log.Printf("publish book added: book_id=%s err=%v", b.ID, err)
	}
	return b, nil
}

// List returns books matching the given filters. The genre filter matches
// exact membership in a book's genre list; the author filter matches the
// resolved author name and yields an empty list for an unknown author.
func (s *Service) List(ctx context.Context, authorName, genre string) ([]Book, error) {
	q := Query{Genre: genre}
	if authorName != "" {
		a, err := s.authors.GetByName(ctx, authorName)
		if err != nil {
			if errors.Is(err, author.ErrNotFound) {
				return []Book{}, nil
			}
			return nil, err
		}
		q.AuthorID = a.ID
	}
	return s.repo.List(ctx, q)
}

// Count returns the number of book records.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
