package author

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Service provides author-related business logic.
type Service struct {
	repo   Repository
	counts BookCounter
}

// NewService creates a new author service.
func NewService(repo Repository, counts BookCounter) *Service {
	return &Service{repo: repo, counts: counts}
}

// GetOrCreate resolves an author by name, creating it if absent.
func (s *Service) GetOrCreate(ctx context.Context, name string) (Author, error) {
	return s.repo.GetOrCreate(ctx, name)
}

// GetByName returns the author with the given name.
func (s *Service) GetByName(ctx context.Context, name string) (Author, error) {
	return s.repo.GetByName(ctx, name)
}

// GetByID returns the author with the given id.
func (s *Service) GetByID(ctx context.Context, id string) (Author, error) {
	return s.repo.GetByID(ctx, id)
}

// Count returns the number of author records.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// BookCount returns the number of books referencing the given author.
func (s *Service) BookCount(ctx context.Context, authorID string) (int, error) {
	return s.counts.CountByAuthor(ctx, authorID)
}

// EditBorn sets the birth year of the named author. Returns ErrNotFound
// without writing when no author has that name.
func (s *Service) EditBorn(ctx context.Context, name string, born int) (Author, error) {
	return s.repo.UpdateBorn(ctx, name, born)
}

// All returns every author with BookCount filled in. The counts are issued
// as one query per author, all in flight at once, and the result is not
// returned until every count has completed.
func (s *Service) All(ctx context.Context) ([]Author, error) {
	authors, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range authors {
		i := i
		g.Go(func() error {
			n, err := s.counts.CountByAuthor(gctx, authors[i].ID)
			if err != nil {
				return err
			}
			authors[i].BookCount = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return authors, nil
}
