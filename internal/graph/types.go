package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"libraryql/internal/author"
	"libraryql/internal/book"
	"libraryql/internal/user"
)

// AuthorResolver resolves the Author type. bookCount is never read from
// storage: it is either precomputed by the author service (allAuthors) or
// counted on demand.
type AuthorResolver struct {
	authors *author.Service
	a       author.Author
	counted bool
}

func (r *AuthorResolver) Name() string {
	return r.a.Name
}

func (r *AuthorResolver) ID() graphql.ID {
	return graphql.ID(r.a.ID)
}

func (r *AuthorResolver) Born() *int32 {
	if r.a.Born == nil {
		return nil
	}
	b := int32(*r.a.Born)
	return &b
}

func (r *AuthorResolver) BookCount(ctx context.Context) (int32, error) {
	if r.counted {
		return int32(r.a.BookCount), nil
	}
	n, err := r.authors.BookCount(ctx, r.a.ID)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

// BookResolver resolves the Book type, loading the referenced author record
// when the author field is selected.
type BookResolver struct {
	authors *author.Service
	b       book.Book
}

func (r *BookResolver) Title() string {
	return r.b.Title
}

func (r *BookResolver) Published() int32 {
	return int32(r.b.Published)
}

func (r *BookResolver) ID() graphql.ID {
	return graphql.ID(r.b.ID)
}

func (r *BookResolver) Genres() []string {
	if r.b.Genres == nil {
		return []string{}
	}
	return r.b.Genres
}

func (r *BookResolver) Author(ctx context.Context) (*AuthorResolver, error) {
	a, err := r.authors.GetByID(ctx, r.b.AuthorID)
	if err != nil {
		return nil, err
	}
	return &AuthorResolver{authors: r.authors, a: a}, nil
}

// UserResolver resolves the User type.
type UserResolver struct {
	u user.User
}

func (r *UserResolver) Username() string {
	return r.u.Username
}

func (r *UserResolver) FavoriteGenre() string {
	return r.u.FavoriteGenre
}

func (r *UserResolver) ID() graphql.ID {
	return graphql.ID(r.u.ID)
}

// TokenResolver resolves the Token type.
type TokenResolver struct {
	value string
}

func (r *TokenResolver) Value() string {
	return r.value
}
