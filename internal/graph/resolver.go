package graph

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"libraryql/internal/auth"
	"libraryql/internal/author"
	"libraryql/internal/book"
	"libraryql/internal/notify"
	"libraryql/internal/user"
)

// Resolver is the root resolver. All collaborators are injected so tests
// can run it against in-memory stores and an in-process notifier.
type Resolver struct {
	books    *book.Service
	authors  *author.Service
	users    *user.Service
	auth     *auth.Service
	notifier notify.Notifier
}

func NewResolver(books *book.Service, authors *author.Service, users *user.Service, authSvc *auth.Service, notifier notify.Notifier) *Resolver {
	return &Resolver{
		books:    books,
		authors:  authors,
		users:    users,
		auth:     authSvc,
		notifier: notifier,
	}
}

func (r *Resolver) BookCount(ctx context.Context) (int32, error) {
	n, err := r.books.Count(ctx)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

func (r *Resolver) AuthorCount(ctx context.Context) (int32, error) {
	n, err := r.authors.Count(ctx)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

func (r *Resolver) AllBooks(ctx context.Context, args struct {
	Author *string
	Genre  *string
}) ([]*BookResolver, error) {
	var authorName, genre string
	if args.Author != nil {
		authorName = *args.Author
	}
	if args.Genre != nil {
		genre = *args.Genre
	}

	books, err := r.books.List(ctx, authorName, genre)
	if err != nil {
		return nil, err
	}

	out := make([]*BookResolver, 0, len(books))
	for _, b := range books {
		out = append(out, &BookResolver{authors: r.authors, b: b})
	}
	return out, nil
}

func (r *Resolver) AllAuthors(ctx context.Context) ([]*AuthorResolver, error) {
	authors, err := r.authors.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*AuthorResolver, 0, len(authors))
	for _, a := range authors {
		out = append(out, &AuthorResolver{authors: r.authors, a: a, counted: true})
	}
	return out, nil
}

func (r *Resolver) Me(ctx context.Context) *UserResolver {
	u, ok := auth.UserFrom(ctx)
	if !ok {
		return nil
	}
	return &UserResolver{u: u}
}

func (r *Resolver) AddBook(ctx context.Context, args struct {
	Title     string
	Published int32
	Author    *string
	Genres    *[]string
}) (*BookResolver, error) {
	if _, ok := auth.UserFrom(ctx); !ok {
		return nil, errUnauthenticated()
	}

	in := addBookInput{
		Title:     args.Title,
		Published: int(args.Published),
	}
	if args.Author != nil {
		in.Author = *args.Author
	}
	if args.Genres != nil {
		in.Genres = *args.Genres
	}

	invalidArgs := map[string]any{
		"title":     in.Title,
		"published": in.Published,
		"author":    in.Author,
		"genres":    in.Genres,
	}
	if msgs := validateStruct(in); msgs != nil {
		return nil, errBadUserInput(strings.Join(msgs, "; "), invalidArgs)
	}

	b, err := r.books.Add(ctx, book.AddInput{
		Title:     in.Title,
		Published: in.Published,
		Author:    in.Author,
		Genres:    in.Genres,
	})
	if err != nil {
		return nil, errBadUserInput(err.Error(), invalidArgs)
	}
	return &BookResolver{authors: r.authors, b: b}, nil
}

func (r *Resolver) EditAuthor(ctx context.Context, args struct {
	Name      string
	SetBornTo int32
}) (*AuthorResolver, error) {
	if _, ok := auth.UserFrom(ctx); !ok {
		return nil, errUnauthenticated()
	}

	a, err := r.authors.EditBorn(ctx, args.Name, int(args.SetBornTo))
	if err != nil {
		if errors.Is(err, author.ErrNotFound) {
			// Absent edit target is a null result, not an error.
			return nil, nil
		}
		return nil, errBadUserInput(err.Error(), map[string]any{
			"name":      args.Name,
			"setBornTo": args.SetBornTo,
		})
	}
	return &AuthorResolver{authors: r.authors, a: a}, nil
}

func (r *Resolver) CreateUser(ctx context.Context, args struct {
	Username      string
	Password      string
	FavoriteGenre string
}) (*UserResolver, error) {
	in := createUserInput{
		Username:      args.Username,
		Password:      args.Password,
		FavoriteGenre: args.FavoriteGenre,
	}
	invalidArgs := map[string]any{
		"username":      args.Username,
		"favoriteGenre": args.FavoriteGenre,
	}
	if msgs := validateStruct(in); msgs != nil {
		return nil, errBadUserInput(strings.Join(msgs, "; "), invalidArgs)
	}

	// The password is accepted but never stored: authentication uses the
	// fixed credential value.
	u, err := r.users.Create(ctx, args.Username, args.FavoriteGenre)
	if err != nil {
		return nil, errBadUserInput(err.Error(), invalidArgs)
	}
	return &UserResolver{u: u}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct {
	Username string
	Password string
}) (*TokenResolver, error) {
	token, err := r.auth.Login(ctx, args.Username, args.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	return &TokenResolver{value: token}, nil
}

// BookAdded streams every book published after the subscription starts.
func (r *Resolver) BookAdded(ctx context.Context) (<-chan *BookResolver, error) {
	events, err := r.notifier.Subscribe(ctx, notify.TopicBookAdded)
	if err != nil {
		return nil, err
	}

	out := make(chan *BookResolver)
	go func() {
		defer close(out)
		for payload := range events {
			var b book.Book
			if err := json.Unmarshal(payload, &b); err != nil {
				log.Printf("decode book added event: %v", err)
				continue
			}
			select {
			case out <- &BookResolver{authors: r.authors, b: b}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
