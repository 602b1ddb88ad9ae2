package graph

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryql/internal/auth"
	"libraryql/internal/author"
	"libraryql/internal/book"
	"libraryql/internal/notify"
	"libraryql/internal/user"
)

type fixture struct {
	schema  *graphql.Schema
	books   *book.Service
	authors *author.Service
	users   *user.Service
	auth    *auth.Service
	bus     *notify.Bus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	authorRepo := author.NewMemoryRepo()
	bookRepo := book.NewMemoryRepo()
	userRepo := user.NewMemoryRepo()
	bus := notify.NewBus()

	authorService := author.NewService(authorRepo, bookRepo)
	bookService := book.NewService(bookRepo, authorService, bus)
	userService := user.NewService(userRepo)
	authService := auth.NewService("test-secret", "secret", time.Hour, userService)

	resolver := NewResolver(bookService, authorService, userService, authService, bus)
	return &fixture{
		schema:  graphql.MustParseSchema(Schema, resolver),
		books:   bookService,
		authors: authorService,
		users:   userService,
		auth:    authService,
		bus:     bus,
	}
}

// authedCtx builds a request context the way the bearer middleware would.
func (f *fixture) authedCtx(t *testing.T) context.Context {
	t.Helper()
	ctx := context.Background()
	u, err := f.users.Create(ctx, "root", "refactoring")
	require.NoError(t, err)
	return auth.WithUser(ctx, u)
}

func (f *fixture) exec(t *testing.T, ctx context.Context, query string, vars map[string]any) map[string]any {
	t.Helper()
	resp := f.schema.Exec(ctx, query, "", vars)
	require.Empty(t, resp.Errors, "unexpected GraphQL errors: %v", resp.Errors)
	var data map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

func (f *fixture) seedBooks(t *testing.T, ctx context.Context) {
	t.Helper()
	for _, in := range []book.AddInput{
		{Title: "Crime and punishment", Published: 1866, Author: "Fyodor Dostoevsky", Genres: []string{"classic", "crime"}},
		{Title: "The Demon", Published: 1872, Author: "Fyodor Dostoevsky", Genres: []string{"classic", "revolution"}},
		{Title: "Clean Code", Published: 2008, Author: "Robert Martin", Genres: []string{"refactoring"}},
	} {
		_, err := f.books.Add(ctx, in)
		require.NoError(t, err)
	}
}

func TestQuery_Counts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedBooks(t, ctx)

	data := f.exec(t, ctx, `{ bookCount authorCount }`, nil)
	assert.Equal(t, float64(3), data["bookCount"])
	assert.Equal(t, float64(2), data["authorCount"])
}

func TestQuery_AllBooks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedBooks(t, ctx)

	const query = `
	query($author: String, $genre: String) {
		allBooks(author: $author, genre: $genre) {
			title
			published
			genres
			author { name }
		}
	}`

	t.Run("genre filter", func(t *testing.T) {
		data := f.exec(t, ctx, query, map[string]any{"genre": "crime"})
		books := data["allBooks"].([]any)
		require.Len(t, books, 1)
		b := books[0].(map[string]any)
		assert.Equal(t, "Crime and punishment", b["title"])
		assert.Equal(t, float64(1866), b["published"])
		assert.Equal(t, []any{"classic", "crime"}, b["genres"])
		assert.Equal(t, "Fyodor Dostoevsky", b["author"].(map[string]any)["name"])
	})

	t.Run("genre with no matches", func(t *testing.T) {
		data := f.exec(t, ctx, query, map[string]any{"genre": "design"})
		assert.Empty(t, data["allBooks"])
	})

	t.Run("author filter", func(t *testing.T) {
		data := f.exec(t, ctx, query, map[string]any{"author": "Fyodor Dostoevsky"})
		assert.Len(t, data["allBooks"].([]any), 2)
	})

	t.Run("no filters", func(t *testing.T) {
		data := f.exec(t, ctx, query, nil)
		assert.Len(t, data["allBooks"].([]any), 3)
	})
}

func TestQuery_AllAuthors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedBooks(t, ctx)

	data := f.exec(t, ctx, `{ allAuthors { name born bookCount } }`, nil)
	authors := data["allAuthors"].([]any)
	require.Len(t, authors, 2)

	counts := map[string]float64{}
	for _, raw := range authors {
		a := raw.(map[string]any)
		assert.Nil(t, a["born"], "created-on-demand authors have no birth year")
		counts[a["name"].(string)] = a["bookCount"].(float64)
	}
	assert.Equal(t, float64(2), counts["Fyodor Dostoevsky"])
	assert.Equal(t, float64(1), counts["Robert Martin"])
}

func TestQuery_Me(t *testing.T) {
	f := newFixture(t)

	t.Run("anonymous", func(t *testing.T) {
		data := f.exec(t, context.Background(), `{ me { username } }`, nil)
		assert.Nil(t, data["me"])
	})

	t.Run("authenticated", func(t *testing.T) {
		ctx := f.authedCtx(t)
		data := f.exec(t, ctx, `{ me { username favoriteGenre } }`, nil)
		me := data["me"].(map[string]any)
		assert.Equal(t, "root", me["username"])
		assert.Equal(t, "refactoring", me["favoriteGenre"])
	})
}

const addBookMutation = `
mutation($title: String!, $published: Int!, $author: String, $genres: [String!]) {
	addBook(title: $title, published: $published, author: $author, genres: $genres) {
		title
		author { name bookCount born }
	}
}`

func TestMutation_AddBook(t *testing.T) {
	f := newFixture(t)
	ctx := f.authedCtx(t)

	data := f.exec(t, ctx, addBookMutation, map[string]any{
		"title":     "Refactoring, edition 2",
		"published": 2018,
		"author":    "Martin Fowler",
		"genres":    []any{"refactoring"},
	})

	added := data["addBook"].(map[string]any)
	assert.Equal(t, "Refactoring, edition 2", added["title"])

	a := added["author"].(map[string]any)
	assert.Equal(t, "Martin Fowler", a["name"])
	assert.Equal(t, float64(1), a["bookCount"], "new author starts with one book")
	assert.Nil(t, a["born"])
}

func TestMutation_AddBook_RequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp := f.schema.Exec(ctx, addBookMutation, "", map[string]any{
		"title":     "Clean Code",
		"published": 2008,
		"author":    "Robert Martin",
	})

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions["code"])

	n, err := f.books.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "no records created")
	an, err := f.authors.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, an, "no records created")
}

func TestMutation_AddBook_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := f.authedCtx(t)

	resp := f.schema.Exec(ctx, addBookMutation, "", map[string]any{
		"title":     "Orphaned",
		"published": 2001,
	})

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "BAD_USER_INPUT", resp.Errors[0].Extensions["code"])
	invalidArgs := resp.Errors[0].Extensions["invalidArgs"].(map[string]any)
	assert.Equal(t, "Orphaned", invalidArgs["title"])
}

const editAuthorMutation = `
mutation($name: String!, $born: Int!) {
	editAuthor(name: $name, setBornTo: $born) {
		name
		born
	}
}`

func TestMutation_EditAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := f.authedCtx(t)
	f.seedBooks(t, ctx)

	t.Run("sets birth year", func(t *testing.T) {
		data := f.exec(t, ctx, editAuthorMutation, map[string]any{
			"name": "Fyodor Dostoevsky",
			"born": 1821,
		})
		edited := data["editAuthor"].(map[string]any)
		assert.Equal(t, "Fyodor Dostoevsky", edited["name"])
		assert.Equal(t, float64(1821), edited["born"])
	})

	t.Run("unknown author is a null result, not an error", func(t *testing.T) {
		data := f.exec(t, ctx, editAuthorMutation, map[string]any{
			"name": "Nobody",
			"born": 1900,
		})
		assert.Nil(t, data["editAuthor"])
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp := f.schema.Exec(context.Background(), editAuthorMutation, "", map[string]any{
			"name": "Fyodor Dostoevsky",
			"born": 1821,
		})
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions["code"])
	})
}

func TestMutation_CreateUserAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	data := f.exec(t, ctx, `
	mutation {
		createUser(username: "reader", password: "ignored", favoriteGenre: "crime") {
			username
			favoriteGenre
		}
	}`, nil)
	created := data["createUser"].(map[string]any)
	assert.Equal(t, "reader", created["username"])
	assert.Equal(t, "crime", created["favoriteGenre"])

	const loginMutation = `
	mutation($username: String!, $password: String!) {
		login(username: $username, password: $password) { value }
	}`

	t.Run("login with fixed credential", func(t *testing.T) {
		data := f.exec(t, ctx, loginMutation, map[string]any{
			"username": "reader",
			"password": "secret",
		})
		token := data["login"].(map[string]any)["value"].(string)
		require.NotEmpty(t, token)

		// Round-trip the token the way the bearer middleware would.
		u, err := f.auth.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "reader", u.Username)

		meData := f.exec(t, auth.WithUser(ctx, u), `{ me { username } }`, nil)
		assert.Equal(t, "reader", meData["me"].(map[string]any)["username"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := f.schema.Exec(ctx, loginMutation, "", map[string]any{
			"username": "reader",
			"password": "hunter2",
		})
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Errors[0].Extensions["code"])
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := f.schema.Exec(ctx, loginMutation, "", map[string]any{
			"username": "nobody",
			"password": "secret",
		})
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Errors[0].Extensions["code"])
	})

	t.Run("duplicate username", func(t *testing.T) {
		resp := f.schema.Exec(ctx, `
		mutation {
			createUser(username: "reader", password: "x", favoriteGenre: "crime") { id }
		}`, "", nil)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "BAD_USER_INPUT", resp.Errors[0].Extensions["code"])
	})
}

func TestSubscription_BookAdded(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := f.schema.Subscribe(ctx, `
	subscription {
		bookAdded {
			title
			author { name }
		}
	}`, "", nil)
	require.NoError(t, err)

	_, err = f.books.Add(ctx, book.AddInput{
		Title:     "The Demon",
		Published: 1872,
		Author:    "Fyodor Dostoevsky",
		Genres:    []string{"classic", "revolution"},
	})
	require.NoError(t, err)

	select {
	case raw := <-events:
		resp, ok := raw.(*graphql.Response)
		require.True(t, ok)
		require.Empty(t, resp.Errors)
		var data map[string]any
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		added := data["bookAdded"].(map[string]any)
		assert.Equal(t, "The Demon", added["title"])
		assert.Equal(t, "Fyodor Dostoevsky", added["author"].(map[string]any)["name"])
	case <-time.After(2 * time.Second):
		t.Fatal("no subscription event received")
	}
}
