package book

import (
	"time"
)

// Book represents a book entity. AuthorID references exactly one author.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Published int       `json:"published"`
	AuthorID  string    `json:"author_id"`
	Genres    []string  `json:"genres"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Query defines filters for listing books. Zero values mean "no filter".
type Query struct {
	AuthorID string
	Genre    string
}

// AddInput carries the arguments of an add request.
type AddInput struct {
	Title     string
	Published int
	Author    string
	Genres    []string
}
