// Package entities содержит доменные сущности сервиса и таксономию ошибок.
package entities

import (
	"time"
)

// Book представляет книгу каталога.
type Book struct {
	ID            string
	Title         string
	Author        string
	PublishedYear *int
	Genre         string
	Summary       string
	ISBN          string
	OwnerID       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookPatch содержит поля частичного обновления книги; nil означает "не передано".
type BookPatch struct {
	Title         *string
	Author        *string
	PublishedYear *int
	Genre         *string
	Summary       *string
	ISBN          *string
	OwnerID       *string
}

// Apply переносит переданные поля патча в книгу.
func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.PublishedYear != nil {
		year := *p.PublishedYear
		b.PublishedYear = &year
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.Summary != nil {
		b.Summary = *p.Summary
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.OwnerID != nil {
		owner := *p.OwnerID
		b.OwnerID = &owner
	}
}
