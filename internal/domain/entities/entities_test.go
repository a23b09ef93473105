package entities_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/domain/entities"
)

func TestBookPatchApply(t *testing.T) {
	year := 1999
	book := entities.Book{Title: "Old", Author: "Author", ISBN: "isbn-1", PublishedYear: &year}

	newTitle := "New"
	entities.BookPatch{Title: &newTitle}.Apply(&book)

	assert.Equal(t, "New", book.Title)
	assert.Equal(t, "Author", book.Author)
	assert.Equal(t, "isbn-1", book.ISBN)
	require.NotNil(t, book.PublishedYear)
	assert.Equal(t, 1999, *book.PublishedYear)
}

func TestBookPatchApplyKeepsOptionalFieldsWhenAbsent(t *testing.T) {
	year := 1965
	owner := "5d1e7a3c-8b2f-4c6d-9e0a-1b2c3d4e5f60"
	book := entities.Book{Title: "Dune", PublishedYear: &year, OwnerID: &owner}

	genre := "Science fiction"
	entities.BookPatch{Genre: &genre}.Apply(&book)

	require.NotNil(t, book.PublishedYear)
	assert.Equal(t, 1965, *book.PublishedYear)
	require.NotNil(t, book.OwnerID)
	assert.Equal(t, owner, *book.OwnerID)
	assert.Equal(t, "Science fiction", book.Genre)
}

func TestValidationError(t *testing.T) {
	verr := entities.NewValidationError()
	assert.False(t, verr.HasErrors())

	verr.Add("title", "required", "Path `title` is required.")
	verr.Add("title", "minlength", "ignored")
	verr.Add("author", "required", "Path `author` is required.")

	require.True(t, verr.HasErrors())
	assert.Equal(t, "required", verr.Fields["title"].Kind)
	assert.Equal(t, "validation failed: author: Path `author` is required., title: Path `title` is required.", verr.Error())
}

func TestStatusErrorUnwrapping(t *testing.T) {
	err := fmt.Errorf("finding book: %w", entities.ErrBookNotFound)

	var statusErr *entities.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
	assert.Equal(t, "Book not found", statusErr.Message)
	assert.ErrorIs(t, err, entities.ErrBookNotFound)
	assert.NotErrorIs(t, err, entities.ErrUserNotFound)
}
