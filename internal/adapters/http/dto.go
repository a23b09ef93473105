package http

import (
	"fmt"
	"strings"
	"time"

	"bookshelf/internal/domain/entities"
)

const dateLayout = "2006-01-02"

// BookRequest - тело запросов создания и изменения книги.
type BookRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedYear *int    `json:"publishedYear"`
	Genre         *string `json:"genre"`
	Summary       *string `json:"summary"`
	ISBN          *string `json:"isbn"`
	Owner         *string `json:"owner"`
}

// BookResponse - представление книги в ответах.
type BookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear *int      `json:"publishedYear,omitempty"`
	Genre         string    `json:"genre,omitempty"`
	Summary       string    `json:"summary,omitempty"`
	ISBN          string    `json:"isbn"`
	Owner         *string   `json:"owner,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UserRequest - тело запросов регистрации и изменения пользователя.
type UserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FullName  *string `json:"fullName"`
	Bio       *string `json:"bio"`
	BirthDate *string `json:"birthDate"`
}

// UserResponse - представление пользователя без пароля.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Bio       string    `json:"bio,omitempty"`
	BirthDate string    `json:"birthDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserDetailResponse - пользователь вместе со своими книгами.
type UserDetailResponse struct {
	UserResponse
	Books []BookResponse `json:"books"`
}

// LoginRequest - тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *BookRequest) toBook() *entities.Book {
	book := &entities.Book{
		PublishedYear: r.PublishedYear,
		OwnerID:       r.Owner,
	}
	book.Title = deref(r.Title)
	book.Author = deref(r.Author)
	book.Genre = deref(r.Genre)
	book.Summary = deref(r.Summary)
	book.ISBN = deref(r.ISBN)
	return book
}

func (r *BookRequest) toPatch() entities.BookPatch {
	return entities.BookPatch{
		Title:         r.Title,
		Author:        r.Author,
		PublishedYear: r.PublishedYear,
		Genre:         r.Genre,
		Summary:       r.Summary,
		ISBN:          r.ISBN,
		OwnerID:       r.Owner,
	}
}

func (r *UserRequest) toNewUser() (entities.NewUser, error) {
	birthDate, err := parseBirthDate(r.BirthDate)
	if err != nil {
		return entities.NewUser{}, err
	}
	return entities.NewUser{
		Email:     deref(r.Email),
		Password:  deref(r.Password),
		FullName:  deref(r.FullName),
		Bio:       deref(r.Bio),
		BirthDate: birthDate,
	}, nil
}

func (r *UserRequest) toPatch() (entities.UserPatch, error) {
	birthDate, err := parseBirthDate(r.BirthDate)
	if err != nil {
		return entities.UserPatch{}, err
	}
	return entities.UserPatch{
		Email:     r.Email,
		Password:  r.Password,
		FullName:  r.FullName,
		Bio:       r.Bio,
		BirthDate: birthDate,
	}, nil
}

// parseBirthDate принимает дату в формате YYYY-MM-DD или RFC3339.
func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}

	verr := entities.NewValidationError()
	verr.Add("birthDate", "date", fmt.Sprintf("Cast to date failed for value %q at path \"birthDate\"", *raw))
	return nil, verr
}

func newBookResponse(book *entities.Book) BookResponse {
	return BookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		PublishedYear: book.PublishedYear,
		Genre:         book.Genre,
		Summary:       book.Summary,
		ISBN:          book.ISBN,
		Owner:         book.OwnerID,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
}

func newBookResponses(books []entities.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, newBookResponse(&books[i]))
	}
	return out
}

func newUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Bio:       user.Bio,
		BirthDate: user.BirthDate.UTC().Format(dateLayout),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func newUserResponses(users []entities.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return out
}

func newUserDetailResponse(user *entities.UserWithBooks) UserDetailResponse {
	return UserDetailResponse{
		UserResponse: newUserResponse(&user.User),
		Books:        newBookResponses(user.Books),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
