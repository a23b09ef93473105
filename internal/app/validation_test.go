package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/app"
	"bookshelf/internal/domain/entities"
)

func validationFields(t *testing.T, err error) map[string]entities.FieldError {
	t.Helper()
	var verr *entities.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Fields
}

func adultBirthDate() time.Time {
	return time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func TestValidatorBook(t *testing.T) {
	v := app.NewValidator()
	owner := "0b8a3f3c-8c5e-4f39-9d7a-5a6b2e4c1d22"
	badOwner := "not-an-id"

	tests := []struct {
		name           string
		book           entities.Book
		expectedFields map[string]string
	}{
		{
			name: "valid book",
			book: entities.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "isbn-1", OwnerID: &owner},
		},
		{
			name:           "missing title",
			book:           entities.Book{Author: "Frank Herbert", ISBN: "isbn-1"},
			expectedFields: map[string]string{"title": app.KindRequired},
		},
		{
			name:           "missing author",
			book:           entities.Book{Title: "Dune", ISBN: "isbn-1"},
			expectedFields: map[string]string{"author": app.KindRequired},
		},
		{
			name:           "everything missing",
			book:           entities.Book{},
			expectedFields: map[string]string{"title": app.KindRequired, "author": app.KindRequired, "isbn": app.KindRequired},
		},
		{
			name:           "malformed owner",
			book:           entities.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "isbn-1", OwnerID: &badOwner},
			expectedFields: map[string]string{"owner": app.KindUUID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Book(&tt.book)
			if tt.expectedFields == nil {
				require.NoError(t, err)
				return
			}

			fields := validationFields(t, err)
			require.Len(t, fields, len(tt.expectedFields))
			for path, kind := range tt.expectedFields {
				assert.Equal(t, kind, fields[path].Kind)
				assert.Equal(t, path, fields[path].Path)
			}
		})
	}
}

func TestValidatorBook_RequiredMessage(t *testing.T) {
	err := app.NewValidator().Book(&entities.Book{Author: "A", ISBN: "i"})

	fields := validationFields(t, err)
	assert.Equal(t, "Path `title` is required.", fields["title"].Message)
}

func TestValidatorUser(t *testing.T) {
	v := app.NewValidator()
	short := "1234"
	empty := ""
	good := "12345"

	t.Run("valid user with password", func(t *testing.T) {
		user := &entities.User{Email: "ada@example.com", FullName: "Ada", BirthDate: adultBirthDate()}
		require.NoError(t, v.User(user, &good))
	})

	t.Run("password is optional on update", func(t *testing.T) {
		user := &entities.User{Email: "ada@example.com", FullName: "Ada", BirthDate: adultBirthDate()}
		require.NoError(t, v.User(user, nil))
	})

	t.Run("invalid email", func(t *testing.T) {
		user := &entities.User{Email: "not an email", FullName: "Ada", BirthDate: adultBirthDate()}
		fields := validationFields(t, v.User(user, nil))
		assert.Equal(t, app.KindRegexp, fields["email"].Kind)
		assert.Equal(t, "Path `email` is invalid (not an email).", fields["email"].Message)
	})

	t.Run("short password", func(t *testing.T) {
		user := &entities.User{Email: "ada@example.com", FullName: "Ada", BirthDate: adultBirthDate()}
		fields := validationFields(t, v.User(user, &short))
		assert.Equal(t, app.KindMinLength, fields["password"].Kind)
		assert.Equal(t, "Path `password` is shorter than the minimum allowed length (5).", fields["password"].Message)
	})

	t.Run("password length counts characters", func(t *testing.T) {
		user := &entities.User{Email: "ada@example.com", FullName: "Ada", BirthDate: adultBirthDate()}
		cyrillic := "пар"
		fields := validationFields(t, v.User(user, &cyrillic))
		assert.Equal(t, app.KindMinLength, fields["password"].Kind)

		fiveRunes := "парол"
		require.NoError(t, v.User(user, &fiveRunes))
	})

	t.Run("empty password", func(t *testing.T) {
		user := &entities.User{Email: "ada@example.com", FullName: "Ada", BirthDate: adultBirthDate()}
		fields := validationFields(t, v.User(user, &empty))
		assert.Equal(t, app.KindRequired, fields["password"].Kind)
	})

	t.Run("missing fields", func(t *testing.T) {
		fields := validationFields(t, v.User(&entities.User{}, &good))
		assert.Equal(t, app.KindRequired, fields["email"].Kind)
		assert.Equal(t, app.KindRequired, fields["fullName"].Kind)
		assert.Equal(t, app.KindRequired, fields["birthDate"].Kind)
		assert.NotContains(t, fields, "password")
	})
}

func TestValidatorUser_AgeBoundary(t *testing.T) {
	v := app.NewValidator()
	now := time.Now()

	tests := []struct {
		name      string
		birthDate time.Time
		valid     bool
	}{
		{name: "eighteen years and one day", birthDate: now.Add(-app.MinAge - 24*time.Hour), valid: true},
		{name: "one day short of eighteen", birthDate: now.Add(-app.MinAge + 24*time.Hour), valid: false},
		{name: "born yesterday", birthDate: now.Add(-24 * time.Hour), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &entities.User{Email: "ada@example.com", FullName: "Ada", BirthDate: tt.birthDate}
			err := v.User(user, nil)
			if tt.valid {
				require.NoError(t, err)
				return
			}
			fields := validationFields(t, err)
			assert.Equal(t, app.KindUserDefined, fields["birthDate"].Kind)
			assert.Contains(t, fields["birthDate"].Message, "Validator failed for path `birthDate`")
		})
	}
}
