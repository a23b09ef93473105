package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "bookshelf/internal/adapters/http"
	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/config"
	"bookshelf/internal/domain/entities"
)

const (
	testSessionID = "0b8f3c52-1c1e-4d8e-9a55-2f4a7d9e6c10"
	testUserID    = "5d1e7a3c-8b2f-4c6d-9e0a-1b2c3d4e5f60"
	testBookID    = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

type testServer struct {
	app      *fiber.App
	books    *mockBookUseCase
	users    *mockUserUseCase
	sessions *mockSessionUseCase
	store    *mockPinger
}

func newTestServer(t *testing.T, opts ...func(*httpadapter.Dependencies)) *testServer {
	t.Helper()

	s := &testServer{
		books:    new(mockBookUseCase),
		users:    new(mockUserUseCase),
		sessions: new(mockSessionUseCase),
		store:    new(mockPinger),
	}

	deps := httpadapter.Dependencies{
		Books:    s.books,
		Users:    s.users,
		Sessions: s.sessions,
		Store:    s.store,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	s.app = httpadapter.NewApp(&config.HTTPConfig{
		BodyLimit:    1 << 20,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	httpadapter.SetupRouter(s.app, deps)

	t.Cleanup(func() {
		s.books.AssertExpectations(t)
		s.users.AssertExpectations(t)
		s.sessions.AssertExpectations(t)
		s.store.AssertExpectations(t)
	})
	return s
}

func testUser() *entities.User {
	return &entities.User{
		ID:           testUserID,
		Email:        "reader@example.com",
		PasswordHash: "$2a$10$hash",
		FullName:     "Jane Reader",
		BirthDate:    time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC),
		CreatedAt:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testBook() *entities.Book {
	year := 1965
	return &entities.Book{
		ID:            testBookID,
		Title:         "Dune",
		Author:        "Frank Herbert",
		PublishedYear: &year,
		ISBN:          "978-0441013593",
		CreatedAt:     time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
}

// authenticate настраивает успешную проверку cookie сессии.
func (s *testServer) authenticate() {
	s.sessions.On("Resolve", mock.Anything, testSessionID).
		Return(&entities.Session{ID: testSessionID, UserID: testUserID, User: testUser()}, nil)
}

type requestOption func(*http.Request)

func withSession(r *http.Request) {
	r.Header.Set(fiber.HeaderCookie, middleware.SessionCookie+"="+testSessionID)
}

func withHeader(key, value string) requestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

func (s *testServer) do(t *testing.T, method, path, body string, opts ...requestOption) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
