package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/app"
	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/api"
)

const testSessionID = "c4a9e1f2-7d3b-4b8e-a2c6-9e0f1d2b3c33"

var errCacheDown = errors.New("redis down")

type sessionMocks struct {
	sessions *mockSessionRepository
	users    *mockUserRepository
	pwd      *mockPasswordService
	cache    *mockSessionCache
}

func newSessionUseCase(withCache bool) (api.SessionUseCase, *sessionMocks) {
	m := &sessionMocks{
		sessions: new(mockSessionRepository),
		users:    new(mockUserRepository),
		pwd:      new(mockPasswordService),
	}
	if withCache {
		m.cache = new(mockSessionCache)
		return app.NewSessionUseCase(m.sessions, m.users, m.pwd, m.cache), m
	}
	return app.NewSessionUseCase(m.sessions, m.users, m.pwd, nil), m
}

func TestSessionUseCase_Login(t *testing.T) {
	session := &entities.Session{ID: testSessionID, UserID: testUserID, CreatedAt: time.Now()}

	tests := []struct {
		name        string
		email       string
		password    string
		setupMocks  func(m *sessionMocks)
		expectedErr error
	}{
		{
			name:     "success - session created",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(m *sessionMocks) {
				m.users.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(), nil).Once()
				m.pwd.On("Verify", mock.Anything, testPassword, testPasswordHash).Return(true, nil).Once()
				m.sessions.On("Create", mock.Anything, testUserID).Return(session, nil).Once()
			},
		},
		{
			name:        "error - missing password",
			email:       testEmail,
			setupMocks:  func(_ *sessionMocks) {},
			expectedErr: entities.ErrMissingCredentials,
		},
		{
			name:        "error - missing email",
			password:    testPassword,
			setupMocks:  func(_ *sessionMocks) {},
			expectedErr: entities.ErrMissingCredentials,
		},
		{
			name:     "error - unknown email",
			email:    "nobody@example.com",
			password: testPassword,
			setupMocks: func(m *sessionMocks) {
				m.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr: entities.ErrUnauthorized,
		},
		{
			name:     "error - wrong password",
			email:    testEmail,
			password: "wrong-password",
			setupMocks: func(m *sessionMocks) {
				m.users.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(), nil).Once()
				m.pwd.On("Verify", mock.Anything, "wrong-password", testPasswordHash).Return(false, nil).Once()
			},
			expectedErr: entities.ErrUnauthorized,
		},
		{
			name:     "error - store failure",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(m *sessionMocks) {
				m.users.On("FindByEmail", mock.Anything, testEmail).Return(nil, errDatabase).Once()
			},
			expectedErr: errDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m := newSessionUseCase(false)
			tt.setupMocks(m)

			result, err := uc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testSessionID, result.ID)
				require.NotNil(t, result.User)
				assert.Equal(t, testEmail, result.User.Email)
			}
			m.users.AssertExpectations(t)
			m.pwd.AssertExpectations(t)
			m.sessions.AssertExpectations(t)
		})
	}
}

func TestSessionUseCase_LoginFailuresAreIndistinguishable(t *testing.T) {
	uc, m := newSessionUseCase(false)
	m.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, entities.ErrUserNotFound).Once()
	m.users.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(), nil).Once()
	m.pwd.On("Verify", mock.Anything, "wrong", testPasswordHash).Return(false, nil).Once()

	_, unknownErr := uc.Login(context.Background(), "nobody@example.com", "wrong")
	_, wrongErr := uc.Login(context.Background(), testEmail, "wrong")

	assert.Equal(t, unknownErr, wrongErr)
}

func TestSessionUseCase_LoginCachesSession(t *testing.T) {
	uc, m := newSessionUseCase(true)
	session := &entities.Session{ID: testSessionID, UserID: testUserID}

	m.users.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(), nil).Once()
	m.pwd.On("Verify", mock.Anything, testPassword, testPasswordHash).Return(true, nil).Once()
	m.sessions.On("Create", mock.Anything, testUserID).Return(session, nil).Once()
	m.cache.On("Set", mock.Anything, session).Return(errCacheDown).Once()

	_, err := uc.Login(context.Background(), testEmail, testPassword)

	require.NoError(t, err, "cache failures never fail a login")
	m.cache.AssertExpectations(t)
}

func TestSessionUseCase_Resolve(t *testing.T) {
	t.Run("store lookup without cache", func(t *testing.T) {
		uc, m := newSessionUseCase(false)
		session := &entities.Session{ID: testSessionID, UserID: testUserID, User: storedUser()}
		m.sessions.On("FindByID", mock.Anything, testSessionID).Return(session, nil).Once()

		result, err := uc.Resolve(context.Background(), testSessionID)

		require.NoError(t, err)
		assert.Equal(t, testEmail, result.User.Email)
	})

	for _, storeErr := range []error{entities.ErrSessionNotFound, entities.ErrMalformedID} {
		t.Run("unresolvable cookie: "+storeErr.Error(), func(t *testing.T) {
			uc, m := newSessionUseCase(false)
			m.sessions.On("FindByID", mock.Anything, "whatever").Return(nil, storeErr).Once()

			_, err := uc.Resolve(context.Background(), "whatever")

			require.ErrorIs(t, err, entities.ErrUnauthorized)
		})
	}

	t.Run("cache hit is confirmed by the store", func(t *testing.T) {
		uc, m := newSessionUseCase(true)
		session := &entities.Session{ID: testSessionID, UserID: testUserID, User: storedUser()}
		m.cache.On("Get", mock.Anything, testSessionID).
			Return(&entities.Session{ID: testSessionID, UserID: testUserID}, nil).Once()
		m.sessions.On("FindByID", mock.Anything, testSessionID).Return(session, nil).Once()

		result, err := uc.Resolve(context.Background(), testSessionID)

		require.NoError(t, err)
		assert.Equal(t, testEmail, result.User.Email)
		m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("cache hit for a closed session evicts the entry", func(t *testing.T) {
		uc, m := newSessionUseCase(true)
		m.cache.On("Get", mock.Anything, testSessionID).
			Return(&entities.Session{ID: testSessionID, UserID: testUserID}, nil).Once()
		m.sessions.On("FindByID", mock.Anything, testSessionID).Return(nil, entities.ErrSessionNotFound).Once()
		m.cache.On("Delete", mock.Anything, []string{testSessionID}).Return(nil).Once()

		_, err := uc.Resolve(context.Background(), testSessionID)

		require.ErrorIs(t, err, entities.ErrUnauthorized)
		m.cache.AssertExpectations(t)
	})

	t.Run("cache miss falls through and fills the cache", func(t *testing.T) {
		uc, m := newSessionUseCase(true)
		session := &entities.Session{ID: testSessionID, UserID: testUserID, User: storedUser()}
		m.cache.On("Get", mock.Anything, testSessionID).Return(nil, nil).Once()
		m.sessions.On("FindByID", mock.Anything, testSessionID).Return(session, nil).Once()
		m.cache.On("Set", mock.Anything, session).Return(nil).Once()

		_, err := uc.Resolve(context.Background(), testSessionID)

		require.NoError(t, err)
		m.cache.AssertExpectations(t)
	})

	t.Run("cache error falls through to the store", func(t *testing.T) {
		uc, m := newSessionUseCase(true)
		session := &entities.Session{ID: testSessionID, UserID: testUserID, User: storedUser()}
		m.cache.On("Get", mock.Anything, testSessionID).Return(nil, errCacheDown).Once()
		m.sessions.On("FindByID", mock.Anything, testSessionID).Return(session, nil).Once()
		m.cache.On("Set", mock.Anything, session).Return(errCacheDown).Once()

		result, err := uc.Resolve(context.Background(), testSessionID)

		require.NoError(t, err)
		assert.Equal(t, testSessionID, result.ID)
	})
}

func TestSessionUseCase_Logout(t *testing.T) {
	t.Run("deletes the session and evicts it", func(t *testing.T) {
		uc, m := newSessionUseCase(true)
		m.sessions.On("Delete", mock.Anything, testSessionID).Return(nil).Once()
		m.cache.On("Delete", mock.Anything, []string{testSessionID}).Return(nil).Once()

		require.NoError(t, uc.Logout(context.Background(), testSessionID))
		m.sessions.AssertExpectations(t)
		m.cache.AssertExpectations(t)
	})

	t.Run("already closed session is not an error", func(t *testing.T) {
		uc, m := newSessionUseCase(false)
		m.sessions.On("Delete", mock.Anything, testSessionID).Return(entities.ErrSessionNotFound).Once()

		require.NoError(t, uc.Logout(context.Background(), testSessionID))
	})

	t.Run("store failure", func(t *testing.T) {
		uc, m := newSessionUseCase(false)
		m.sessions.On("Delete", mock.Anything, testSessionID).Return(errDatabase).Once()

		require.ErrorIs(t, uc.Logout(context.Background(), testSessionID), errDatabase)
	})
}

func TestSessionUseCase_LogoutAll(t *testing.T) {
	t.Run("without cache only deletes in the store", func(t *testing.T) {
		uc, m := newSessionUseCase(false)
		m.sessions.On("DeleteAllByUser", mock.Anything, testUserID).Return([]string{"s1", "s2"}, nil).Once()

		require.NoError(t, uc.LogoutAll(context.Background(), testUserID))
		m.sessions.AssertExpectations(t)
	})

	t.Run("with cache evicts exactly the deleted sessions", func(t *testing.T) {
		uc, m := newSessionUseCase(true)
		m.sessions.On("DeleteAllByUser", mock.Anything, testUserID).Return([]string{"s1", "s2", "s3"}, nil).Once()
		m.cache.On("Delete", mock.Anything, []string{"s1", "s2", "s3"}).Return(nil).Once()

		require.NoError(t, uc.LogoutAll(context.Background(), testUserID))
		m.sessions.AssertExpectations(t)
		m.cache.AssertExpectations(t)
	})

	t.Run("session cached after eviction is rejected by the store", func(t *testing.T) {
		uc, m := newSessionUseCase(true)
		m.sessions.On("DeleteAllByUser", mock.Anything, testUserID).Return([]string{"s1"}, nil).Once()
		m.cache.On("Delete", mock.Anything, []string{"s1"}).Return(errCacheDown).Once()
		require.NoError(t, uc.LogoutAll(context.Background(), testUserID))

		m.cache.On("Get", mock.Anything, "s1").Return(&entities.Session{ID: "s1", UserID: testUserID}, nil).Once()
		m.sessions.On("FindByID", mock.Anything, "s1").Return(nil, entities.ErrSessionNotFound).Once()
		m.cache.On("Delete", mock.Anything, []string{"s1"}).Return(nil).Once()

		_, err := uc.Resolve(context.Background(), "s1")
		require.ErrorIs(t, err, entities.ErrUnauthorized)
	})

	t.Run("store failure", func(t *testing.T) {
		uc, m := newSessionUseCase(false)
		m.sessions.On("DeleteAllByUser", mock.Anything, testUserID).Return(nil, errDatabase).Once()

		require.ErrorIs(t, uc.LogoutAll(context.Background(), testUserID), errDatabase)
	})
}
