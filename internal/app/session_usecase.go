package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/api"
	"bookshelf/internal/ports/cache"
	"bookshelf/internal/ports/repositories"
	svc "bookshelf/internal/ports/services"
	"bookshelf/pkg/logger"
)

const (
	methodLogin     = "Login"
	methodResolve   = "Resolve"
	methodLogout    = "Logout"
	methodLogoutAll = "LogoutAll"

	msgLoginAttempt       = "login attempt"
	msgLoginUnknownEmail  = "login attempt with non-existent email"
	msgLoginWrongPassword = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"
	msgSessionUnknown     = "session cookie does not resolve"
	msgSessionStale       = "cached session no longer exists"
	msgUserLoggedOut      = "user logged out"
	msgAllSessionsClosed  = "all user sessions closed"
	msgCacheUnavailable   = "session cache unavailable, falling back to database"

	errCtxFindingUserByEmail = "finding user by email"
	errCtxVerifyingPassword  = "verifying password"
	errCtxCreatingSession    = "creating session"
	errCtxResolvingSession   = "resolving session"
	errCtxDeletingSession    = "deleting session"
	errCtxDeletingSessions   = "deleting user sessions"
)

// SessionUseCaseImpl реализует api.SessionUseCase.
type SessionUseCaseImpl struct {
	sessionRepo  repositories.SessionRepository
	userRepo     repositories.UserRepository
	passwordSvc  svc.PasswordService
	sessionCache cache.SessionCache
}

// NewSessionUseCase создает менеджер сессий. sessionCache может быть nil.
func NewSessionUseCase(
	sessionRepo repositories.SessionRepository,
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	sessionCache cache.SessionCache,
) api.SessionUseCase {
	return &SessionUseCaseImpl{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		passwordSvc:  passwordSvc,
		sessionCache: sessionCache,
	}
}

// Login проверяет учетные данные и открывает новую сессию.
// Неизвестный email и неверный пароль неотличимы для клиента.
func (s *SessionUseCaseImpl) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin))
	log.Debug(ctx, msgLoginAttempt)

	if email == "" || password == "" {
		return nil, entities.ErrMissingCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginUnknownEmail)
			return nil, entities.ErrUnauthorized
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUserByEmail, err)
	}

	ok, err := s.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgLoginWrongPassword, zap.String("user_id", user.ID))
		return nil, entities.ErrUnauthorized
	}

	session, err := s.sessionRepo.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingSession, err)
	}
	session.User = user

	s.cacheSession(ctx, session)

	log.Info(ctx, msgUserLoggedIn, zap.String("user_id", user.ID))
	return session, nil
}

// Resolve находит сессию по идентификатору из cookie вместе с пользователем.
func (s *SessionUseCaseImpl) Resolve(ctx context.Context, sessionID string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResolve))

	if session, err := s.resolveCached(ctx, sessionID); session != nil || err != nil {
		return session, err
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) || errors.Is(err, entities.ErrMalformedID) {
			log.Debug(ctx, msgSessionUnknown)
			return nil, entities.ErrUnauthorized
		}
		return nil, fmt.Errorf("%s: %w", errCtxResolvingSession, err)
	}

	s.cacheSession(ctx, session)
	return session, nil
}

// resolveCached возвращает nil, nil при промахе или недоступности кэша.
func (s *SessionUseCaseImpl) resolveCached(ctx context.Context, sessionID string) (*entities.Session, error) {
	if s.sessionCache == nil {
		return nil, nil
	}
	log := logger.Log(ctx).With(zap.String("method", methodResolve))

	cached, err := s.sessionCache.Get(ctx, sessionID)
	if err != nil {
		log.Warn(ctx, msgCacheUnavailable, zap.Error(err))
		return nil, nil
	}
	if cached == nil {
		return nil, nil
	}

	stored, err := s.sessionRepo.FindByID(ctx, cached.ID)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) || errors.Is(err, entities.ErrMalformedID) {
			log.Debug(ctx, msgSessionStale, zap.String("user_id", cached.UserID))
			s.evict(ctx, sessionID)
			return nil, entities.ErrUnauthorized
		}
		return nil, fmt.Errorf("%s: %w", errCtxResolvingSession, err)
	}

	return stored, nil
}

// Logout закрывает одну сессию. Повторный выход не считается ошибкой.
func (s *SessionUseCaseImpl) Logout(ctx context.Context, sessionID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))

	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil && !errors.Is(err, entities.ErrSessionNotFound) {
		return fmt.Errorf("%s: %w", errCtxDeletingSession, err)
	}
	s.evict(ctx, sessionID)

	log.Debug(ctx, msgUserLoggedOut)
	return nil
}

// LogoutAll закрывает все сессии пользователя.
func (s *SessionUseCaseImpl) LogoutAll(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogoutAll), zap.String("user_id", userID))

	ids, err := s.sessionRepo.DeleteAllByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingSessions, err)
	}
	s.evict(ctx, ids...)

	log.Info(ctx, msgAllSessionsClosed, zap.Int("count", len(ids)))
	return nil
}

func (s *SessionUseCaseImpl) cacheSession(ctx context.Context, session *entities.Session) {
	if s.sessionCache == nil {
		return
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheUnavailable, zap.Error(err))
	}
}

func (s *SessionUseCaseImpl) evict(ctx context.Context, sessionIDs ...string) {
	if s.sessionCache == nil || len(sessionIDs) == 0 {
		return
	}
	if err := s.sessionCache.Delete(ctx, sessionIDs...); err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheUnavailable, zap.Error(err))
	}
}
