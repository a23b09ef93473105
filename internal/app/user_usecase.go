package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/api"
	"bookshelf/internal/ports/repositories"
	svc "bookshelf/internal/ports/services"
	"bookshelf/pkg/logger"
)

const (
	methodCreateUser = "CreateUser"
	methodUpdateUser = "UpdateUser"
	methodDeleteUser = "DeleteUser"

	msgUserCreated    = "user created"
	msgUserUpdated    = "user updated"
	msgUserDeleted    = "user deleted"
	msgUserInvalid    = "user failed validation"
	msgPasswordRehash = "password changed, rehashing"
	msgErrHashing     = "failed to hash password"

	errCtxListingUsers    = "listing users"
	errCtxFindingUser     = "finding user"
	errCtxValidatingUser  = "validating user"
	errCtxHashingPassword = "hashing password"
	errCtxCreatingUser    = "creating user"
	errCtxUpdatingUser    = "updating user"
	errCtxDeletingUser    = "deleting user"
)

// UserUseCaseImpl реализует api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	validator   *Validator
}

// NewUserUseCase создает сценарии работы с пользователями.
func NewUserUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	validator *Validator,
) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		validator:   validator,
	}
}

// List возвращает всех пользователей.
func (u *UserUseCaseImpl) List(ctx context.Context) ([]entities.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}
	return users, nil
}

// Get возвращает пользователя вместе с его книгами.
func (u *UserUseCaseImpl) Get(ctx context.Context, id string) (*entities.UserWithBooks, error) {
	user, err := u.userRepo.FindWithBooks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	return user, nil
}

// Create проверяет данные регистрации, хэширует пароль и сохраняет пользователя.
func (u *UserUseCaseImpl) Create(ctx context.Context, input entities.NewUser) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser))

	user := &entities.User{
		Email:    input.Email,
		FullName: input.FullName,
		Bio:      input.Bio,
	}
	if input.BirthDate != nil {
		user.BirthDate = *input.BirthDate
	}

	password := input.Password
	if err := u.validator.User(user, &password); err != nil {
		log.Debug(ctx, msgUserInvalid, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	hash, err := u.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}
	user.PasswordHash = hash

	created, err := u.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.String("user_id", created.ID))
	return created, nil
}

// Update применяет переданные поля; хэш пароля меняется только если передан пароль.
func (u *UserUseCaseImpl) Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.String("user_id", id))

	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.BirthDate != nil {
		user.BirthDate = *patch.BirthDate
	}

	if err := u.validator.User(user, patch.Password); err != nil {
		log.Debug(ctx, msgUserInvalid, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	if patch.Password != nil {
		log.Debug(ctx, msgPasswordRehash)
		hash, err := u.passwordSvc.Hash(ctx, *patch.Password)
		if err != nil {
			log.Error(ctx, msgErrHashing, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
		}
		user.PasswordHash = hash
	}

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Debug(ctx, msgUserUpdated)
	return updated, nil
}

// Delete удаляет пользователя; его сессии удаляются хранилищем каскадно.
func (u *UserUseCaseImpl) Delete(ctx context.Context, id string) error {
	if err := u.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}
	logger.Log(ctx).Info(ctx, msgUserDeleted, zap.String("method", methodDeleteUser), zap.String("user_id", id))
	return nil
}
