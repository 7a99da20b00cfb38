package impl

import (
	"context"
	"log/slog"

	"lunchorder/config"
	deliverycontext "lunchorder/internal/delivery/context"
	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	"lunchorder/internal/domain/repository"
	"lunchorder/internal/domain/service"
	"lunchorder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPageSize = 25
	maxPageSize     = 200
)

// adminUserService implements the AdminUserUsecase interface.
type adminUserService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// AdminUserServiceParams holds dependencies for adminUserService, injected by Fx.
type AdminUserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	AuthRepo  repository.AuthRepository
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAdminUserService is the constructor for adminUserService.
func NewAdminUserService(params AdminUserServiceParams) usecase.AdminUserUsecase {
	return &adminUserService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		authRepo:  params.AuthRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

func (srv *adminUserService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns one page of all accounts, ordered by last name.
func (srv *adminUserService) ListUsers(ctx context.Context, input *usecase.ListUsersInput) (*usecase.ListUsersOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	users, total, err := srv.userRepo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.ListUsersOutput{
		Users:    users,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// CreateUser creates a complete account on behalf of an admin: profile
// fields are set immediately, no separate profile step is needed.
func (srv *adminUserService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Admin creating user", slog.String("email", input.Email))

	if input.Role == "" {
		input.Role = entity.RoleUser
	}
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}
	if input.Location != "" && !input.Location.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown location")
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordStrength, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	var createdUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		_, findErr := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if findErr == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrAuthNotFound) {
			return errors.Wrap(findErr, "failed to find authentication")
		}

		newUser := &entity.User{
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Location:  input.Location,
			Role:      input.Role,
		}
		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if createErr := authRepo.CreateAuthentication(ctx, newAuth); createErr != nil {
			return errors.Wrap(createErr, "failed to create authentication")
		}

		createdUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute admin user creation transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute admin user creation transaction")
	}

	srv.log(ctx).Info("Admin created user", slog.Any("userID", createdUser.ID))

	return createdUser, nil
}

// UpdateUser changes profile fields and the role of an account, and
// optionally resets the password.
func (srv *adminUserService) UpdateUser(ctx context.Context, userID uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}
	if input.Location != "" && !input.Location.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown location")
	}

	var hashedPassword string
	if input.Password != "" {
		if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
			return nil, errors.Wrap(domainerrors.ErrPasswordStrength, "password does not meet security requirements")
		}

		hashed, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
		}
		hashedPassword = hashed
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	// Name and location are change-only-when-present, like email and
	// password: a role-only or password-only update leaves the profile as is.
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Location != "" {
		user.Location = input.Location
	}
	user.Role = input.Role

	changeEmail := input.Email != "" && input.Email != user.Email
	if changeEmail {
		user.Email = input.Email
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if updateErr := repoFactory.UserRepo().Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update user")
		}
		if changeEmail {
			if updateErr := repoFactory.AuthRepo().UpdateProviderUserID(ctx, userID, input.Email); updateErr != nil {
				return errors.Wrap(updateErr, "failed to update credential email")
			}
		}
		if hashedPassword != "" {
			if updateErr := repoFactory.AuthRepo().UpdatePasswordHash(ctx, userID, hashedPassword); updateErr != nil {
				return errors.Wrap(updateErr, "failed to update password")
			}
			// Password reset invalidates every open session.
			if deleteErr := repoFactory.RefreshTokenRepo().DeleteByUserID(ctx, userID); deleteErr != nil {
				return errors.Wrap(deleteErr, "failed to delete sessions")
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute user update transaction")
	}

	srv.log(ctx).Info("Admin updated user", slog.Any("userID", user.ID))

	return user, nil
}

// DeleteUser removes an account and everything bound to it. Existing
// orders keep their name snapshot but lose the account link, so past
// exports stay complete.
func (srv *adminUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Admin deleting user", slog.Any("userID", userID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()
		resetRepo := repoFactory.PasswordResetRepo()
		orderRepo := repoFactory.OrderRepo()

		if _, findErr := userRepo.FindByID(ctx, userID); findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(findErr, "failed to find user")
		}

		if detachErr := orderRepo.DetachUser(ctx, userID); detachErr != nil {
			return errors.Wrap(detachErr, "failed to detach orders")
		}
		if deleteErr := refreshRepo.DeleteByUserID(ctx, userID); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete sessions")
		}
		if deleteErr := resetRepo.DeleteByUserID(ctx, userID); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete reset tokens")
		}
		if deleteErr := authRepo.DeleteByUserID(ctx, userID); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete credentials")
		}

		return errors.Wrap(userRepo.Delete(ctx, userID), "failed to delete user")
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute user deletion transaction", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute user deletion transaction")
	}

	srv.log(ctx).Info("Admin deleted user", slog.Any("userID", userID))

	return nil
}
