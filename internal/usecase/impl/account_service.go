// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

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

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	authRepo          repository.AuthRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	passwordResetRepo repository.PasswordResetRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	mailSender        service.MailSender
	resetTokenTTL     time.Duration
	resetBaseURL      string
	logger            *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	AuthRepo          repository.AuthRepository
	RefreshTokenRepo  repository.RefreshTokenRepository
	PasswordResetRepo repository.PasswordResetRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	MailSender        service.MailSender
	Config            *config.Config
	Logger            *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	resetTokenTTL := time.Hour
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.ResetTokenTTL > 0 {
		resetTokenTTL = params.Config.Auth.ResetTokenTTL
	}
	resetBaseURL := ""
	if params.Config != nil && params.Config.SMTP != nil {
		resetBaseURL = params.Config.SMTP.ResetBaseURL
	}

	return &accountService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		authRepo:          params.AuthRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		passwordResetRepo: params.PasswordResetRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		mailSender:        params.MailSender,
		resetTokenTTL:     resetTokenTTL,
		resetBaseURL:      resetBaseURL,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// hashToken derives the storage key for refresh and reset tokens. Only
// the hash ever touches the database.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}

// Register creates a new account with an empty profile. The profile
// (name and location) is completed afterwards via UpdateProfile.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordStrength, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	var registeredUser *entity.User
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
			Email: input.Email,
			Role:  entity.RoleUser,
		}
		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user during registration")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if createErr := authRepo.CreateAuthentication(ctx, newAuth); createErr != nil {
			return errors.Wrap(createErr, "failed to create authentication during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// Login checks the credentials and opens a new session.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	loggedInUser, err := srv.userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(loggedInUser.ID, entity.Roles{loggedInUser.Role}.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	newRefreshToken := &entity.RefreshToken{
		UserID:    loggedInUser.ID,
		TokenHash: hashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.Create(ctx, newRefreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", loggedInUser.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         loggedInUser,
	}, nil
}

// RefreshToken issues a new access token. The refresh token itself
// remains unchanged.
func (srv *accountService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "invalid refresh token")
	}

	if _, err := srv.refreshTokenRepo.FindByHash(ctx, hashToken(input.RefreshToken)); err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found or expired")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	newAccessToken, _, err := srv.tokenService.GenerateTokens(user.ID, entity.Roles{user.Role}.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate new access token")
	}

	return &usecase.RefreshTokenOutput{AccessToken: newAccessToken}, nil
}

// Logout terminates the session belonging to the presented refresh token.
func (srv *accountService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	if _, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken); err != nil {
		// Even with an invalid token the stored session is removed.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	if err := srv.refreshTokenRepo.DeleteByHash(ctx, hashToken(input.RefreshToken)); err != nil {
		srv.log(ctx).Error("Failed to delete refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete refresh token")
	}
	srv.log(ctx).Info("Logged out")

	return nil
}

// ForgotPassword mails a single-use reset link. Unknown addresses are
// answered identically so the endpoint cannot be used to probe accounts.
func (srv *accountService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) error {
	srv.log(ctx).Info("Password reset requested", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Password reset for unknown email", slog.String("email", input.Email))

			return nil
		}

		return errors.Wrap(err, "failed to find user by email")
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		resetRepo := repoFactory.PasswordResetRepo()

		// Earlier links become invalid once a new one is requested.
		if deleteErr := resetRepo.DeleteByUserID(ctx, user.ID); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to invalidate earlier reset tokens")
		}

		newToken := &entity.PasswordResetToken{
			UserID:    user.ID,
			TokenHash: hashToken(rawToken),
			ExpiresAt: time.Now().Add(srv.resetTokenTTL),
		}

		return resetRepo.Create(ctx, newToken)
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute password reset transaction")
	}

	resetLink := fmt.Sprintf("%s?token=%s", srv.resetBaseURL, rawToken)
	body := fmt.Sprintf(
		"<p>Hallo %s,</p><p>über den folgenden Link kannst du ein neues Passwort vergeben:</p><p><a href=%q>Passwort zurücksetzen</a></p><p>Der Link ist %d Minuten gültig.</p>",
		user.FullName(), resetLink, int(srv.resetTokenTTL.Minutes()),
	)
	if err := srv.mailSender.Send(ctx, user.Email, "Passwort zurücksetzen", body); err != nil {
		srv.log(ctx).Error("Failed to send reset mail", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to send reset mail")
	}

	srv.log(ctx).Info("Reset mail sent", slog.Any("userID", user.ID))

	return nil
}

// ResetPassword consumes a reset token and replaces the password. All
// sessions of the user are terminated.
func (srv *accountService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.Wrap(domainerrors.ErrPasswordStrength, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	now := time.Now()
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		resetRepo := repoFactory.PasswordResetRepo()
		authRepo := repoFactory.AuthRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		token, findErr := resetRepo.FindByHash(ctx, hashToken(input.Token))
		if findErr != nil {
			if errors.Is(findErr, repository.ErrResetTokenNotFound) {
				return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token unknown")
			}

			return errors.Wrap(findErr, "failed to find reset token")
		}
		if !token.Usable(now) {
			return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token expired or already used")
		}

		if consumeErr := resetRepo.Consume(ctx, token.ID, now); consumeErr != nil {
			return errors.Wrap(consumeErr, "failed to consume reset token")
		}

		if updateErr := authRepo.UpdatePasswordHash(ctx, token.UserID, hashedPassword); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update password hash")
		}

		return errors.Wrap(refreshRepo.DeleteByUserID(ctx, token.UserID), "failed to terminate sessions")
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset failed", slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password reset transaction")
	}

	srv.log(ctx).Info("Password reset completed")

	return nil
}

// GetProfile returns the requesting user's account.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateProfile sets name and location. Both are required before the
// user can place orders.
func (srv *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if !input.Location.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown location")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Location = input.Location

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("userID", user.ID))

	return user, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return hex.EncodeToString(buf), nil
}
