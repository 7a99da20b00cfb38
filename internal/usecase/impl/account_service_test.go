package impl

import (
	"context"
	"testing"
	"time"

	"lunchorder/config"
	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	"lunchorder/internal/domain/repository"
	mockRepo "lunchorder/internal/mocks/repository"
	mockSvc "lunchorder/internal/mocks/service"
	"lunchorder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountServiceMocks struct {
	userRepo     *mockRepo.MockUserRepository
	authRepo     *mockRepo.MockAuthRepository
	refreshRepo  *mockRepo.MockRefreshTokenRepository
	resetRepo    *mockRepo.MockPasswordResetRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	mailSender   *mockSvc.MockMailSender
}

func newAccountService(t *testing.T) (*accountService, *accountServiceMocks) {
	t.Helper()

	mocks := &accountServiceMocks{
		userRepo:     mockRepo.NewMockUserRepository(t),
		authRepo:     mockRepo.NewMockAuthRepository(t),
		refreshRepo:  mockRepo.NewMockRefreshTokenRepository(t),
		resetRepo:    mockRepo.NewMockPasswordResetRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
		mailSender:   mockSvc.NewMockMailSender(t),
	}

	txManager := &mockRepo.FakeTransactionManager{
		Factory: &mockRepo.FakeRepositoryFactory{
			Users:          mocks.userRepo,
			Auths:          mocks.authRepo,
			RefreshTokens:  mocks.refreshRepo,
			PasswordResets: mocks.resetRepo,
		},
	}

	cfg := &config.Config{
		Auth: &config.AuthConfig{ResetTokenTTL: time.Hour},
		SMTP: &config.SMTPConfig{ResetBaseURL: "https://lunch.example.org/reset"},
	}

	service := NewAccountService(AccountServiceParams{
		TxManager:         txManager,
		UserRepo:          mocks.userRepo,
		AuthRepo:          mocks.authRepo,
		RefreshTokenRepo:  mocks.refreshRepo,
		PasswordResetRepo: mocks.resetRepo,
		Hasher:            mocks.hasher,
		TokenService:      mocks.tokenService,
		MailSender:        mocks.mailSender,
		Config:            cfg,
		Logger:            discardLogger(),
	}).(*accountService)

	return service, mocks
}

func TestAccountService_Register(t *testing.T) {
	service, mocks := newAccountService(t)
	ctx := context.Background()

	mocks.hasher.On("ValidatePasswordStrength", "geheim123").Return(nil)
	mocks.hasher.On("Hash", "geheim123").Return("hashed", nil)
	mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "neu@example.org").
		Return(nil, repository.ErrAuthNotFound)
	mocks.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	mocks.authRepo.On("CreateAuthentication", ctx, mock.AnythingOfType("*entity.Authentication")).Return(nil)

	output, err := service.Register(ctx, &usecase.RegisterInput{Email: "neu@example.org", Password: "geheim123"})
	require.NoError(t, err)
	assert.Equal(t, "neu@example.org", output.User.Email)
	assert.Equal(t, entity.RoleUser, output.User.Role)
	assert.False(t, output.User.ProfileComplete())
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	service, mocks := newAccountService(t)
	ctx := context.Background()

	mocks.hasher.On("ValidatePasswordStrength", "geheim123").Return(nil)
	mocks.hasher.On("Hash", "geheim123").Return("hashed", nil)
	mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "anna@example.org").
		Return(&entity.Authentication{UserID: uuid.New()}, nil)

	_, err := service.Register(ctx, &usecase.RegisterInput{Email: "anna@example.org", Password: "geheim123"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	service, mocks := newAccountService(t)
	ctx := context.Background()

	mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "anna@example.org").
		Return(&entity.Authentication{UserID: uuid.New(), PasswordHash: "hashed"}, nil)
	mocks.hasher.On("Check", "falsch", "hashed").Return(false)

	_, err := service.Login(ctx, &usecase.LoginInput{Email: "anna@example.org", Password: "falsch"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_StoresHashedRefreshToken(t *testing.T) {
	service, mocks := newAccountService(t)
	ctx := context.Background()

	user := completeUser()
	mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, user.Email).
		Return(&entity.Authentication{UserID: user.ID, PasswordHash: "hashed"}, nil)
	mocks.hasher.On("Check", "geheim123", "hashed").Return(true)
	mocks.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mocks.tokenService.On("GenerateTokens", user.ID, []string{"user"}).Return("access", "refresh", nil)
	mocks.tokenService.On("RefreshTokenDuration").Return(7 * 24 * time.Hour)
	mocks.refreshRepo.On("Create", ctx, mock.MatchedBy(func(token *entity.RefreshToken) bool {
		// The raw token never reaches the database.
		return token.TokenHash != "refresh" && token.TokenHash == hashToken("refresh")
	})).Return(nil)

	output, err := service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "geheim123"})
	require.NoError(t, err)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, "refresh", output.RefreshToken)
}

func TestAccountService_ForgotPassword_UnknownEmail(t *testing.T) {
	service, mocks := newAccountService(t)
	ctx := context.Background()

	mocks.userRepo.On("FindByEmail", ctx, "nobody@example.org").Return(nil, repository.ErrUserNotFound)

	// No error and no mail: the endpoint must not reveal which addresses exist.
	err := service.ForgotPassword(ctx, &usecase.ForgotPasswordInput{Email: "nobody@example.org"})
	require.NoError(t, err)
	mocks.mailSender.AssertNotCalled(t, "Send")
}

func TestAccountService_ForgotPassword_SendsMail(t *testing.T) {
	service, mocks := newAccountService(t)
	ctx := context.Background()

	user := completeUser()
	mocks.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	mocks.resetRepo.On("DeleteByUserID", ctx, user.ID).Return(nil)
	mocks.resetRepo.On("Create", ctx, mock.AnythingOfType("*entity.PasswordResetToken")).Return(nil)
	mocks.mailSender.On("Send", ctx, user.Email, "Passwort zurücksetzen", mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return(nil)

	err := service.ForgotPassword(ctx, &usecase.ForgotPasswordInput{Email: user.Email})
	require.NoError(t, err)
}

func TestAccountService_ResetPassword_ExpiredToken(t *testing.T) {
	service, mocks := newAccountService(t)
	ctx := context.Background()

	token := &entity.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TokenHash: hashToken("raw-token"),
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	mocks.hasher.On("ValidatePasswordStrength", "neues123").Return(nil)
	mocks.hasher.On("Hash", "neues123").Return("hashed", nil)
	mocks.resetRepo.On("FindByHash", ctx, hashToken("raw-token")).Return(token, nil)

	err := service.ResetPassword(ctx, &usecase.ResetPasswordInput{Token: "raw-token", NewPassword: "neues123"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrResetTokenInvalid))
}

func TestAccountService_ResetPassword_TerminatesSessions(t *testing.T) {
	service, mocks := newAccountService(t)
	ctx := context.Background()

	userID := uuid.New()
	token := &entity.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashToken("raw-token"),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	mocks.hasher.On("ValidatePasswordStrength", "neues123").Return(nil)
	mocks.hasher.On("Hash", "neues123").Return("hashed", nil)
	mocks.resetRepo.On("FindByHash", ctx, hashToken("raw-token")).Return(token, nil)
	mocks.resetRepo.On("Consume", ctx, token.ID, mock.AnythingOfType("time.Time")).Return(nil)
	mocks.authRepo.On("UpdatePasswordHash", ctx, userID, "hashed").Return(nil)
	mocks.refreshRepo.On("DeleteByUserID", ctx, userID).Return(nil)

	err := service.ResetPassword(ctx, &usecase.ResetPasswordInput{Token: "raw-token", NewPassword: "neues123"})
	require.NoError(t, err)
}

func TestAccountService_UpdateProfile_InvalidLocation(t *testing.T) {
	service, _ := newAccountService(t)

	_, err := service.UpdateProfile(context.Background(), uuid.New(), &usecase.UpdateProfileInput{
		FirstName: "Anna",
		LastName:  "Ampel",
		Location:  "Westpol",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
