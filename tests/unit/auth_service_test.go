package unit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"swapr-backend/internal/config"
	"swapr-backend/internal/domain"
	"swapr-backend/internal/service/auth"
	"swapr-backend/tests/mocks"
)

func newAuthService(adminEmails []string) (auth.Service, *mocks.MockUserRepository, *mocks.MockSessionRepository, *mocks.MockEmailService) {
	userRepo := new(mocks.MockUserRepository)
	sessionRepo := new(mocks.MockSessionRepository)
	emailService := new(mocks.MockEmailService)

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
		AdminEmails:      adminEmails,
	}

	svc := auth.NewService(userRepo, sessionRepo, emailService, cfg)
	return svc, userRepo, sessionRepo, emailService
}

func TestRegister_AdminAllowList(t *testing.T) {
	svc, userRepo, sessionRepo, emailService := newAuthService([]string{"root@swapr.io"})

	userRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*repository.Session")).Return(nil)
	emailService.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	admin, _, err := svc.Register(context.Background(), domain.RegisterInput{
		Name:     "Root",
		Email:    "Root@Swapr.io",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "root@swapr.io", admin.Email)

	regular, _, err := svc.Register(context.Background(), domain.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.False(t, regular.IsAdmin)
}

func TestRegister_Defaults(t *testing.T) {
	svc, userRepo, sessionRepo, emailService := newAuthService(nil)

	userRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*repository.Session")).Return(nil)
	emailService.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	user, tokens, err := svc.Register(context.Background(), domain.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, 5.0, user.Rating)
	assert.Equal(t, 0, user.TotalReviews)
	assert.True(t, user.IsPublic)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, userRepo, _, _ := newAuthService(nil)

	userRepo.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(true, nil)

	_, _, err := svc.Register(context.Background(), domain.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, auth.ErrEmailExists)
}

func TestRegister_RaceOnUniqueEmail(t *testing.T) {
	svc, userRepo, _, _ := newAuthService(nil)

	userRepo.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(&pq.Error{Code: "23505"})

	_, _, err := svc.Register(context.Background(), domain.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, auth.ErrEmailExists)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, userRepo, _, _ := newAuthService(nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	existing := &domain.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash)}
	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(existing, nil)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, _, err = svc.Login(context.Background(), domain.LoginInput{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// unknown address yields the same error as a bad password
	_, _, err = svc.Login(context.Background(), domain.LoginInput{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	svc, userRepo, sessionRepo, _ := newAuthService(nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	existing := &domain.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash)}
	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(existing, nil)
	userRepo.On("SetOnline", mock.Anything, existing.ID, true).Return(nil)
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*repository.Session")).Return(nil)

	user, tokens, err := svc.Login(context.Background(), domain.LoginInput{
		Email:    "ana@example.com",
		Password: "correct-password",
	})

	require.NoError(t, err)
	assert.True(t, user.IsOnline)

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, claims.UserID)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc, _, _, _ := newAuthService(nil)

	_, err := svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshToken_Unknown(t *testing.T) {
	svc, _, sessionRepo, _ := newAuthService(nil)

	sessionRepo.On("GetByTokenHash", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.RefreshToken(context.Background(), "expired-or-forged")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
