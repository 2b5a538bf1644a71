package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/auth/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var issuedAt = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	svc := NewService([]domain.Admin{
		{Email: "Admin@Company.com", PasswordHash: hash, Role: domain.RoleAdmin},
		{Email: "super@company.com", PasswordHash: hash, Role: domain.RoleSuperAdmin},
	}, "test-secret", time.Hour, logger.NewNop())
	svc.timeProvider = fixedTime{issuedAt}
	return svc
}

func TestService_LoginAndParse(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "admin@company.com", Password: "admin123"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Admin@Company.com", resp.Email)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, issuedAt.Add(time.Hour).Unix(), resp.ExpiresAt)

	admin, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "Admin@Company.com", admin.Email)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.False(t, admin.CanManageOffices())
}

func TestService_SuperAdminRole(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "super@company.com", Password: "admin123"})
	require.NoError(t, err)

	admin, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.True(t, admin.CanManageOffices())
}

func TestService_LoginRejected(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &models.LoginRequest{Email: "admin@company.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "ghost@company.com", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_ParseTokenRejectsExpiredAndForeign(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "admin@company.com", Password: "admin123"})
	require.NoError(t, err)

	svc.timeProvider = fixedTime{issuedAt.Add(2 * time.Hour)}
	_, err = svc.ParseToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.timeProvider = fixedTime{issuedAt}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: "admin@company.com",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
