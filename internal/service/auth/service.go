package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/auth/models"
	"github.com/m04kA/SMC-ParkingService/internal/validation"
)

const issuer = "smc-parking-service"

// Claims содержимое токена администратора
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Service вход администраторов и проверка токенов.
// Учётные записи берутся из конфигурации, пароли хранятся bcrypt-хешами.
type Service struct {
	admins       map[string]domain.Admin // ключ - email в нижнем регистре
	secret       []byte
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(admins []domain.Admin, secret string, ttl time.Duration, logger Logger) *Service {
	byEmail := make(map[string]domain.Admin, len(admins))
	for _, a := range admins {
		byEmail[strings.ToLower(a.Email)] = a
	}
	return &Service{
		admins:       byEmail,
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// HashPassword bcrypt-хеш для записи в конфигурацию
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Login проверяет пароль и выдаёт токен. Email сравнивается без учёта регистра.
func (s *Service) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	s.logger.Info("Login: email=%s", req.Email)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Login: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	admin, ok := s.admins[strings.ToLower(strings.TrimSpace(req.Email))]
	if !ok {
		s.logger.Warn("Login: unknown admin email=%s", req.Email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for email=%s", admin.Email)
		return nil, ErrInvalidCredentials
	}

	now := s.timeProvider.Now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Email: admin.Email,
		Role:  string(admin.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   admin.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("Login: failed to sign token for email=%s: %v", admin.Email, err)
		return nil, fmt.Errorf("%w: failed to sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin email=%s role=%s logged in", admin.Email, admin.Role)
	return &models.LoginResponse{
		Message:   "Login successful",
		Success:   true,
		Email:     admin.Email,
		Role:      string(admin.Role),
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// ParseToken проверяет подпись и срок токена и возвращает администратора
func (s *Service) ParseToken(tokenString string) (*domain.Admin, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() || claims.Email == "" {
		return nil, fmt.Errorf("%w: bad claims", ErrInvalidToken)
	}

	// администратор мог быть удалён из конфигурации после выдачи токена
	if _, ok := s.admins[strings.ToLower(claims.Email)]; !ok {
		return nil, fmt.Errorf("%w: unknown admin", ErrInvalidToken)
	}

	return &domain.Admin{Email: claims.Email, Role: role}, nil
}
