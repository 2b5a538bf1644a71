package otp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	otpStore "github.com/m04kA/SMC-ParkingService/internal/infra/storage/otp"
	"github.com/m04kA/SMC-ParkingService/internal/service/otp/models"
	"github.com/m04kA/SMC-ParkingService/internal/validation"
)

// Config параметры одноразовых кодов
type Config struct {
	Issuer      string
	TTL         time.Duration // срок действия кода, он же период TOTP
	MaxAttempts int
	ExposeCode  bool // вернуть код в ответе (только для локального запуска)
}

// Service выдача и проверка одноразовых кодов.
// Для каждого запроса генерируется свой секрет TOTP, код вычисляется на момент выдачи.
type Service struct {
	store        CodeStore
	notifier     Notifier
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса кодов
func NewService(store CodeStore, notifier Notifier, cfg Config, logger Logger) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "SMC Parking"
	}
	return &Service{
		store:        store,
		notifier:     notifier,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (s *Service) validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    uint(s.cfg.TTL / time.Second),
		Skew:      0,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// Send выдаёт новый шестизначный код и передаёт его на доставку. Предыдущий код адреса заменяется.
func (s *Service) Send(ctx context.Context, req *models.SendRequest) (*models.SendResponse, error) {
	s.logger.Info("SendOTP: email=%s", req.Email)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("SendOTP: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	email := normalizeEmail(req.Email)

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.cfg.Issuer,
		AccountName: email,
		Period:      uint(s.cfg.TTL / time.Second),
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		s.logger.Error("SendOTP: failed to generate secret: %v", err)
		return nil, fmt.Errorf("%w: failed to generate secret: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	code, err := totp.GenerateCodeCustom(key.Secret(), now, s.validateOpts())
	if err != nil {
		s.logger.Error("SendOTP: failed to generate code: %v", err)
		return nil, fmt.Errorf("%w: failed to generate code: %v", ErrInternal, err)
	}

	entry := otpStore.Entry{Secret: key.Secret(), IssuedAt: now}
	if err := s.store.Save(ctx, email, entry, s.cfg.TTL); err != nil {
		s.logger.Error("SendOTP: failed to store code for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: failed to store code: %v", ErrInternal, err)
	}

	event := domain.Event{
		Type:       domain.EventOTPIssued,
		Key:        email,
		Email:      email,
		Code:       code,
		OccurredAt: now,
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		// код без доставки бесполезен, удаляем его
		_ = s.store.Delete(ctx, email)
		s.logger.Error("SendOTP: delivery failed for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: failed to deliver code: %v", ErrInternal, err)
	}

	resp := &models.SendResponse{Message: fmt.Sprintf("OTP sent to %s", email)}
	if s.cfg.ExposeCode {
		resp.OTP = code
	}

	s.logger.Info("SendOTP: code issued for email=%s", email)
	return resp, nil
}

// Verify проверяет код и удаляет его при успехе
func (s *Service) Verify(ctx context.Context, req *models.VerifyRequest) (*models.VerifyResponse, error) {
	s.logger.Info("VerifyOTP: email=%s", req.Email)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("VerifyOTP: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	email := normalizeEmail(req.Email)

	entry, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, otpStore.ErrCodeNotFound) {
			s.logger.Warn("VerifyOTP: no code for email=%s", email)
			return nil, ErrCodeNotFound
		}
		s.logger.Error("VerifyOTP: failed to read code for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: failed to read code: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	age := now.Sub(entry.IssuedAt)
	if age >= s.cfg.TTL {
		s.discard(ctx, email)
		s.logger.Warn("VerifyOTP: code for email=%s expired", email)
		return nil, ErrCodeExpired
	}

	ok, err := totp.ValidateCustom(req.OTP, entry.Secret, entry.IssuedAt, s.validateOpts())
	if err != nil || !ok {
		entry.Attempts++
		if entry.Attempts >= s.cfg.MaxAttempts {
			s.discard(ctx, email)
			s.logger.Warn("VerifyOTP: attempts exhausted for email=%s", email)
			return nil, ErrTooManyAttempts
		}
		if err := s.store.Save(ctx, email, *entry, s.cfg.TTL-age); err != nil {
			s.logger.Error("VerifyOTP: failed to count attempt for email=%s: %v", email, err)
		}
		s.logger.Warn("VerifyOTP: invalid code for email=%s, attempt %d", email, entry.Attempts)
		return nil, ErrInvalidCode
	}

	s.discard(ctx, email)
	s.logger.Info("VerifyOTP: email=%s verified", email)
	return &models.VerifyResponse{Message: "OTP verified successfully"}, nil
}

func (s *Service) discard(ctx context.Context, email string) {
	if err := s.store.Delete(ctx, email); err != nil {
		s.logger.Warn("VerifyOTP: failed to delete code for email=%s: %v", email, err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
