package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	otpStore "github.com/m04kA/SMC-ParkingService/internal/infra/storage/otp"
	"github.com/m04kA/SMC-ParkingService/internal/service/otp/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type captureNotifier struct {
	last domain.Event
	err  error
}

func (n *captureNotifier) Notify(_ context.Context, e domain.Event) error {
	n.last = e
	return n.err
}

func newService(cfg Config) (*Service, *captureNotifier, *otpStore.MemoryStore) {
	store := otpStore.NewMemoryStore()
	n := &captureNotifier{}
	svc := NewService(store, n, cfg, logger.NewNop())
	svc.timeProvider = fixedTime{time.Now()}
	return svc, n, store
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestService_SendAndVerify(t *testing.T) {
	svc, n, _ := newService(Config{ExposeCode: true})
	ctx := context.Background()

	sent, err := svc.Send(ctx, &models.SendRequest{Email: "Emp@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "OTP sent to emp@example.com", sent.Message)
	assert.Len(t, sent.OTP, 6)

	assert.Equal(t, domain.EventOTPIssued, n.last.Type)
	assert.Equal(t, sent.OTP, n.last.Code)
	assert.Equal(t, "emp@example.com", n.last.Key)

	verified, err := svc.Verify(ctx, &models.VerifyRequest{Email: "emp@example.com", OTP: sent.OTP})
	require.NoError(t, err)
	assert.Equal(t, "OTP verified successfully", verified.Message)

	_, err = svc.Verify(ctx, &models.VerifyRequest{Email: "emp@example.com", OTP: sent.OTP})
	assert.ErrorIs(t, err, ErrCodeNotFound, "code is single use")
}

func TestService_CodeHiddenByDefault(t *testing.T) {
	svc, n, _ := newService(Config{})

	sent, err := svc.Send(context.Background(), &models.SendRequest{Email: "a@example.com"})

	require.NoError(t, err)
	assert.Empty(t, sent.OTP)
	assert.Len(t, n.last.Code, 6)
}

func TestService_Expired(t *testing.T) {
	svc, n, _ := newService(Config{TTL: 10 * time.Minute})
	ctx := context.Background()
	issued := svc.timeProvider.Now()

	_, err := svc.Send(ctx, &models.SendRequest{Email: "a@example.com"})
	require.NoError(t, err)

	svc.timeProvider = fixedTime{issued.Add(10 * time.Minute)}
	_, err = svc.Verify(ctx, &models.VerifyRequest{Email: "a@example.com", OTP: n.last.Code})
	assert.ErrorIs(t, err, ErrCodeExpired)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_AttemptsLimit(t *testing.T) {
	svc, n, _ := newService(Config{MaxAttempts: 2})
	ctx := context.Background()

	_, err := svc.Send(ctx, &models.SendRequest{Email: "a@example.com"})
	require.NoError(t, err)
	bad := wrongCode(n.last.Code)

	_, err = svc.Verify(ctx, &models.VerifyRequest{Email: "a@example.com", OTP: bad})
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = svc.Verify(ctx, &models.VerifyRequest{Email: "a@example.com", OTP: bad})
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	_, err = svc.Verify(ctx, &models.VerifyRequest{Email: "a@example.com", OTP: n.last.Code})
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestService_Validation(t *testing.T) {
	svc, _, _ := newService(Config{})
	ctx := context.Background()

	_, err := svc.Send(ctx, &models.SendRequest{Email: "nope"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Verify(ctx, &models.VerifyRequest{Email: "a@example.com", OTP: "12ab56"})
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Otp must contain only digits", vErr.Message)
}

func TestService_DeliveryFailureDropsCode(t *testing.T) {
	svc, n, store := newService(Config{})
	n.err = errors.New("broker down")

	_, err := svc.Send(context.Background(), &models.SendRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = store.Get(context.Background(), "a@example.com")
	assert.ErrorIs(t, err, otpStore.ErrCodeNotFound)
}
