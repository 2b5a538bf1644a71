package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type payload struct {
	EmpID       string `json:"emp_id" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	VehicleType string `json:"vehicle_type" validate:"required,oneof=car bike"`
}

func TestStruct_FirstErrorIsReadable(t *testing.T) {
	err := Struct(payload{Email: "a@example.com", VehicleType: "car"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "emp_id", verr.Field)
	assert.Equal(t, "Emp Id is required", verr.Message)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStruct_OneOf(t *testing.T) {
	err := Struct(payload{EmpID: "E1", Email: "a@example.com", VehicleType: "truck"})

	assert.EqualError(t, err, "Vehicle Type must be one of: car, bike")
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(payload{EmpID: "E1", Email: "a@example.com", VehicleType: "bike"}))
}
