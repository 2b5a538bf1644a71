package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// в сообщениях используем имена полей из json-тегов: recipient_phone, а не RecipientPhone
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct проверяет структуру по тегам validate. Первая ошибка превращается в *domain.ValidationError.
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	return MapError(err)
}

// MapError переводит ошибку validator в читаемое сообщение
func MapError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return domain.NewValidationError("", "invalid input")
	}

	e := errs[0]
	field := e.Field()
	human := formatFieldName(field)

	switch e.Tag() {
	case "required", "required_if":
		return domain.NewValidationError(field, "%s is required", human)
	case "oneof":
		return domain.NewValidationError(field, "%s must be one of: %s", human, strings.ReplaceAll(e.Param(), " ", ", "))
	case "email":
		return domain.NewValidationError(field, "%s must be a valid email", human)
	case "max":
		return domain.NewValidationError(field, "%s must be at most %s characters", human, e.Param())
	case "min", "gte":
		return domain.NewValidationError(field, "%s must be at least %s", human, e.Param())
	case "lte":
		return domain.NewValidationError(field, "%s must be at most %s", human, e.Param())
	case "len":
		return domain.NewValidationError(field, "%s must be exactly %s characters", human, e.Param())
	case "numeric":
		return domain.NewValidationError(field, "%s must contain only digits", human)
	case "uuid", "uuid4":
		return domain.NewValidationError(field, "%s must be a valid UUID", human)
	default:
		return domain.NewValidationError(field, "%s is invalid", human)
	}
}

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}
