package validators

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names so error codes match request fields
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("package_type", func(fl validator.FieldLevel) bool {
		return models.PackageType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("caretaker_status", func(fl validator.FieldLevel) bool {
		return models.CaretakerStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return models.PaymentMethod(fl.Field().String()).Valid()
	})

	return v
}

// Struct validates v and reports the first failing field as a business
// error coded "invalid_<field>".
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return httperr.ErrBusiness("invalid_" + fieldErrs[0].Field())
	}
	return httperr.ErrBusiness("invalid_request")
}
