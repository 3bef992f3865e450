package relay

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ramadhan-companion/functions/internal/models"
)

const invalidAmountMessage = "Invalid donation amount"

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if id, ok := field.Interface().(models.AccountID); ok {
			return id.String()
		}
		return nil
	}, models.AccountID{})

	return v
}

// validateRequest returns nil or an invalid-argument error describing the
// first offending field
func validateRequest(v *validator.Validate, req *models.DonationRequest) *Error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalidArgument("Invalid donation request")
	}

	for _, fe := range fieldErrs {
		if fe.Field() == "amount" {
			return invalidArgument(invalidAmountMessage)
		}
	}

	fe := fieldErrs[0]
	return invalidArgument(fe.Field() + " is required")
}
