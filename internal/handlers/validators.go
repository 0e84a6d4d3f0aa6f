package handlers

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var yearMonthPattern = regexp.MustCompile(`^[0-9]{4}(0[1-9]|1[0-2])$`)

// RegisterValidators adds the custom binding rules used by the request DTOs to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return v.RegisterValidation("yearmonth", validateYearMonth)
}

// validateYearMonth accepts YYYYMM selectors such as 202506.
func validateYearMonth(fl validator.FieldLevel) bool {
	return yearMonthPattern.MatchString(fl.Field().String())
}
