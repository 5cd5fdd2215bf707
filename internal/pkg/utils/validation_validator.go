package utils

import (
	"patient-chart-service/internal/pkg/constvars"
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var fhirIDPattern = regexp.MustCompile(constvars.RegexFhirResourceID)

func init() {
	validate = validator.New()
	validate.RegisterValidation("fhir_id", validateFhirID)
	validate.RegisterValidation("chart_tab", validateChartTab)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateFhirID(fl validator.FieldLevel) bool {
	return fhirIDPattern.MatchString(fl.Field().String())
}

func validateChartTab(fl validator.FieldLevel) bool {
	return slices.Contains(constvars.ChartTabs, fl.Field().String())
}
