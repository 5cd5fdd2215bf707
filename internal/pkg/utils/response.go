package utils

import (
	"errors"
	"net/http"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/dto/responses"
	"patient-chart-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ResolveCustomError maps any error to the CustomError rendered to clients.
func ResolveCustomError(err error) *exceptions.CustomError {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr
	}
	return &exceptions.CustomError{
		StatusCode:    constvars.StatusInternalServerError,
		ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
		DevMessage:    err.Error(),
	}
}

func LogCustomError(log *zap.Logger, err error) {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		log.Error(customErr.DevMessage,
			zap.Int(constvars.LoggingStatusCodeKey, customErr.StatusCode),
			zap.Any("location", map[string]interface{}{
				"file":          customErr.Location.File,
				"line":          customErr.Location.Line,
				"function_name": customErr.Location.FunctionName,
			}),
		)
		return
	}
	log.Error(err.Error())
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	LogCustomError(log, err)
	customErr := ResolveCustomError(err)

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(customErr.StatusCode)
	response := exceptions.CustomError{
		StatusCode:    customErr.StatusCode,
		Success:       false,
		ClientMessage: customErr.ClientMessage,
	}

	appEnvironment := GetEnvString("APP_ENV", "development")
	if appEnvironment != "production" {
		response.DevMessage = customErr.DevMessage
		response.Location = customErr.Location
	}
	json.NewEncoder(w).Encode(response)
}
