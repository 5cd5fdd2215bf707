package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":    "is required",
	"alphanum":    "must contain only alphanumeric characters",
	"min":         "must be at least %s characters long",
	"max":         "maximum at %s characters long",
	"oneof":       "must be one of [%s]",
	"fhir_id":     "must be a valid FHIR resource id",
	"chart_tab":   "must be one of [overview, timeline, history]",
	"excludesall": "must not contain any of [%s]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":         true,
	"max":         true,
	"oneof":       true,
	"excludesall": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientPlatformUnavailable           = "the health data platform is currently unavailable, please try again later"
	ErrClientPatientChartNotLoaded         = "the patient chart is not loaded yet"
	ErrClientReportAlreadyPending          = "a diagnostic report is already being created"
	ErrClientViewClosed                    = "this page was closed, please reload it"
	ErrClientResourceNotFound              = "the requested record could not be found"
	ErrClientResourceVersionConflict       = "the record was changed by someone else, please reload it and try again"
	ErrClientTooManyRequests               = "too many requests, please slow down"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseForm            = "cannot parse form body"
	ErrDevCreateHTTPRequest          = "failed to create HTTP request"
	ErrDevSendHTTPRequest            = "failed to send HTTP request"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevMissingViewSession         = "view session missing from context"
	ErrDevPatientChartNotLoaded      = "patient chart has no loaded result for the current generation"
	ErrDevReportAlreadyPending       = "create diagnostic report action already pending"
	ErrDevViewClosed                 = "patient view already torn down"
	ErrDevRenderTemplate             = "failed to render template %s"
	ErrDevPlatformUnavailable        = "circuit breaker %s rejected the call"
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamValidationFailed   = "parameter %s validation failed"
	ErrDevQueryParamValidationFailed = "query parameter %s validation failed"
	ErrDevTooManyRequests            = "client exceeded the request rate limit"
)

// FHIR platform
const (
	ErrDevPlatformCreateFHIRResource         = "failed to create FHIR %s on the health data platform"
	ErrDevPlatformUpdateFHIRResource         = "failed to update FHIR %s on the health data platform"
	ErrDevPlatformGetFHIRResource            = "failed to get FHIR %s from the health data platform"
	ErrDevPlatformNotFoundFHIRResource       = "FHIR %s not found on the health data platform"
	ErrDevPlatformDecodeFHIRResourceResponse = "failed to decode FHIR %s response from the health data platform"
	ErrDevPlatformGraphQLQuery               = "FHIR graphql query failed"
	ErrDevPlatformFHIRVersionConflict        = "FHIR %s changed on the health data platform since it was read"
)

// Redis
const (
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
)

// RabbitMQ
const (
	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
)
