package constvars

const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

const (
	MIMETextHTML            = "text/html"
	MIMETextPlain           = "text/plain"
	MIMEApplicationJSON     = "application/json"
	MIMEApplicationFHIRJSON = "application/fhir+json"
	MIMEApplicationForm     = "application/x-www-form-urlencoded"

	MIMETextHTMLCharsetUTF8        = "text/html; charset=utf-8"
	MIMEApplicationJSONCharsetUTF8 = "application/json; charset=utf-8"
)

const (
	StatusOK        = 200
	StatusCreated   = 201
	StatusAccepted  = 202
	StatusNoContent = 204

	StatusSeeOther = 303

	StatusBadRequest         = 400
	StatusUnauthorized       = 401
	StatusForbidden          = 403
	StatusNotFound           = 404
	StatusConflict           = 409
	StatusGone               = 410
	StatusPreconditionFailed = 412
	StatusTooManyRequests    = 429

	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAuthorization = "Authorization"
	HeaderCacheControl  = "Cache-Control"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderIfMatch       = "If-Match"
	HeaderLocation      = "Location"
	HeaderRefresh       = "Refresh"
	HeaderXRequestID    = "X-Request-ID"
)

const (
	AuthorizationBearerFormat = "Bearer %s"
	IfMatchWeakETagFormat     = `W/"%s"`
	CacheControlNoStore       = "no-store"
)
