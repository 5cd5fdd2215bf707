// Package transport carries requests from the FHIR platform clients to the
// hosted health data platform through the shared circuit breaker.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/app/services/shared/circuitbreaker"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/fhir_dto"
	"patient-chart-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ErrorBuilder maps a failed platform call to the CustomError the caller returns.
type ErrorBuilder func(err error, resource string) *exceptions.CustomError

type Request struct {
	Method         string
	Url            string
	Header         http.Header
	Body           interface{}
	Resource       string
	ExpectedStatus []int
	OnFailure      ErrorBuilder
}

type Transport struct {
	BaseUrl     string
	AccessToken string
	HTTPClient  *http.Client
	Breaker     *circuitbreaker.CircuitBreaker
	Log         *zap.Logger
}

func NewTransport(fhirConfig config.FHIR, breaker *circuitbreaker.CircuitBreaker, logger *zap.Logger) *Transport {
	baseUrl := fhirConfig.BaseUrl
	if !strings.HasSuffix(baseUrl, "/") {
		baseUrl += "/"
	}
	return &Transport{
		BaseUrl:     baseUrl,
		AccessToken: fhirConfig.AccessToken,
		HTTPClient: &http.Client{
			Timeout: time.Duration(fhirConfig.HTTPTimeoutInSeconds) * time.Second,
		},
		Breaker: breaker,
		Log:     logger,
	}
}

// ResourceURL joins path segments onto the platform base URL.
func (t *Transport) ResourceURL(segments ...string) string {
	return t.BaseUrl + strings.Join(segments, "/")
}

// Do sends the request and decodes a successful response into out. Non-success
// statuses are decoded as an OperationOutcome and reported through OnFailure;
// 404 and 410 always map to exceptions.ErrNotFoundFHIRResource, 409 and 412
// to exceptions.ErrFHIRVersionConflict.
func (t *Transport) Do(ctx context.Context, request Request, out interface{}) error {
	_, err := t.Exchange(ctx, request, out)
	return err
}

// Exchange is Do that also returns the headers of a successful response. An
// empty success body leaves out untouched.
func (t *Transport) Exchange(ctx context.Context, request Request, out interface{}) (http.Header, error) {
	if t.Breaker == nil {
		return t.do(ctx, request, out)
	}
	operation := fmt.Sprintf("%s %s", request.Method, request.Resource)
	header, err := t.Breaker.Execute(ctx, operation, func(ctx context.Context) (interface{}, error) {
		return t.do(ctx, request, out)
	})
	if err != nil {
		return nil, err
	}
	responseHeader, _ := header.(http.Header)
	return responseHeader, nil
}

func (t *Transport) do(ctx context.Context, request Request, out interface{}) (http.Header, error) {
	requestID := utils.GetRequestID(ctx)

	var body io.Reader
	if request.Body != nil {
		requestJSON, err := json.Marshal(request.Body)
		if err != nil {
			t.Log.Error("transport.Do error marshaling JSON",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingResourceTypeKey, request.Resource),
				zap.Error(err),
			)
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewBuffer(requestJSON)
	}

	req, err := http.NewRequestWithContext(ctx, request.Method, request.Url, body)
	if err != nil {
		t.Log.Error("transport.Do error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, request.Resource),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	for name, values := range request.Header {
		req.Header[name] = values
	}
	if request.Body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	}
	if t.AccessToken != "" {
		req.Header.Set(constvars.HeaderAuthorization, fmt.Sprintf(constvars.AuthorizationBearerFormat, t.AccessToken))
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		t.Log.Error("transport.Do error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, request.Resource),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if !expected(resp.StatusCode, request.ExpectedStatus) {
		return nil, t.failure(requestID, request, resp)
	}

	if out == nil {
		return resp.Header, nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if errors.Is(err, io.EOF) {
		return resp.Header, nil
	}
	if err != nil {
		t.Log.Error("transport.Do error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, request.Resource),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, request.Resource)
	}
	return resp.Header, nil
}

func (t *Transport) failure(requestID string, request Request, resp *http.Response) error {
	statusErr := fmt.Errorf("unexpected status %d", resp.StatusCode)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err == nil && len(bodyBytes) > 0 {
		var outcome fhir_dto.OperationOutcome
		if json.Unmarshal(bodyBytes, &outcome) == nil && len(outcome.Issue) > 0 && outcome.Issue[0].Diagnostics != "" {
			statusErr = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, outcome.Issue[0].Diagnostics)
		}
	}

	t.Log.Error("transport.Do FHIR error",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, request.Resource),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.Error(statusErr),
	)

	if resp.StatusCode == constvars.StatusNotFound || resp.StatusCode == constvars.StatusGone {
		return exceptions.ErrNotFoundFHIRResource(statusErr, request.Resource)
	}
	if resp.StatusCode == constvars.StatusConflict || resp.StatusCode == constvars.StatusPreconditionFailed {
		return exceptions.ErrFHIRVersionConflict(statusErr, request.Resource)
	}
	if request.OnFailure != nil {
		return request.OnFailure(statusErr, request.Resource)
	}
	return exceptions.ErrGetFHIRResource(statusErr, request.Resource)
}

func expected(statusCode int, expectedStatus []int) bool {
	if len(expectedStatus) == 0 {
		return statusCode >= 200 && statusCode < 300
	}
	for _, status := range expectedStatus {
		if status == statusCode {
			return true
		}
	}
	return false
}
