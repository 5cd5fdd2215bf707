package clinical_records

import (
	"context"
	"errors"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/dto/requests"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/fhir_dto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDiagnosticReportClient struct {
	stored  map[string]fhir_dto.DiagnosticReport
	updates int
}

func (f *fakeDiagnosticReportClient) CreateDiagnosticReport(ctx context.Context, request *fhir_dto.DiagnosticReport) (*fhir_dto.DiagnosticReport, error) {
	return nil, errors.New("not used")
}

func (f *fakeDiagnosticReportClient) FindDiagnosticReportByID(ctx context.Context, reportID string) (*fhir_dto.DiagnosticReport, error) {
	report, ok := f.stored[reportID]
	if !ok {
		return nil, exceptions.ErrNotFoundFHIRResource(nil, constvars.ResourceDiagnosticReport)
	}
	return &report, nil
}

func (f *fakeDiagnosticReportClient) UpdateDiagnosticReport(ctx context.Context, request *fhir_dto.DiagnosticReport) (*fhir_dto.DiagnosticReport, error) {
	f.updates++
	f.stored[request.ID] = *request
	updated := *request
	return &updated, nil
}

type fakeServiceRequestClient struct{}

func (fakeServiceRequestClient) FindServiceRequestByID(ctx context.Context, serviceRequestID string) (*fhir_dto.ServiceRequest, error) {
	return &fhir_dto.ServiceRequest{ID: serviceRequestID, Status: "active"}, nil
}

func TestUpdateDiagnosticReport(t *testing.T) {
	reportClient := &fakeDiagnosticReportClient{stored: map[string]fhir_dto.DiagnosticReport{
		"r1": {
			ResourceType: constvars.ResourceDiagnosticReport,
			ID:           "r1",
			Meta:         &fhir_dto.Meta{VersionId: "3"},
			Status:       constvars.FhirDiagnosticReportStatusFinal,
			Subject:      &fhir_dto.Reference{Reference: "Patient/123"},
			Code:         fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: "11502-2"}}},
			Elements:     map[string]json.RawMessage{
				"result":    json.RawMessage(`[{"reference":"Observation/hb"}]`),
				"performer": json.RawMessage(`[{"reference":"Practitioner/p1"}]`),
			},
		},
	}}
	usecase := NewClinicalRecordUsecase(fakeServiceRequestClient{}, reportClient, zap.NewNop())

	t.Run("Keeps Other Elements", func(t *testing.T) {
		updated, err := usecase.UpdateDiagnosticReport(context.Background(), &requests.UpdateDiagnosticReport{
			ID:         "r1",
			Status:     constvars.FhirDiagnosticReportStatusAmended,
			Conclusion: "No abnormality",
		})
		require.NoError(t, err)
		assert.Equal(t, constvars.FhirDiagnosticReportStatusAmended, updated.Status)
		assert.Equal(t, "No abnormality", updated.Conclusion)
		assert.Equal(t, "Patient/123", updated.Subject.Reference)
		assert.Equal(t, "11502-2", updated.Code.Coding[0].Code)
		assert.JSONEq(t, `[{"reference":"Observation/hb"}]`, string(updated.Elements["result"]))
		assert.Contains(t, updated.Elements, "performer")
		assert.Equal(t, "3", updated.Meta.VersionId)
	})

	t.Run("Writes Against The Version The Form Was Rendered From", func(t *testing.T) {
		updated, err := usecase.UpdateDiagnosticReport(context.Background(), &requests.UpdateDiagnosticReport{
			ID:        "r1",
			Status:    constvars.FhirDiagnosticReportStatusFinal,
			VersionID: "2",
		})
		require.NoError(t, err)
		assert.Equal(t, "2", updated.Meta.VersionId)
	})

	t.Run("Missing Report", func(t *testing.T) {
		before := reportClient.updates
		_, err := usecase.UpdateDiagnosticReport(context.Background(), &requests.UpdateDiagnosticReport{ID: "nope", Status: "final"})
		require.Error(t, err)
		assert.Equal(t, before, reportClient.updates)
	})

	t.Run("Find Service Request", func(t *testing.T) {
		order, err := usecase.FindServiceRequestByID(context.Background(), "o1")
		require.NoError(t, err)
		assert.Equal(t, "o1", order.ID)
	})
}
