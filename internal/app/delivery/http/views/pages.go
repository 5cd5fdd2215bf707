package views

import (
	"fmt"
	"patient-chart-service/internal/app/services/core/patient_charts"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/fhir_dto"
	"patient-chart-service/internal/pkg/utils"
	"strings"
	"time"
)

const timeLayout = "02 Jan 2006 15:04 MST"

var tabLabels = map[string]string{
	constvars.ChartTabOverview: "Overview",
	constvars.ChartTabTimeline: "Timeline",
	constvars.ChartTabHistory:  "History",
}

var reportStatuses = []string{
	constvars.FhirDiagnosticReportStatusRegistered,
	constvars.FhirDiagnosticReportStatusPartial,
	constvars.FhirDiagnosticReportStatusPreliminary,
	constvars.FhirDiagnosticReportStatusFinal,
	constvars.FhirDiagnosticReportStatusAmended,
	constvars.FhirDiagnosticReportStatusCorrected,
	constvars.FhirDiagnosticReportStatusAppended,
	constvars.FhirDiagnosticReportStatusCancelled,
	constvars.FhirDiagnosticReportStatusError,
	constvars.FhirDiagnosticReportStatusUnknown,
}

type Page struct {
	Title          string
	RefreshSeconds int
}

type LoadingPage struct {
	Page
}

type ErrorPage struct {
	Page
	StatusCode int
	Message    string
	RetryHref  string
}

type TabLink struct {
	Name   string
	Label  string
	Href   string
	Active bool
}

type LinkItem struct {
	Href   string
	Label  string
	Status string
}

type Overview struct {
	FirstName string
	LastName  string
	BirthDate string
	Age       int
	Gender    string
	Addresses []string
	Contacts  []string
	Orders    []LinkItem
	Reports   []LinkItem
}

type TimelineItem struct {
	When   string
	Href   string
	Label  string
	Status string
}

type HistoryItem struct {
	VersionID string
	When      string
	Action    string
	Name      string
}

type PatientChartPage struct {
	Page
	PatientID          string
	Tabs               []TabLink
	Overview           *Overview
	ShowTimeline       bool
	Timeline           []TimelineItem
	ShowHistory        bool
	History            []HistoryItem
	TabError           string
	ReportError        string
	CreateReportAction string
}

type ResourceSummary struct {
	ID          string
	Status      string
	Code        string
	Subject     string
	SubjectHref string
	LastUpdated string
	Conclusion  string
}

type StatusOption struct {
	Value    string
	Selected bool
}

type DiagnosticReportEditPage struct {
	Page
	Report    ResourceSummary
	Statuses  []StatusOption
	Action    string
	VersionID string
	Saved     bool
	Error     string
}

type ResourceDetailPage struct {
	Page
	Resource ResourceSummary
	EditHref string
}

func NewLoadingPage(patientID string) LoadingPage {
	return LoadingPage{
		Page: Page{
			Title:          fmt.Sprintf("Patient %s", patientID),
			RefreshSeconds: constvars.LoadingPageRefreshIntervalInSeconds,
		},
	}
}

func NewErrorPage(err error, retryHref string) ErrorPage {
	customErr := utils.ResolveCustomError(err)
	return ErrorPage{
		Page:       Page{Title: "Error"},
		StatusCode: customErr.StatusCode,
		Message:    customErr.ClientMessage,
		RetryHref:  retryHref,
	}
}

func NewPatientChartPage(chartPage *patient_charts.PatientChartPage) PatientChartPage {
	snapshot := chartPage.Snapshot
	page := PatientChartPage{
		Page:               Page{Title: chartTitle(snapshot)},
		PatientID:          snapshot.PatientID,
		Tabs:               tabLinks(snapshot.PatientID, snapshot.ActiveTab),
		CreateReportAction: fmt.Sprintf(constvars.PagePathPatientCreateReportFormat, snapshot.PatientID),
	}

	if snapshot.Report.Status == patient_charts.ReportStatusFailed && snapshot.Report.Err != nil {
		page.ReportError = utils.ResolveCustomError(snapshot.Report.Err).ClientMessage
	}
	if chartPage.TabErr != nil {
		page.TabError = utils.ResolveCustomError(chartPage.TabErr).ClientMessage
	}

	switch snapshot.ActiveTab {
	case constvars.ChartTabTimeline:
		page.ShowTimeline = true
		page.Timeline = timelineItems(chartPage.Timeline)
	case constvars.ChartTabHistory:
		page.ShowHistory = true
		page.History = historyItems(chartPage.History)
	default:
		page.Overview = newOverview(snapshot.Chart)
	}
	return page
}

func NewDiagnosticReportEditPage(report *fhir_dto.DiagnosticReport, saved bool, errorMessage string) DiagnosticReportEditPage {
	statuses := make([]StatusOption, 0, len(reportStatuses))
	for _, status := range reportStatuses {
		statuses = append(statuses, StatusOption{Value: status, Selected: status == report.Status})
	}

	page := DiagnosticReportEditPage{
		Page:     Page{Title: fmt.Sprintf("Edit Diagnostic Report %s", report.ID)},
		Report:   diagnosticReportSummary(report),
		Statuses: statuses,
		Action:   fmt.Sprintf(constvars.PagePathDiagnosticReportEditFormat, report.ID),
		Saved:    saved,
		Error:    errorMessage,
	}
	if report.Meta != nil {
		page.VersionID = report.Meta.VersionId
	}
	return page
}

func NewDiagnosticReportDetailPage(report *fhir_dto.DiagnosticReport) ResourceDetailPage {
	return ResourceDetailPage{
		Page:     Page{Title: fmt.Sprintf("Diagnostic Report %s", report.ID)},
		Resource: diagnosticReportSummary(report),
		EditHref: fmt.Sprintf(constvars.PagePathDiagnosticReportEditFormat, report.ID),
	}
}

func NewServiceRequestDetailPage(serviceRequest *fhir_dto.ServiceRequest) ResourceDetailPage {
	summary := ResourceSummary{
		ID:          serviceRequest.ID,
		Status:      serviceRequest.Status,
		Code:        utils.CodeableConceptText(serviceRequest.Code),
		LastUpdated: formatTime(lastUpdated(serviceRequest.Meta)),
	}
	if serviceRequest.Subject != nil {
		summary.Subject = subjectLabel(serviceRequest.Subject)
		summary.SubjectHref = subjectHref(serviceRequest.Subject)
	}

	return ResourceDetailPage{
		Page:     Page{Title: fmt.Sprintf("Service Request %s", serviceRequest.ID)},
		Resource: summary,
	}
}

func chartTitle(snapshot patient_charts.Snapshot) string {
	if snapshot.Chart != nil && snapshot.Chart.Patient != nil {
		if name := utils.GetFullName(snapshot.Chart.Patient.Name); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Patient %s", snapshot.PatientID)
}

func tabLinks(patientID, activeTab string) []TabLink {
	links := make([]TabLink, 0, len(constvars.ChartTabs))
	for _, tab := range constvars.ChartTabs {
		links = append(links, TabLink{
			Name:   tab,
			Label:  tabLabels[tab],
			Href:   fmt.Sprintf(constvars.PagePathPatientWithTabFormat, patientID, tab),
			Active: tab == activeTab,
		})
	}
	return links
}

func newOverview(chart *fhir_dto.PatientChart) *Overview {
	overview := &Overview{
		Addresses: []string{},
		Contacts:  []string{},
		Orders:    []LinkItem{},
		Reports:   []LinkItem{},
	}
	if chart == nil {
		return overview
	}

	if patient := chart.Patient; patient != nil {
		overview.FirstName = utils.GetFirstName(patient.Name)
		overview.LastName = utils.GetLastName(patient.Name)
		overview.BirthDate = utils.FormatBirthDate(patient.BirthDate)
		overview.Age = utils.CalculateAge(patient.BirthDate)
		overview.Gender = patient.Gender
		for _, address := range patient.Address {
			overview.Addresses = append(overview.Addresses, utils.FormatAddress(address))
		}
		for _, contactPoint := range patient.Telecom {
			overview.Contacts = append(overview.Contacts, utils.FormatContactPoint(contactPoint))
		}
	}

	for _, order := range chart.Orders {
		overview.Orders = append(overview.Orders, LinkItem{
			Href:   fmt.Sprintf(constvars.PagePathServiceRequestFormat, order.ID),
			Label:  labelOr(utils.CodeableConceptText(order.Code), constvars.ResourceServiceRequest, order.ID),
			Status: order.Status,
		})
	}
	for _, report := range chart.Reports {
		code := report.Code
		overview.Reports = append(overview.Reports, LinkItem{
			Href:   fmt.Sprintf(constvars.PagePathDiagnosticReportFormat, report.ID),
			Label:  labelOr(utils.CodeableConceptText(&code), constvars.ResourceDiagnosticReport, report.ID),
			Status: report.Status,
		})
	}
	return overview
}

func timelineItems(entries []patient_charts.TimelineEntry) []TimelineItem {
	items := make([]TimelineItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, TimelineItem{
			When:   formatTime(entry.LastUpdated),
			Href:   entry.Link,
			Label:  entry.Summary,
			Status: entry.Status,
		})
	}
	return items
}

func historyItems(entries []patient_charts.HistoryEntry) []HistoryItem {
	items := make([]HistoryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, HistoryItem{
			VersionID: entry.VersionID,
			When:      formatTime(entry.LastUpdated),
			Action:    entry.Action,
			Name:      entry.Name,
		})
	}
	return items
}

func diagnosticReportSummary(report *fhir_dto.DiagnosticReport) ResourceSummary {
	code := report.Code
	summary := ResourceSummary{
		ID:          report.ID,
		Status:      report.Status,
		Code:        utils.CodeableConceptText(&code),
		LastUpdated: formatTime(lastUpdated(report.Meta)),
		Conclusion:  report.Conclusion,
	}
	if report.Subject != nil {
		summary.Subject = subjectLabel(report.Subject)
		summary.SubjectHref = subjectHref(report.Subject)
	}
	return summary
}

func subjectLabel(reference *fhir_dto.Reference) string {
	if reference.Display != "" {
		return reference.Display
	}
	return reference.Reference
}

// subjectHref links a Patient/{id} reference to its chart page.
func subjectHref(reference *fhir_dto.Reference) string {
	patientID, ok := strings.CutPrefix(reference.Reference, constvars.ResourcePatient+"/")
	if !ok || patientID == "" || strings.Contains(patientID, "/") {
		return ""
	}
	return fmt.Sprintf(constvars.PagePathPatientFormat, patientID)
}

func labelOr(label, resourceType, id string) string {
	if label != "" {
		return label
	}
	return utils.BuildReference(resourceType, id)
}

func lastUpdated(meta *fhir_dto.Meta) *time.Time {
	if meta == nil {
		return nil
	}
	return meta.LastUpdated
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
