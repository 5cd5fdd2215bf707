package fhir_dto

type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type GraphQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

type PatientChartGraphQLResponse struct {
	Data   *PatientChart  `json:"data,omitempty"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// PatientChart is the composed result of one chart query: a patient with
// the orders and reports that reference it.
type PatientChart struct {
	Patient *Patient           `json:"patient"`
	Orders  []ServiceRequest   `json:"orders"`
	Reports []DiagnosticReport `json:"reports"`
}
