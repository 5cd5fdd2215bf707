package constvars

const (
	// FHIR R4 id datatype
	RegexFhirResourceID = `^[A-Za-z0-9\-\.]{1,64}$`
)
