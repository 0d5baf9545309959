package client

import (
	"encoding/json"
	"strconv"
)

// FlexString decodes JSON fields the backend emits either as a string or as a
// bare number (patient age, diagnostic values).
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// SymptomRequest is the body of a symptom analysis call.
type SymptomRequest struct {
	Symptoms string `json:"symptoms"`
}

// SymptomResponse carries either analysis markdown or a failure message,
// discriminated by Status.
type SymptomResponse struct {
	Status           string `json:"status"`
	AnalysisMarkdown string `json:"analysis_markdown"`
	Message          string `json:"message"`
}

// PatientProfile holds the profile fields echoed back by report analysis.
type PatientProfile struct {
	Name       string     `json:"name"`
	Age        FlexString `json:"age"`
	Gender     string     `json:"gender"`
	History    string     `json:"history"`
	Complaints string     `json:"complaints"`
}

// DiagnosticResult is one row of a diagnostic test.
type DiagnosticResult struct {
	Item  string     `json:"item"`
	Value FlexString `json:"value"`
	Unit  string     `json:"unit"`
	Flag  string     `json:"flag"`
}

// Diagnostic groups one test's rows.
type Diagnostic struct {
	TestName string             `json:"test_name"`
	Results  []DiagnosticResult `json:"results"`
}

// MedicalContent wraps the extracted diagnostic block, which the service may
// omit entirely.
type MedicalContent struct {
	Diagnostic *Diagnostic `json:"diagnostic"`
}

// Provider identifies who produced the source report.
type Provider struct {
	Name     string `json:"name"`
	Facility string `json:"facility"`
}

// StructuredMedicalData is the extraction result for one report.
type StructuredMedicalData struct {
	Content  MedicalContent `json:"content"`
	Provider *Provider      `json:"provider"`
	Summary  string         `json:"summary"`
}

// ReportPayload is the full success response of report analysis.
type ReportPayload struct {
	Status                  string                `json:"status"`
	PatientProfile          PatientProfile        `json:"patient_profile"`
	StructuredMedicalData   StructuredMedicalData `json:"structured_medical_data"`
	ConsultationSummaryHTML string                `json:"consultation_summary_html"`
}

// Medicine is one extracted medication.
type Medicine struct {
	Name string `json:"name"`
	Form string `json:"form"`
}

// RawExtraction lists the medications found in the uploaded prescription.
type RawExtraction struct {
	Medicines []Medicine `json:"medicines"`
}

// MedicationDetail is the per-medication analysis, keyed by medicine name in
// PrescriptionPayload.Analysis.
type MedicationDetail struct {
	Purpose      string `json:"purpose"`
	SideEffects  string `json:"side_effects"`
	Interactions string `json:"interactions"`
}

// PrescriptionPayload is the full success response of prescription analysis.
type PrescriptionPayload struct {
	Status        string                      `json:"status"`
	RawExtraction RawExtraction               `json:"raw_extraction"`
	Analysis      map[string]MedicationDetail `json:"analysis"`
}

// apiErrorBody covers both failure shapes the endpoints use: some respond with
// a message field, some with error. Both are checked, message first.
type apiErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b apiErrorBody) reason(statusCode int) string {
	if b.Message != "" {
		return b.Message
	}
	if b.Error != "" {
		return b.Error
	}
	return "analysis service returned status " + strconv.Itoa(statusCode)
}
