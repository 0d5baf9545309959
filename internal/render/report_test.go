package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_RendersAllSections(t *testing.T) {
	raw := json.RawMessage(`{
		"patient_profile": {"name": "Jane Roe", "age": 42, "gender": "F", "history": "None", "complaints": "Fatigue"},
		"structured_medical_data": {
			"content": {"diagnostic": {"test_name": "CBC", "results": [
				{"item": "Hemoglobin", "value": 11.2, "unit": "g/dL", "flag": "Low"},
				{"item": "WBC", "value": "6.1", "unit": "10^9/L"}
			]}},
			"provider": {"name": "Dr. Shaw", "facility": "City Lab"},
			"summary": "Mild anemia."
		},
		"consultation_summary_html": "<p>Follow up in <b>two weeks</b>.</p>"
	}`)

	out, err := NewDocumentRenderer(PlainStyles()).Report(raw)
	require.NoError(t, err)

	assert.Contains(t, out, "Patient Profile")
	assert.Contains(t, out, "Name: Jane Roe")
	assert.Contains(t, out, "Age: 42")

	assert.Contains(t, out, "Diagnostic Results")
	assert.Contains(t, out, "Test Name: CBC")
	assert.Contains(t, out, "Hemoglobin: 11.2 g/dL — Status: Low")
	assert.Contains(t, out, "WBC: 6.1 10^9/L — Status: Normal", "missing flag defaults to Normal")
	assert.Contains(t, out, "Provider: Dr. Shaw (City Lab)")
	assert.Contains(t, out, "Summary: Mild anemia.")

	assert.Contains(t, out, "Consultation Summary")
	assert.Contains(t, out, "Follow up in two weeks.")
	assert.NotContains(t, out, "<p>", "service HTML is never embedded as markup")
}

func TestReport_MissingAgeAndDiagnostic(t *testing.T) {
	raw := json.RawMessage(`{
		"patient_profile": {"name": "Unknown", "age": "", "gender": "Unknown"},
		"structured_medical_data": {"summary": "No data."},
		"consultation_summary_html": ""
	}`)

	out, err := NewDocumentRenderer(PlainStyles()).Report(raw)
	require.NoError(t, err)

	assert.Contains(t, out, "Age: N/A")
	assert.Contains(t, out, "Summary: No data.")
}

func TestReport_DecodeFailure(t *testing.T) {
	_, err := NewDocumentRenderer(PlainStyles()).Report(json.RawMessage("{broken"))
	assert.Error(t, err)
}

func TestPrescription_JoinsAnalysisByName(t *testing.T) {
	raw := json.RawMessage(`{
		"status": "success",
		"raw_extraction": {"medicines": [
			{"name": "Amoxicillin", "form": "Capsule"},
			{"name": "Mystery Pill", "form": ""}
		]},
		"analysis": {"Amoxicillin": {"purpose": "Antibiotic", "side_effects": "Nausea", "interactions": "Avoid alcohol"}}
	}`)

	out, err := NewDocumentRenderer(PlainStyles()).Prescription(raw)
	require.NoError(t, err)

	assert.Contains(t, out, "Extracted Medications (2)")
	assert.Contains(t, out, "Amoxicillin (Capsule)")
	assert.Contains(t, out, "Purpose: Antibiotic")
	assert.Contains(t, out, "Major Warning: Avoid alcohol")

	// Absent analysis entry maps to explicit placeholders, never a missing
	// section.
	assert.Contains(t, out, "Mystery Pill (Form Unknown)")
	assert.Contains(t, out, "Purpose: Details unavailable.")
	assert.Contains(t, out, "Side Effects: N/A")
}

func TestPrescription_NoMedicinesExtracted(t *testing.T) {
	raw := json.RawMessage(`{"status": "success", "raw_extraction": {"medicines": []}, "analysis": {}}`)

	out, err := NewDocumentRenderer(PlainStyles()).Prescription(raw)
	require.NoError(t, err)

	assert.Contains(t, out, "Extracted Medications (0)")
	assert.Contains(t, out, "No specific medications were extracted")
}

func TestPrescription_AlwaysLeadsWithDisclaimer(t *testing.T) {
	raw := json.RawMessage(`{"status": "success", "raw_extraction": {"medicines": []}, "analysis": {}}`)

	out, err := NewDocumentRenderer(PlainStyles()).Prescription(raw)
	require.NoError(t, err)

	assert.Contains(t, out, "NOT a substitute for professional medical advice")
}
