package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gennadis/medagentui/internal/client"
)

const prescriptionDisclaimer = "This analysis is based on extraction and AI knowledge. " +
	"It is NOT a substitute for professional medical advice. " +
	"Always consult your pharmacist or doctor before taking medication."

const noMedicinesNotice = "No specific medications were extracted from the file. Please try a clearer image."

// unavailableDetail fills in for medications the analysis map has no entry
// for: every field gets an explicit placeholder, never a missing section.
var unavailableDetail = client.MedicationDetail{
	Purpose:      "Details unavailable.",
	SideEffects:  "N/A",
	Interactions: "N/A",
}

// Prescription renders a prescription extraction payload: the standing
// disclaimer, then every extracted medication joined by name with its analysis
// detail.
func (r *DocumentRenderer) Prescription(raw json.RawMessage) (string, error) {
	var payload client.PrescriptionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("failed to decode prescription payload: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(r.styles.Alert.Render(prescriptionDisclaimer) + "\n\n")

	medicines := payload.RawExtraction.Medicines
	sb.WriteString(r.styles.SectionTitle.Render(fmt.Sprintf("Extracted Medications (%d)", len(medicines))) + "\n")

	if len(medicines) == 0 {
		sb.WriteString(r.styles.Muted.Render(noMedicinesNotice) + "\n")
		return sb.String(), nil
	}

	for _, med := range medicines {
		detail, ok := payload.Analysis[med.Name]
		if !ok {
			detail = unavailableDetail
		}

		form := med.Form
		if form == "" {
			form = "Form Unknown"
		}

		sb.WriteString("\n" + r.styles.Header.Render(med.Name) + " " + r.styles.Muted.Render("("+form+")") + "\n")
		r.field(&sb, "Purpose", detail.Purpose)
		r.field(&sb, "Side Effects", detail.SideEffects)
		sb.WriteString(r.styles.Warn.Render("Major Warning:") + " " + detail.Interactions + "\n")
	}

	return sb.String(), nil
}
