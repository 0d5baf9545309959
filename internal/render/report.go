package render

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/gennadis/medagentui/internal/client"
)

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// DocumentRenderer maps the structured payloads of the document-mode agents
// into display sections. It decodes from the raw stored payload so a session
// can always be re-rendered from its persisted copy alone.
type DocumentRenderer struct {
	styles Styles
}

// NewDocumentRenderer creates a renderer with the given styles.
func NewDocumentRenderer(styles Styles) *DocumentRenderer {
	return &DocumentRenderer{styles: styles}
}

// Report renders a lab-report analysis payload.
func (r *DocumentRenderer) Report(raw json.RawMessage) (string, error) {
	var payload client.ReportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("failed to decode report payload: %w", err)
	}

	var sb strings.Builder

	profile := payload.PatientProfile
	sb.WriteString(r.styles.SectionTitle.Render("Patient Profile") + "\n")
	r.field(&sb, "Name", profile.Name)
	r.field(&sb, "Age", orNA(profile.Age.String()))
	r.field(&sb, "Gender", profile.Gender)
	r.field(&sb, "History", profile.History)
	r.field(&sb, "Complaints", profile.Complaints)
	sb.WriteString("\n")

	data := payload.StructuredMedicalData
	sb.WriteString(r.styles.SectionTitle.Render("Diagnostic Results") + "\n")
	if diagnostic := data.Content.Diagnostic; diagnostic != nil {
		r.field(&sb, "Test Name", diagnostic.TestName)
		for _, row := range diagnostic.Results {
			flag := row.Flag
			if flag == "" {
				flag = "Normal"
			}
			sb.WriteString(fmt.Sprintf("  - %s %s %s — Status: %s\n",
				r.styles.FieldName.Render(row.Item+":"), row.Value, row.Unit, flag))
		}
	}
	if provider := data.Provider; provider != nil {
		r.field(&sb, "Provider", fmt.Sprintf("%s (%s)", provider.Name, provider.Facility))
	}
	r.field(&sb, "Summary", data.Summary)
	sb.WriteString("\n")

	// The consultation summary arrives as service-generated HTML. It is not
	// trusted markup here: tags are stripped and entities unescaped so it is
	// displayed as plain text.
	sb.WriteString(r.styles.SectionTitle.Render("Consultation Summary") + "\n")
	sb.WriteString(stripTags(payload.ConsultationSummaryHTML) + "\n")

	return sb.String(), nil
}

func (r *DocumentRenderer) field(sb *strings.Builder, name, value string) {
	sb.WriteString(r.styles.FieldName.Render(name+":") + " " + value + "\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func stripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTagRe.ReplaceAllString(s, "")))
}
