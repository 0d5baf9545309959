package agent

// Kind identifies one of the analysis agents exposed by the backend.
type Kind string

const (
	KindDoctor       Kind = "doctor"
	KindReport       Kind = "report"
	KindPrescription Kind = "prescription"
)

// Mode selects the session shape an agent uses: a running conversation or a
// single analyzed document.
type Mode string

const (
	ModeChat     Mode = "chat"
	ModeDocument Mode = "document"
)

// Profile describes one agent: its display name, the durable-storage scope its
// sessions live under, and the defaults seeded into a fresh session.
type Profile struct {
	Kind         Kind
	Name         string
	ScopeKey     string
	Mode         Mode
	DefaultTitle string
	Welcome      string
}

const doctorWelcome = `Welcome! I'm your non-diagnostic Doctor AI. Please describe your symptoms (e.g., "Sharp headache behind my eyes and fever of 101F").`

// DoctorProfile returns the symptom-analysis chat agent.
func DoctorProfile() Profile {
	return Profile{
		Kind:         KindDoctor,
		Name:         "Doctor AI",
		ScopeKey:     "doctor_chats",
		Mode:         ModeChat,
		DefaultTitle: "New Symptom Check",
		Welcome:      doctorWelcome,
	}
}

// ReportProfile returns the lab-report analysis agent.
func ReportProfile() Profile {
	return Profile{
		Kind:         KindReport,
		Name:         "AI Report Analyst",
		ScopeKey:     "report_sessions",
		Mode:         ModeDocument,
		DefaultTitle: "New Report",
	}
}

// PrescriptionProfile returns the prescription extraction agent.
func PrescriptionProfile() Profile {
	return Profile{
		Kind:         KindPrescription,
		Name:         "Prescription Analyst",
		ScopeKey:     "prescription_sessions",
		Mode:         ModeDocument,
		DefaultTitle: "New Analysis",
	}
}

// Profiles returns all known agents in presentation order.
func Profiles() []Profile {
	return []Profile{DoctorProfile(), ReportProfile(), PrescriptionProfile()}
}
