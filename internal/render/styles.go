package render

import "github.com/charmbracelet/lipgloss"

// Palette mirrors the service's web frontend: sky for headers and actions, red
// for alerts, yellow for findings, green for labels.
var (
	alertRed     = lipgloss.Color("#F87171")
	headerSky    = lipgloss.Color("#7DD3FC")
	findingGold  = lipgloss.Color("#FDE047")
	labelGreen   = lipgloss.Color("#4ADE80")
	mutedSlate   = lipgloss.Color("#94A3B8")
	actionWhite  = lipgloss.Color("#FFFFFF")
	actionSkyBg  = lipgloss.Color("#0284C7")
	cardBorderBl = lipgloss.Color("#0EA5E9")
)

// Styles holds every style the transform pipeline and the document renderers
// use. Tests construct it with PlainStyles to assert on content without
// escape sequences.
type Styles struct {
	Alert        lipgloss.Style
	Header       lipgloss.Style
	Highlight    lipgloss.Style
	ImageNote    lipgloss.Style
	Card         lipgloss.Style
	Label        lipgloss.Style
	Action       lipgloss.Style
	SectionTitle lipgloss.Style
	FieldName    lipgloss.Style
	Warn         lipgloss.Style
	Muted        lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Alert: lipgloss.NewStyle().
			Foreground(alertRed).
			Bold(true).
			Border(lipgloss.NormalBorder()).
			BorderForeground(alertRed).
			Padding(0, 1),
		Header:       lipgloss.NewStyle().Foreground(headerSky).Bold(true),
		Highlight:    lipgloss.NewStyle().Foreground(findingGold).Bold(true),
		ImageNote:    lipgloss.NewStyle().Foreground(mutedSlate).Italic(true),
		Card:         lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(cardBorderBl).Padding(0, 1),
		Label:        lipgloss.NewStyle().Foreground(labelGreen).Bold(true),
		Action:       lipgloss.NewStyle().Foreground(actionWhite).Background(actionSkyBg).Bold(true).Padding(0, 1),
		SectionTitle: lipgloss.NewStyle().Foreground(labelGreen).Bold(true),
		FieldName:    lipgloss.NewStyle().Bold(true),
		Warn:         lipgloss.NewStyle().Foreground(alertRed).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(mutedSlate),
	}
}

// PlainStyles returns an unstyled set: every Render call passes text through
// unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Alert:        plain,
		Header:       plain,
		Highlight:    plain,
		ImageNote:    plain,
		Card:         plain,
		Label:        plain,
		Action:       plain,
		SectionTitle: plain,
		FieldName:    plain,
		Warn:         plain,
		Muted:        plain,
	}
}
