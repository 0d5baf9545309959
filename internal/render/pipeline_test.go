package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doctorResponse = `**Disclaimer: This is not a medical diagnosis. Consult a doctor.**

## 1. Current Condition Analysis
You are likely experiencing symptoms consistent with a viral upper respiratory infection.

## 2. Possible Medical Problems
- Common cold
- Influenza

## 3. Recommended Remedies
Rest and hydration.

## 4. Recommended Specialist
**Specialist:** General Physician (or an ENT specialist)

***
Connect the doctor/hospital near your location.`

func plainPipeline() *Pipeline {
	return NewPipeline(PlainStyles())
}

func ruleByName(t *testing.T, p *Pipeline, name string) Rule {
	t.Helper()
	for _, r := range p.Rules() {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no rule named %q", name)
	return Rule{}
}

func TestPipeline_NoMatchReturnsInputUnchanged(t *testing.T) {
	inputs := []string{
		"",
		"Drink plenty of fluids and rest.",
		"Multi-line text\nwith nothing special\nin it.",
		"A heading-ish line without the marker: 1. Summary",
	}
	p := plainPipeline()
	for _, input := range inputs {
		assert.Equal(t, input, p.Run(input))
	}
}

func TestPipeline_Deterministic(t *testing.T) {
	p := plainPipeline()
	first := p.Run(doctorResponse)
	second := p.Run(doctorResponse)
	assert.Equal(t, first, second)
}

func TestDisclaimerRule(t *testing.T) {
	rule := ruleByName(t, plainPipeline(), "disclaimer")

	out := rule.Transform("intro **Warning: seek care** outro **bold** end")

	assert.Contains(t, out, "Warning: seek care")
	// Only the first emphasized span becomes the alert; the second is left to
	// its own devices.
	assert.Contains(t, out, "**bold**")
	assert.NotContains(t, out, "**Warning")
}

func TestHeaderRule(t *testing.T) {
	rule := ruleByName(t, plainPipeline(), "headers")

	out := rule.Transform("## 1. Summary\ndetails\n## 2. Possible Medical Problems\nmore\n")

	assert.NotContains(t, out, "##")
	assert.Contains(t, out, "1. Summary")
	assert.Contains(t, out, "2. Possible Medical Problems")
}

func TestFindingRule(t *testing.T) {
	rule := ruleByName(t, plainPipeline(), "finding")

	out := rule.Transform("You are likely experiencing symptoms consistent with a migraine.\n")

	assert.Contains(t, out, "migraine.")
	assert.NotContains(t, out, "You are likely experiencing")
}

func TestImagePlaceholderRule(t *testing.T) {
	rule := ruleByName(t, plainPipeline(), "image-placeholder")

	out := rule.Transform("2. Possible Medical Problems\n- Common cold\n")

	idx := strings.Index(out, ImagePlaceholderText)
	require.Greater(t, idx, strings.Index(out, "Possible Medical Problems"))
	assert.Contains(t, out, "- Common cold")
}

func TestPipeline_PlaceholderAfterNormalizedHeader(t *testing.T) {
	// Header normalization runs before placeholder insertion and rewrites the
	// anchor line; the anchor must stay locatable afterwards.
	p := plainPipeline()
	text := "## 2. Possible Medical Problems\n- Common cold\n"

	text = ruleByName(t, p, "headers").Transform(text)
	text = ruleByName(t, p, "image-placeholder").Transform(text)

	assert.Contains(t, text, ImagePlaceholderText)
}

func TestSpecialistRule(t *testing.T) {
	rule := ruleByName(t, plainPipeline(), "specialist-card")

	out := rule.Transform("4. Recommended Specialist\n**Specialist:** Neurologist\n\nrest")

	assert.Contains(t, out, "Specialist: Neurologist")
	assert.NotContains(t, out, "**Specialist:**")
	assert.Contains(t, out, "rest")
}

func TestCTARule(t *testing.T) {
	rule := ruleByName(t, plainPipeline(), "call-to-action")

	out := rule.Transform("wrap up\n***\nConnect the doctor/hospital near your location.\n*** trailing rule")

	assert.Contains(t, out, "Connect the doctor/hospital near your location.")
	assert.NotContains(t, out, "***")
}

func TestPipeline_GoldenDoctorResponse(t *testing.T) {
	out := plainPipeline().Run(doctorResponse)

	assert.NotContains(t, out, "##", "header markers stripped")
	assert.NotContains(t, out, "**", "emphasis markers stripped")
	assert.NotContains(t, out, "***", "horizontal rules stripped")

	assert.Contains(t, out, "Disclaimer: This is not a medical diagnosis. Consult a doctor.")
	assert.Contains(t, out, "1. Current Condition Analysis")
	assert.Contains(t, out, "viral upper respiratory infection.")
	assert.Contains(t, out, ImagePlaceholderText)
	assert.Contains(t, out, "Specialist: General Physician (or an ENT specialist)")
	assert.Contains(t, out, "Connect the doctor/hospital near your location.")

	// Source ordering is preserved across rewrites.
	order := []string{
		"Disclaimer:",
		"1. Current Condition Analysis",
		"2. Possible Medical Problems",
		ImagePlaceholderText,
		"3. Recommended Remedies",
		"4. Recommended Specialist",
		"Connect the doctor/hospital",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		require.Greaterf(t, idx, last, "%q out of order", marker)
		last = idx
	}
}

func TestPipeline_InlineWarningAndHeader(t *testing.T) {
	out := plainPipeline().Run("**Warning: seek care** ## 1. Summary\ndetails here")

	assert.Contains(t, out, "Warning: seek care")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "##")
	assert.Contains(t, out, "1. Summary")
	assert.Contains(t, out, "details here")
}
