package render

import (
	"regexp"
	"strings"
)

// ImagePlaceholderText is the fixed illustrative-image note inserted below the
// medical problems section.
const ImagePlaceholderText = "[Image of Human Respiratory System and Viral Infection Spread]"

const ctaText = "Connect the doctor/hospital near your location."

var (
	disclaimerRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
	headerRe     = regexp.MustCompile(`##\s(\d+\.)\s(.*?)\n`)
	findingRe    = regexp.MustCompile(`You are likely experiencing symptoms consistent with a (.*)\.`)
	// The header text stays locatable after header normalization, but it may be
	// followed by styling escape codes before the newline, so the anchors match
	// anything up to end of line rather than a bare newline.
	imageAnchorRe = regexp.MustCompile(`Possible Medical Problems[^\n]*\n`)
	specialistRe  = regexp.MustCompile(`(?s)[^\n]*4\. Recommended Specialist[^\n]*\n\s*\*\*Specialist:\*\*\s*(.*?)\n\n`)
	ctaRe         = regexp.MustCompile(`(\*\*\*)?\s*Connect the doctor/hospital near your location\.`)
)

// Rule is one ordered text transform. Every rule is a no-op when its pattern
// does not occur and is applied exactly once per response.
type Rule struct {
	Name      string
	Transform func(string) string
}

// Pipeline converts one raw analysis response into a display-ready document by
// running its rules in order over the accumulated text. Later rules match text
// earlier rules leave behind, so the order is part of the contract.
type Pipeline struct {
	rules []Rule
}

// NewPipeline builds the six-rule pipeline with the given styles.
func NewPipeline(styles Styles) *Pipeline {
	return &Pipeline{rules: []Rule{
		{Name: "disclaimer", Transform: disclaimerRule(styles)},
		{Name: "headers", Transform: headerRule(styles)},
		{Name: "finding", Transform: findingRule(styles)},
		{Name: "image-placeholder", Transform: imagePlaceholderRule(styles)},
		{Name: "specialist-card", Transform: specialistRule(styles)},
		{Name: "call-to-action", Transform: ctaRule(styles)},
	}}
}

// Run applies every rule once, in order, and returns the rich document.
func (p *Pipeline) Run(raw string) string {
	out := raw
	for _, rule := range p.rules {
		out = rule.Transform(out)
	}
	return out
}

// Rules exposes the ordered rule list, mainly for per-rule tests.
func (p *Pipeline) Rules() []Rule {
	return p.rules
}

// disclaimerRule replaces the first strongly-emphasized span with an alert
// block, dropping the emphasis markers.
func disclaimerRule(styles Styles) func(string) string {
	return func(text string) string {
		return replaceFirst(disclaimerRe, text, func(m []string) string {
			return styles.Alert.Render(m[1])
		})
	}
}

// headerRule turns every numbered "## N. Title" line into a styled header. The
// ordinal and title text are kept on their own line so later anchors that look
// for the literal title still match.
func headerRule(styles Styles) func(string) string {
	return func(text string) string {
		return headerRe.ReplaceAllStringFunc(text, func(match string) string {
			m := headerRe.FindStringSubmatch(match)
			return styles.Header.Render(m[1]+" "+m[2]) + "\n"
		})
	}
}

// findingRule highlights the diagnosed condition; the trailing period stays
// outside the highlight.
func findingRule(styles Styles) func(string) string {
	return func(text string) string {
		return replaceFirst(findingRe, text, func(m []string) string {
			return styles.Highlight.Render(m[1]) + "."
		})
	}
}

// imagePlaceholderRule inserts the illustrative-image note right after the
// "Possible Medical Problems" section title.
func imagePlaceholderRule(styles Styles) func(string) string {
	return func(text string) string {
		return imageAnchorRe.ReplaceAllStringFunc(text, func(match string) string {
			return match + "\n" + styles.ImageNote.Render(ImagePlaceholderText) + "\n\n"
		})
	}
}

// specialistRule collapses the recommended-specialist section into one card
// with the Specialist label highlighted inside it.
func specialistRule(styles Styles) func(string) string {
	return func(text string) string {
		return replaceFirst(specialistRe, text, func(m []string) string {
			body := "4. Recommended Specialist\n" + styles.Label.Render("Specialist:") + " " + strings.TrimSpace(m[1])
			return styles.Card.Render(body) + "\n\n"
		})
	}
}

// ctaRule styles the closing call to action and strips leftover horizontal
// rule markers.
func ctaRule(styles Styles) func(string) string {
	return func(text string) string {
		out := replaceFirst(ctaRe, text, func([]string) string {
			return "\n" + styles.Action.Render(ctaText) + "\n"
		})
		return strings.ReplaceAll(out, "***", "")
	}
}

func replaceFirst(re *regexp.Regexp, s string, repl func([]string) string) string {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	groups := make([]string, 0, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, s[loc[i]:loc[i+1]])
	}
	return s[:loc[0]] + repl(groups) + s[loc[1]:]
}
