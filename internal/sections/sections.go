package sections

import (
	"regexp"
	"strings"
)

// Sections holds the labeled segments heuristically split out of raw resume
// text. Absent sections are empty strings; extraction never fails.
type Sections struct {
	ContactInfo    string `json:"contact_info"`
	Summary        string `json:"summary"`
	Experience     string `json:"experience"`
	Education      string `json:"education"`
	Skills         string `json:"skills"`
	Certifications string `json:"certifications"`
	Projects       string `json:"projects"`
}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)

	// A section ends at the next ALL-CAPS header line, the next Title-Case
	// two-word line, or end of text.
	boundaryRe = regexp.MustCompile(`\n\s*[A-Z][A-Z\s]+:|\n\s*[A-Z][a-z]+\s*[A-Z][a-z]+`)

	headerRes = map[string]*regexp.Regexp{
		"summary":        regexp.MustCompile(`(?i)(summary|profile|objective|about)\s*:?\s*`),
		"experience":     regexp.MustCompile(`(?i)(experience|work\s*history|employment|professional\s*experience)\s*:?\s*`),
		"education":      regexp.MustCompile(`(?i)(education|academic|qualifications)\s*:?\s*`),
		"skills":         regexp.MustCompile(`(?i)(skills|technical\s*skills|competencies)\s*:?\s*`),
		"certifications": regexp.MustCompile(`(?i)(certifications|certificates|licenses)\s*:?\s*`),
		"projects":       regexp.MustCompile(`(?i)(projects|portfolio|key\s*projects)\s*:?\s*`),
	}
)

// Extract splits raw resume text into labeled sections. This is a best-effort
// heuristic classifier, not a grammar: overlapping or missing headers in the
// source document silently produce partial results.
func Extract(text string) Sections {
	out := Sections{
		ContactInfo: extractContact(text),
	}
	out.Summary = extractNamed(text, "summary")
	out.Experience = extractNamed(text, "experience")
	out.Education = extractNamed(text, "education")
	out.Skills = extractNamed(text, "skills")
	out.Certifications = extractNamed(text, "certifications")
	out.Projects = extractNamed(text, "projects")
	return out
}

func extractContact(text string) string {
	var b strings.Builder
	if email := emailRe.FindString(text); email != "" {
		b.WriteString("Email: ")
		b.WriteString(email)
		b.WriteString("\n")
	}
	if groups := phoneRe.FindStringSubmatch(text); groups != nil {
		b.WriteString("Phone: ")
		b.WriteString(strings.Join(groups[1:], ""))
		b.WriteString("\n")
	}
	return b.String()
}

func extractNamed(text, name string) string {
	headerRe, ok := headerRes[name]
	if !ok {
		return ""
	}
	loc := headerRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	body := text[loc[1]:]
	if end := boundaryRe.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}
	return strings.TrimSpace(body)
}
