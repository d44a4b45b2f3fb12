package analyses

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"ats-backend/internal/shared/metrics"
)

const (
	fieldMatch    = "JD Match"
	fieldKeywords = "MissingKeywords"
	fieldSummary  = "Profile Summary"
)

// Fallback spans tried in order when the full text does not parse: the
// broadest brace-delimited span first, then progressively narrower spans
// anchored on each expected field name. The anchored patterns use [^}]* so
// they stop at the object's own closing brace instead of swallowing junk
// braces elsewhere in the text.
var fallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{.*\}`),
	regexp.MustCompile(`\{[^}]*"JD Match"[^}]*\}`),
	regexp.MustCompile(`\{[^}]*"MissingKeywords"[^}]*\}`),
	regexp.MustCompile(`\{[^}]*"Profile Summary"[^}]*\}`),
}

// Normalize turns raw model output into a Result. Model completions arrive as
// free text that is usually JSON, often fenced, sometimes surrounded by prose;
// recovery is attempted before giving up with a *ParseError. A parseable
// fragment missing required fields fails with a *ShapeError instead.
func Normalize(raw string) (Result, error) {
	cleaned := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(raw)
	cleaned = stripFence(strings.TrimSpace(cleaned))

	candidate := cleaned
	if !gjson.Valid(candidate) {
		candidate = ""
		spanFound := false
		for _, pattern := range fallbackPatterns {
			span := pattern.FindString(cleaned)
			if span == "" {
				continue
			}
			spanFound = true
			if gjson.Valid(span) {
				candidate = span
				metrics.IncParseFallback()
				break
			}
		}
		if candidate == "" {
			reason := errNoJSON
			if spanFound {
				reason = errBadSpans
			}
			return Result{}, &ParseError{Raw: raw, Err: reason}
		}
	}

	parsed := gjson.Parse(candidate)
	if !parsed.IsObject() {
		return Result{}, &ParseError{Raw: raw, Err: errNotObject}
	}

	var missing []string
	for _, field := range []string{fieldMatch, fieldKeywords, fieldSummary} {
		if !parsed.Get(field).Exists() {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return Result{}, &ShapeError{Raw: raw, Missing: missing}
	}

	return Result{
		MatchPercent:    normalizeMatch(parsed.Get(fieldMatch)),
		MissingKeywords: normalizeKeywords(parsed.Get(fieldKeywords)),
		ProfileSummary:  normalizeSummary(parsed.Get(fieldSummary)),
	}, nil
}

// stripFence removes a surrounding fenced-block marker, with or without a
// language tag, after newlines have been collapsed.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// normalizeMatch parses "NN%" or a bare number into 0..100. Non-digit content
// coerces to 0 rather than failing; this conflates "no match computed" with
// "0% match" and is kept as the documented lenient policy.
func normalizeMatch(value gjson.Result) int {
	if value.Type == gjson.Number {
		return clampPercent(int(value.Int()))
	}
	text := strings.TrimSuffix(strings.TrimSpace(value.String()), "%")
	if text == "" || !isDigits(text) {
		return 0
	}
	n := 0
	for _, r := range text {
		n = n*10 + int(r-'0')
		if n > 100 {
			return 100
		}
	}
	return clampPercent(n)
}

func normalizeKeywords(value gjson.Result) []string {
	keywords := []string{}
	if value.IsArray() {
		for _, item := range value.Array() {
			keywords = append(keywords, item.String())
		}
		return keywords
	}
	if text := strings.TrimSpace(value.String()); text != "" {
		keywords = append(keywords, text)
	}
	return keywords
}

// normalizeSummary accepts either a plain string or a list of strings, the
// latter joined with single spaces.
func normalizeSummary(value gjson.Result) string {
	if !value.IsArray() {
		return value.String()
	}
	parts := make([]string, 0, len(value.Array()))
	for _, item := range value.Array() {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, " ")
}

func isDigits(text string) bool {
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
