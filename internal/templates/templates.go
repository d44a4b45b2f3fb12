package templates

import (
	_ "embed"
	"strings"
)

var (
	//go:embed templates/professional.txt
	professionalTemplate string
	//go:embed templates/technical.txt
	technicalTemplate string
	//go:embed templates/executive.txt
	executiveTemplate string
	//go:embed templates/entry_level.txt
	entryLevelTemplate string
	//go:embed templates/creative.txt
	creativeTemplate string
)

// Template is a static fill-in-the-blanks resume scaffold.
type Template struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
}

var catalog = []Template{
	{Key: "professional", Name: "Professional", Description: "General-purpose template with standard section headers", Content: professionalTemplate},
	{Key: "technical", Name: "Technical (IT/Software)", Description: "Optimized for software and engineering roles", Content: technicalTemplate},
	{Key: "executive", Name: "Executive (Leadership)", Description: "For senior leadership roles, leads with business impact", Content: executiveTemplate},
	{Key: "entry_level", Name: "Entry Level (Recent Graduate)", Description: "Education-first layout for recent graduates", Content: entryLevelTemplate},
	{Key: "creative", Name: "Creative (Design/Marketing)", Description: "For design and creative roles, portfolio-oriented", Content: creativeTemplate},
}

// industryAliases maps an industry name to a template key. Unknown industries
// fall back to the professional template.
var industryAliases = map[string]string{
	"technology":  "technical",
	"software":    "technical",
	"engineering": "technical",
	"healthcare":  "professional",
	"finance":     "professional",
	"marketing":   "creative",
	"design":      "creative",
	"education":   "professional",
	"consulting":  "executive",
	"management":  "executive",
	"entry_level": "entry_level",
	"internship":  "entry_level",
}

// List returns catalog metadata without template bodies.
func List() []Template {
	out := make([]Template, len(catalog))
	for i, t := range catalog {
		t.Content = ""
		out[i] = t
	}
	return out
}

// Get returns the template for a catalog key.
func Get(key string) (Template, bool) {
	for _, t := range catalog {
		if t.Key == key {
			return t, true
		}
	}
	return Template{}, false
}

// ByIndustry returns the template best suited to an industry name.
func ByIndustry(industry string) Template {
	key, ok := industryAliases[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		key = "professional"
	}
	t, _ := Get(key)
	return t
}
