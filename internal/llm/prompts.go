package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/analysis.txt
	promptAnalysis string
	//go:embed prompts/improvement_plan.txt
	promptImprovementPlan string
	//go:embed prompts/optimize_summary.txt
	promptOptimizeSummary string
	//go:embed prompts/optimize_experience.txt
	promptOptimizeExperience string
	//go:embed prompts/optimize_skills.txt
	promptOptimizeSkills string
	//go:embed prompts/optimize_education.txt
	promptOptimizeEducation string
	//go:embed prompts/full_resume.txt
	promptFullResume string
	//go:embed prompts/improvement_guide.txt
	promptImprovementGuide string
	//go:embed prompts/custom_template.txt
	promptCustomTemplate string
)

// AnalysisPrompt fills the scoring template with the resume and job
// description verbatim.
func AnalysisPrompt(resumeText, jobDescription string) string {
	return strings.NewReplacer(
		"{{RESUME_TEXT}}", resumeText,
		"{{JOB_DESCRIPTION}}", jobDescription,
	).Replace(promptAnalysis)
}

// ImprovementPlanPrompt fills the follow-on suggestions template with a prior
// analysis result.
func ImprovementPlanPrompt(match string, missingKeywords []string, profileSummary string) string {
	return strings.NewReplacer(
		"{{MATCH}}", match,
		"{{MISSING_KEYWORDS}}", strings.Join(missingKeywords, ", "),
		"{{PROFILE_SUMMARY}}", profileSummary,
	).Replace(promptImprovementPlan)
}

// OptimizeSectionPrompt returns the optimization prompt for a known section
// type. The second return is false for section types without a template.
func OptimizeSectionPrompt(sectionType, content, jobDescription string) (string, bool) {
	var template string
	switch sectionType {
	case "summary":
		template = promptOptimizeSummary
	case "experience":
		template = promptOptimizeExperience
	case "skills":
		template = promptOptimizeSkills
	case "education":
		template = promptOptimizeEducation
	default:
		return "", false
	}
	return strings.NewReplacer(
		"{{SECTION_CONTENT}}", content,
		"{{JOB_DESCRIPTION}}", jobDescription,
	).Replace(template), true
}

// FullResumePrompt fills the full-resume generation template.
func FullResumePrompt(sectionsJSON, jobDescription, match string, missingKeywords []string) string {
	return strings.NewReplacer(
		"{{SECTIONS_JSON}}", sectionsJSON,
		"{{JOB_DESCRIPTION}}", jobDescription,
		"{{MATCH}}", match,
		"{{MISSING_KEYWORDS}}", strings.Join(missingKeywords, ", "),
	).Replace(promptFullResume)
}

// ImprovementGuidePrompt fills the categorized improvement-guide template.
func ImprovementGuidePrompt(match string, missingKeywords []string, jobDescription string) string {
	return strings.NewReplacer(
		"{{MATCH}}", match,
		"{{MISSING_KEYWORDS}}", strings.Join(missingKeywords, ", "),
		"{{JOB_DESCRIPTION}}", jobDescription,
	).Replace(promptImprovementGuide)
}

// CustomTemplatePrompt fills the custom resume-template generation template.
func CustomTemplatePrompt(jobDescription, userProfile string) string {
	return strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", jobDescription,
		"{{USER_PROFILE}}", userProfile,
	).Replace(promptCustomTemplate)
}
