package optimize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ats-backend/internal/analyses"
	"ats-backend/internal/llm"
	"ats-backend/internal/sections"
)

// Service runs the follow-on generation operations over a stored analysis
// session: per-section rewrites, a full ATS-optimized resume, an improvement
// guide, and a custom template. All of them need a prior analysis.
type Service struct {
	LLM         llm.Client
	Sessions    *analyses.SessionStore
	MaxTokens   int
	Temperature float32
}

// Section rewrites one resume section against the stored job description.
// An unknown section type returns the extracted content unchanged instead of
// failing.
func (s *Service) Section(ctx context.Context, username, sectionType string) (string, error) {
	session, ok := s.Sessions.Get(username)
	if !ok {
		return "", analyses.ErrNoAnalysis
	}

	content := sectionContent(sections.Extract(session.ResumeText), sectionType)
	prompt, ok := llm.OptimizeSectionPrompt(sectionType, content, session.JobDescription)
	if !ok {
		return content, nil
	}
	return s.generate(ctx, prompt)
}

// FullResume generates a complete ATS-optimized resume from the extracted
// sections, the stored score, and the missing keywords.
func (s *Service) FullResume(ctx context.Context, username string) (string, error) {
	session, ok := s.Sessions.Get(username)
	if !ok {
		return "", analyses.ErrNoAnalysis
	}

	sectionsJSON, err := json.MarshalIndent(sections.Extract(session.ResumeText), "", "  ")
	if err != nil {
		return "", err
	}
	prompt := llm.FullResumePrompt(
		string(sectionsJSON),
		session.JobDescription,
		fmt.Sprintf("%d%%", session.Result.MatchPercent),
		session.Result.MissingKeywords,
	)
	resume, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	s.Sessions.Update(username, func(sess *analyses.Session) {
		sess.OptimizedResume = resume
	})
	return resume, nil
}

// Guide generates a categorized improvement guide from the stored result.
func (s *Service) Guide(ctx context.Context, username string) (string, error) {
	session, ok := s.Sessions.Get(username)
	if !ok {
		return "", analyses.ErrNoAnalysis
	}

	prompt := llm.ImprovementGuidePrompt(
		fmt.Sprintf("%d%%", session.Result.MatchPercent),
		session.Result.MissingKeywords,
		session.JobDescription,
	)
	guide, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	s.Sessions.Update(username, func(sess *analyses.Session) {
		sess.ImprovementGuide = guide
	})
	return guide, nil
}

// CustomTemplate generates a tailored resume template for the stored job
// description. The user profile defaults to the analyzed profile summary.
func (s *Service) CustomTemplate(ctx context.Context, username, userProfile string) (string, error) {
	session, ok := s.Sessions.Get(username)
	if !ok {
		return "", analyses.ErrNoAnalysis
	}

	if strings.TrimSpace(userProfile) == "" {
		userProfile = session.Result.ProfileSummary
	}
	template, err := s.generate(ctx, llm.CustomTemplatePrompt(session.JobDescription, userProfile))
	if err != nil {
		return "", err
	}
	s.Sessions.Update(username, func(sess *analyses.Session) {
		sess.CustomTemplate = template
	})
	return template, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	completion, err := s.LLM.Generate(ctx, prompt, llm.GenerateParams{
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", analyses.ErrModelCall, err)
	}
	return completion, nil
}

func sectionContent(extracted sections.Sections, sectionType string) string {
	switch sectionType {
	case "contact_info":
		return extracted.ContactInfo
	case "summary":
		return extracted.Summary
	case "experience":
		return extracted.Experience
	case "education":
		return extracted.Education
	case "skills":
		return extracted.Skills
	case "certifications":
		return extracted.Certifications
	case "projects":
		return extracted.Projects
	default:
		return ""
	}
}
