package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ats-backend/internal/extract"
	"ats-backend/internal/llm"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/telemetry"
)

// Service runs the scoring flow: extract text, build the prompt, call the
// model once, normalize the completion, and keep the outcome in the user's
// session. The model call is synchronous and is not retried; retry is the
// caller's decision.
type Service struct {
	LLM         llm.Client
	Sessions    *SessionStore
	MaxTokens   int
	Temperature float32
}

// Analyze scores a resume document against a job description and replaces the
// user's session with the new result.
func (s *Service) Analyze(ctx context.Context, username string, fileData []byte, mimeType, fileName, jobDescription string) (Session, error) {
	if username == "" {
		return Session{}, errors.New("username is required")
	}
	if len(fileData) == 0 {
		return Session{}, errors.New("resume file is required")
	}
	if strings.TrimSpace(jobDescription) == "" {
		return Session{}, errors.New("job description is required")
	}

	metrics.IncScoringStarted()

	resumeText, err := extract.TextFromBytes(ctx, fileData, mimeType, fileName)
	if err != nil {
		metrics.IncScoringFailed()
		return Session{}, fmt.Errorf("extract resume text: %w", err)
	}
	if strings.TrimSpace(resumeText) == "" {
		metrics.IncScoringFailed()
		return Session{}, errors.New("no text could be extracted from the resume")
	}

	completion, err := s.generate(ctx, llm.AnalysisPrompt(resumeText, jobDescription))
	if err != nil {
		metrics.IncScoringFailed()
		return Session{}, err
	}

	result, err := Normalize(completion)
	if err != nil {
		metrics.IncScoringFailed()
		telemetry.Error("analysis.normalize_failed", map[string]any{
			"username": username,
			"error":    err.Error(),
		})
		return Session{}, err
	}

	session := Session{
		AnalysisID:     uuid.NewString(),
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		Result:         result,
	}
	s.Sessions.Put(username, session)

	metrics.IncScoringCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"username":   username,
		"analysisId": session.AnalysisID,
		"match":      result.MatchPercent,
	})
	return session, nil
}

// Latest returns the user's stored session, or ErrNoAnalysis.
func (s *Service) Latest(username string) (Session, error) {
	session, ok := s.Sessions.Get(username)
	if !ok {
		return Session{}, ErrNoAnalysis
	}
	return session, nil
}

// ImprovementPlan generates follow-on suggestions from the stored result and
// caches them in the session.
func (s *Service) ImprovementPlan(ctx context.Context, username string) (string, error) {
	session, ok := s.Sessions.Get(username)
	if !ok {
		return "", ErrNoAnalysis
	}

	prompt := llm.ImprovementPlanPrompt(
		fmt.Sprintf("%d%%", session.Result.MatchPercent),
		session.Result.MissingKeywords,
		session.Result.ProfileSummary,
	)
	plan, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.Sessions.Update(username, func(sess *Session) {
		sess.ImprovementPlan = plan
	})
	return plan, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	completion, err := s.LLM.Generate(ctx, prompt, llm.GenerateParams{
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
	})
	metrics.ObserveLLMCallDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelCall, err)
	}
	return completion, nil
}
