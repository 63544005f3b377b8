package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/soaringjerry/evoa/internal/logging"
	"github.com/soaringjerry/evoa/internal/models"
)

const DefaultAnalysisTimeout = 45 * time.Second

type AnalysisRequest struct {
	Pitch          *models.Pitch `json:"pitch"`
	UserID         string        `json:"userId"`
	CustomQuestion string        `json:"customQuestion,omitempty"`
}

// HasQuestion reports whether the caller asked a free-text question. Any
// non-empty value counts, whitespace included.
func (r AnalysisRequest) HasQuestion() bool { return r.CustomQuestion != "" }

// AnalysisResult carries exactly one of Analysis or Answer.
type AnalysisResult struct {
	Analysis *models.Analysis
	Answer   *models.Answer
}

type AnalysisService struct {
	gen     Generator
	timeout time.Duration
	now     func() time.Time
}

func NewAnalysisService(gen Generator, timeout time.Duration) *AnalysisService {
	if timeout <= 0 {
		timeout = DefaultAnalysisTimeout
	}
	return &AnalysisService{gen: gen, timeout: timeout, now: time.Now}
}

func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	if req.Pitch == nil || strings.TrimSpace(req.Pitch.ID) == "" || strings.TrimSpace(req.UserID) == "" {
		return nil, NewInvalidError("pitch and userId required")
	}
	if s.gen == nil {
		return nil, NewUnavailableError("analysis backend not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if req.HasQuestion() {
		text, err := s.gen.Generate(ctx, GenerateRequest{Prompt: questionPrompt(req.Pitch, req.CustomQuestion)})
		if err != nil {
			logging.Warn("question generation failed", "pitch_id", req.Pitch.ID, "error", err)
			return nil, NewBadGatewayError("failed to generate answer")
		}
		answer := strings.TrimSpace(text)
		if answer == "" {
			return nil, NewBadGatewayError("empty answer from model")
		}
		return &AnalysisResult{Answer: &models.Answer{Answer: answer}}, nil
	}

	text, err := s.gen.Generate(ctx, GenerateRequest{Prompt: analysisPrompt(req.Pitch), JSON: true})
	if err != nil {
		logging.Warn("analysis generation failed", "pitch_id", req.Pitch.ID, "error", err)
		return nil, NewBadGatewayError("failed to generate analysis")
	}
	var a models.Analysis
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &a); err != nil {
		logging.Warn("analysis response is not JSON", "pitch_id", req.Pitch.ID, "error", err, "content_length", len(text))
		return nil, NewBadGatewayError("invalid JSON from model")
	}
	if err := a.Normalize(); err != nil {
		logging.Warn("analysis response out of vocabulary", "pitch_id", req.Pitch.ID, "error", err)
		return nil, NewBadGatewayError("invalid analysis from model")
	}
	a.PitchID = req.Pitch.ID
	a.UserID = req.UserID
	a.Timestamp = s.now().UnixMilli()
	return &AnalysisResult{Analysis: &a}, nil
}
