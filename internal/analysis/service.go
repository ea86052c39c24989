package analysis

import (
	"context"
	"time"

	"analyzer-backend/internal/codeindex"
	"analyzer-backend/internal/intake"
	"analyzer-backend/internal/llm"
	"analyzer-backend/internal/shared/metrics"
	"analyzer-backend/internal/shared/telemetry"
)

// Service orchestrates a single analysis: structure summary, prompt, model
// call, validation. Stateless; every call is independent.
type Service struct {
	LLM          llm.Client
	DefaultModel string
}

// NewService constructs a Service.
func NewService(client llm.Client, defaultModel string) *Service {
	return &Service{LLM: client, DefaultModel: defaultModel}
}

// Analyze runs the full flow for one validated source file. Provider errors
// are returned to the caller; malformed model output degrades to a fallback
// result instead of failing.
func (s *Service) Analyze(ctx context.Context, file intake.SourceFile, model string) (Result, error) {
	if model == "" {
		model = s.DefaultModel
	}

	metrics.IncAnalysisStarted()
	start := time.Now()

	summary := codeindex.Index(file)
	raw, err := s.LLM.AnalyzeCode(ctx, llm.AnalyzeInput{
		Code:             file.Content,
		Filename:         file.Name,
		Language:         string(file.Language),
		StructureSummary: summary.PromptLines(),
		Model:            model,
	})
	if err != nil {
		metrics.IncAnalysisFailed()
		return Result{}, err
	}

	result, err := Normalize(raw)
	if err != nil {
		telemetry.Warn("analysis.normalize.failed", map[string]any{
			"file":  file.Name,
			"model": model,
			"err":   err.Error(),
		})
		result = FallbackResult()
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	telemetry.Info("analysis.complete", map[string]any{
		"file":          file.Name,
		"language":      string(file.Language),
		"model":         model,
		"overall_score": result.OverallScore,
	})
	return result, nil
}
