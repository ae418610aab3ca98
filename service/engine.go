package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/saagar210/LegalDocsReview/config"
	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/pkg/apperr"
)

// RiskPayload is the risk half of an analysis response
type RiskPayload struct {
	OverallScore int              `json:"overall_score"`
	RiskLevel    string           `json:"risk_level"`
	Flags        []model.RiskFlag `json:"flags"`
	Summary      string           `json:"summary"`
}

// AnalysisPayload is the engine's combined response to a single analyze
// call: clause extraction and risk assessment are produced together, never
// as separate round trips.
type AnalysisPayload struct {
	Extraction model.ExtractionData `json:"extraction"`
	Risk       RiskPayload          `json:"risk"`
}

// ComparisonPayload is the engine's response to a compare call
type ComparisonPayload struct {
	Differences []model.Difference `json:"differences"`
	Summary     string             `json:"summary"`
}

// Engine is the boundary to the external AI analysis backend. Every call may
// suspend indefinitely; callers pass a context and must tolerate the result
// arriving after the document it refers to is gone.
type Engine interface {
	// Name identifies the provider (ollama, claude, openai)
	Name() string
	// ModelName identifies the model the provider is configured with
	ModelName() string
	// Analyze returns extraction and risk data in one response
	Analyze(ctx context.Context, text, contractType string) (*AnalysisPayload, error)
	// Compare returns a structured diff of two contract texts
	Compare(ctx context.Context, textA, textB, contractType string) (*ComparisonPayload, error)
	// Summarize writes a client-ready executive summary
	Summarize(ctx context.Context, extraction *model.ExtractionData, risk *RiskPayload) (string, error)
}

// BuildEngine constructs the engine selected by the persisted provider
// settings, falling back to config defaults.
func BuildEngine(ctx context.Context, reg *Registry, cfg *config.EngineConfig) (Engine, error) {
	ps, err := reg.ProviderSettings(ctx, cfg)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch ps.AIProvider {
	case "ollama":
		return NewOllamaEngine(ps.OllamaURL, ps.OllamaModel, timeout), nil
	case "claude":
		if ps.ClaudeAPIKey == "" {
			return nil, apperr.New(apperr.KindValidation, "claude API key not configured")
		}
		return NewClaudeEngine(ps.ClaudeAPIKey, cfg.ClaudeModel, timeout), nil
	case "openai":
		if ps.OpenAIAPIKey == "" {
			return nil, apperr.New(apperr.KindValidation, "openai API key not configured")
		}
		return NewOpenAIEngine(ps.OpenAIAPIKey, cfg.OpenAIModel, timeout), nil
	default:
		return nil, apperr.New(apperr.KindValidation, "unknown AI provider: %s", ps.AIProvider)
	}
}

// parseAnalysisPayload decodes and validates the engine's combined analysis
// response. A malformed payload is a payload error, never a silent default.
func parseAnalysisPayload(raw []byte, contractType string) (*AnalysisPayload, error) {
	var payload AnalysisPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperr.Wrap(apperr.KindPayload, err, "engine returned undecodable analysis payload")
	}

	if payload.Extraction.Clauses == nil && len(payload.Extraction.Parties) == 0 {
		return nil, apperr.New(apperr.KindPayload, "analysis payload missing extraction data")
	}
	if payload.Risk.OverallScore < 0 || payload.Risk.OverallScore > 100 {
		return nil, apperr.New(apperr.KindPayload, "risk score %d outside 0-100", payload.Risk.OverallScore)
	}
	switch payload.Risk.RiskLevel {
	case model.RiskLow, model.RiskMedium, model.RiskHigh:
	default:
		return nil, apperr.New(apperr.KindPayload, "unknown risk level %q", payload.Risk.RiskLevel)
	}

	if payload.Extraction.ContractType == "" {
		payload.Extraction.ContractType = contractType
	}
	if payload.Extraction.Parties == nil {
		payload.Extraction.Parties = []string{}
	}
	if payload.Extraction.Clauses == nil {
		payload.Extraction.Clauses = []model.ExtractedClause{}
	}
	if payload.Risk.Flags == nil {
		payload.Risk.Flags = []model.RiskFlag{}
	}
	return &payload, nil
}

// parseComparisonPayload decodes and validates a comparison response. Every
// difference must carry category, diff_type, description and significance;
// the excerpt fields are optional. Order is preserved as received.
func parseComparisonPayload(raw []byte) (*ComparisonPayload, error) {
	var payload ComparisonPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperr.Wrap(apperr.KindPayload, err, "engine returned undecodable comparison payload")
	}

	if payload.Differences == nil {
		return nil, apperr.New(apperr.KindPayload, "comparison payload missing differences list")
	}
	for i, d := range payload.Differences {
		if d.Category == "" || d.DiffType == "" || d.Description == "" || d.Significance == "" {
			return nil, apperr.New(apperr.KindPayload, "difference %d missing required fields", i)
		}
	}
	return &payload, nil
}
