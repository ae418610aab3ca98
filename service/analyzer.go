package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/pkg/apperr"
	"github.com/saagar210/LegalDocsReview/pkg/logger"
)

// AnalysisResult is what a successful analyze call returns to the caller
type AnalysisResult struct {
	ExtractionID     string               `json:"extraction_id"`
	RiskAssessmentID string               `json:"risk_assessment_id"`
	ExtractionData   model.ExtractionData `json:"extraction_data"`
	OverallScore     int                  `json:"overall_score"`
	RiskLevel        string               `json:"risk_level"`
	RiskFlags        []model.RiskFlag     `json:"risk_flags"`
	Summary          *string              `json:"summary,omitempty"`
}

// EngineFactory builds the currently configured engine. Resolved per call so
// settings changes take effect without a restart.
type EngineFactory func(ctx context.Context) (Engine, error)

// Analyzer runs the compound analyze operation: one engine call producing
// extraction and risk data together, persisted all-or-nothing, with the
// document status ending in analyzed or error - never an intermediate state
// that outlives the operation.
type Analyzer struct {
	registry  *Registry
	newEngine EngineFactory

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAnalyzer(registry *Registry, newEngine EngineFactory) *Analyzer {
	return &Analyzer{
		registry:  registry,
		newEngine: newEngine,
		locks:     make(map[string]*sync.Mutex),
	}
}

// lockDocument serializes analyze calls per document id
func (a *Analyzer) lockDocument(id string) func() {
	a.mu.Lock()
	l, ok := a.locks[id]
	if !ok {
		l = &sync.Mutex{}
		a.locks[id] = l
	}
	a.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Analyze runs a full analysis of the document. Re-entrant: analyzing an
// already-analyzed document appends a new authoritative extraction and
// assessment pair; prior pairs stay for audit.
func (a *Analyzer) Analyze(ctx context.Context, documentID string) (*AnalysisResult, error) {
	unlock := a.lockDocument(documentID)
	defer unlock()

	doc, err := a.registry.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	// Preconditions are checked before the engine is ever contacted and
	// before any status change.
	if !doc.HasRawText() {
		return nil, apperr.New(apperr.KindPrecondition, "document text not yet extracted")
	}
	if !model.CanStartAnalysis(doc.Status) {
		return nil, apperr.New(apperr.KindPrecondition, "document status %s does not permit analysis", doc.Status)
	}

	engine, err := a.newEngine(ctx)
	if err != nil {
		return nil, err
	}

	if err := a.registry.UpdateStatusFrom(ctx, documentID, doc.Status, model.StatusAnalyzing, nil); err != nil {
		return nil, err
	}

	logger.Info(ctx, "analysis started",
		"document_id", documentID,
		"provider", engine.Name(),
		"contract_type", doc.ContractType,
	)

	start := time.Now()
	payload, err := engine.Analyze(ctx, *doc.RawText, doc.ContractType)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return nil, a.failAnalysis(ctx, documentID, err)
	}

	score, level, flags := applyRuleBump(payload, doc.ContractType)

	extData, err := json.Marshal(payload.Extraction)
	if err != nil {
		return nil, a.failAnalysis(ctx, documentID, fmt.Errorf("failed to serialize extraction: %w", err))
	}
	flagData, err := json.Marshal(flags)
	if err != nil {
		return nil, a.failAnalysis(ctx, documentID, fmt.Errorf("failed to serialize risk flags: %w", err))
	}

	modelName := engine.ModelName()
	summary := payload.Risk.Summary

	ext := &model.Extraction{
		DocumentID:       documentID,
		AIProvider:       engine.Name(),
		AIModel:          &modelName,
		ContractType:     doc.ContractType,
		ExtractedData:    extData,
		ProcessingTimeMs: &elapsed,
	}
	ra := &model.RiskAssessment{
		DocumentID:   documentID,
		OverallScore: score,
		RiskLevel:    level,
		Flags:        flagData,
		Summary:      &summary,
		AIProvider:   engine.Name(),
	}

	if err := a.registry.CompleteAnalysis(ctx, documentID, ext, ra); err != nil {
		// The document vanished or changed while the engine was working;
		// the transaction rolled back, so the stale response is discarded.
		return nil, err
	}

	logger.Info(ctx, "analysis completed",
		"document_id", documentID,
		"extraction_id", ext.ID,
		"risk_assessment_id", ra.ID,
		"overall_score", score,
		"risk_level", level,
		"elapsed_ms", elapsed,
	)

	return &AnalysisResult{
		ExtractionID:     ext.ID,
		RiskAssessmentID: ra.ID,
		ExtractionData:   payload.Extraction,
		OverallScore:     score,
		RiskLevel:        level,
		RiskFlags:        flags,
		Summary:          &summary,
	}, nil
}

// failAnalysis records the failure on the document and returns the original
// error. No extraction or assessment records exist for a failed run. A
// document deleted mid-flight stays deleted; the error is reported as
// not-found and nothing is written.
func (a *Analyzer) failAnalysis(ctx context.Context, documentID string, cause error) error {
	msg := cause.Error()
	err := a.registry.UpdateStatusFrom(ctx, documentID, model.StatusAnalyzing, model.StatusError, &msg)
	if apperr.IsNotFound(err) {
		return apperr.New(apperr.KindNotFound, "document %s not found", documentID)
	}
	if err != nil {
		logger.Error(ctx, "failed to record analysis error",
			"document_id", documentID,
			"error", err,
		)
	}
	return cause
}

// applyRuleBump merges rule-based flags into the engine's assessment. A
// high-severity rule flag raises the score floor to the high band; the
// engine's own stated level is otherwise trusted as-is.
func applyRuleBump(payload *AnalysisPayload, contractType string) (int, string, []model.RiskFlag) {
	flags := append(payload.Risk.Flags, applyRiskRules(&payload.Extraction, contractType)...)
	score := payload.Risk.OverallScore
	level := payload.Risk.RiskLevel

	for _, f := range flags {
		if f.Severity == model.RiskHigh && score < 67 {
			score = 67
			level = model.RiskHigh
			break
		}
	}
	return score, level, flags
}
