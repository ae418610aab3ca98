package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/pkg/apperr"
	"github.com/saagar210/LegalDocsReview/pkg/logger"
)

// ComparisonResult is what a compare call returns to the caller
type ComparisonResult struct {
	ComparisonID string             `json:"comparison_id"`
	Differences  []model.Difference `json:"differences"`
	Summary      string             `json:"summary"`
}

// ComparisonService runs structured diffs between two documents, or between a
// document and a reference template. Comparisons read documents but never
// change their status.
type ComparisonService struct {
	registry  *Registry
	newEngine EngineFactory
}

func NewComparisonService(registry *Registry, newEngine EngineFactory) *ComparisonService {
	return &ComparisonService{registry: registry, newEngine: newEngine}
}

// Compare diffs two documents. Both need extracted text; comparing a document
// with itself returns an empty comparison without contacting the engine.
func (s *ComparisonService) Compare(ctx context.Context, aID, bID string) (*ComparisonResult, error) {
	docA, err := s.registry.GetDocument(ctx, aID)
	if err != nil {
		return nil, err
	}
	docB, err := s.registry.GetDocument(ctx, bID)
	if err != nil {
		return nil, err
	}

	if !docA.HasRawText() {
		return nil, apperr.New(apperr.KindPrecondition, "document %s has no extracted text", aID)
	}
	if !docB.HasRawText() {
		return nil, apperr.New(apperr.KindPrecondition, "document %s has no extracted text", bID)
	}

	if aID == bID {
		summary := "The documents are identical."
		return s.persist(ctx, &model.Comparison{
			DocumentAID:    aID,
			DocumentBID:    &bID,
			ComparisonType: model.ComparisonDocVsDoc,
			Summary:        &summary,
		}, []model.Difference{}, summary)
	}

	engine, err := s.newEngine(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "comparison started",
		"document_a_id", aID,
		"document_b_id", bID,
		"provider", engine.Name(),
	)

	payload, err := engine.Compare(ctx, *docA.RawText, *docB.RawText, docA.ContractType)
	if err != nil {
		return nil, err
	}

	provider := engine.Name()
	return s.persist(ctx, &model.Comparison{
		DocumentAID:    aID,
		DocumentBID:    &bID,
		ComparisonType: model.ComparisonDocVsDoc,
		Summary:        &payload.Summary,
		AIProvider:     &provider,
	}, payload.Differences, payload.Summary)
}

// CompareWithTemplate diffs a document against a reference template
func (s *ComparisonService) CompareWithTemplate(ctx context.Context, documentID, templateID string) (*ComparisonResult, error) {
	doc, err := s.registry.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !doc.HasRawText() {
		return nil, apperr.New(apperr.KindPrecondition, "document %s has no extracted text", documentID)
	}

	tpl, err := s.registry.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	engine, err := s.newEngine(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "template comparison started",
		"document_id", documentID,
		"template_id", templateID,
		"provider", engine.Name(),
	)

	payload, err := engine.Compare(ctx, *doc.RawText, tpl.RawText, doc.ContractType)
	if err != nil {
		return nil, err
	}

	provider := engine.Name()
	return s.persist(ctx, &model.Comparison{
		DocumentAID:    documentID,
		TemplateID:     &templateID,
		ComparisonType: model.ComparisonDocVsTemplate,
		Summary:        &payload.Summary,
		AIProvider:     &provider,
	}, payload.Differences, payload.Summary)
}

// History returns the comparisons involving a document, newest first
func (s *ComparisonService) History(ctx context.Context, documentID string) ([]model.Comparison, error) {
	if _, err := s.registry.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.registry.ListComparisons(ctx, documentID)
}

func (s *ComparisonService) persist(ctx context.Context, cmp *model.Comparison, diffs []model.Difference, summary string) (*ComparisonResult, error) {
	data, err := json.Marshal(diffs)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize differences: %w", err)
	}
	cmp.Differences = data

	stored, err := s.registry.AppendComparison(ctx, cmp)
	if err != nil {
		return nil, err
	}

	return &ComparisonResult{
		ComparisonID: stored.ID,
		Differences:  diffs,
		Summary:      summary,
	}, nil
}
