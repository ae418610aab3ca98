package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/pkg/apperr"
	"github.com/saagar210/LegalDocsReview/pkg/logger"
)

// ReportService assembles text reports from the latest analysis of a
// document. Generating a report reads the analysis records and never touches
// the document's status; a report stays valid even after later analyses.
type ReportService struct {
	registry   *Registry
	newEngine  EngineFactory
	reportsDir string
}

func NewReportService(registry *Registry, newEngine EngineFactory, reportsDir string) *ReportService {
	return &ReportService{registry: registry, newEngine: newEngine, reportsDir: reportsDir}
}

// Generate builds a full-analysis report from the document's newest
// extraction and risk assessment, stores it, and exports it as a text file.
func (s *ReportService) Generate(ctx context.Context, documentID string) (*model.Report, error) {
	exts, err := s.registry.ListExtractions(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(exts) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "no extraction found for document %s. Run analysis first.", documentID)
	}
	ras, err := s.registry.ListRiskAssessments(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(ras) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "no risk assessment found for document %s. Run analysis first.", documentID)
	}

	ext := exts[0]
	ra := ras[0]

	var extraction model.ExtractionData
	if err := json.Unmarshal(ext.ExtractedData, &extraction); err != nil {
		return nil, apperr.Wrap(apperr.KindPayload, err, "stored extraction data is undecodable")
	}

	// Flags that fail to decode degrade to an empty list rather than
	// blocking the report.
	var flags []model.RiskFlag
	if err := json.Unmarshal(ra.Flags, &flags); err != nil {
		flags = nil
	}

	risk := &RiskPayload{
		OverallScore: ra.OverallScore,
		RiskLevel:    ra.RiskLevel,
		Flags:        flags,
	}
	if ra.Summary != nil {
		risk.Summary = *ra.Summary
	}

	engine, err := s.newEngine(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := engine.Summarize(ctx, &extraction, risk)
	if err != nil {
		return nil, err
	}

	content := buildReportContent(&extraction, risk, summary)

	rep, err := s.registry.AppendReport(ctx, &model.Report{
		DocumentID: documentID,
		ReportType: "full_analysis",
		Content:    content,
		Format:     "text",
	})
	if err != nil {
		return nil, err
	}

	if path, err := s.export(rep.ID, content); err != nil {
		logger.Warn(ctx, "report file export failed", "report_id", rep.ID, "error", err)
	} else {
		rep.ExportPath = &path
	}

	logger.Info(ctx, "report generated", "document_id", documentID, "report_id", rep.ID)
	return rep, nil
}

// List returns a document's reports, newest first
func (s *ReportService) List(ctx context.Context, documentID string) ([]model.Report, error) {
	return s.registry.ListReports(ctx, documentID)
}

func (s *ReportService) export(reportID, content string) (string, error) {
	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports dir: %w", err)
	}
	name := fmt.Sprintf("report_%s.txt", reportID[:8])
	path := filepath.Join(s.reportsDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return path, nil
}

func buildReportContent(extraction *model.ExtractionData, risk *RiskPayload, summary string) string {
	var b strings.Builder

	b.WriteString("═══════════════════════════════════════════════════\n")
	b.WriteString("        LEGAL DOCUMENT REVIEW REPORT\n")
	b.WriteString("═══════════════════════════════════════════════════\n\n")

	b.WriteString("EXECUTIVE SUMMARY\n")
	b.WriteString("─────────────────\n")
	b.WriteString(summary)
	b.WriteString("\n\n")

	b.WriteString("KEY PARTIES\n")
	b.WriteString("───────────\n")
	for _, party := range extraction.Parties {
		fmt.Fprintf(&b, "  • %s\n", party)
	}
	b.WriteString("\n")

	if extraction.EffectiveDate != nil {
		fmt.Fprintf(&b, "Effective Date: %s\n", *extraction.EffectiveDate)
	}
	if extraction.TerminationDate != nil {
		fmt.Fprintf(&b, "Termination Date: %s\n", *extraction.TerminationDate)
	}
	b.WriteString("\n")

	b.WriteString("EXTRACTED CLAUSES\n")
	b.WriteString("─────────────────\n")
	for _, clause := range extraction.Clauses {
		ref := "N/A"
		if clause.SectionReference != nil {
			ref = *clause.SectionReference
		}
		fmt.Fprintf(&b, "\n[%s] %s (Ref: %s)\n  Importance: %s\n  Text: %s\n",
			strings.ToUpper(clause.ClauseType), clause.Title, ref, clause.Importance, clause.Text)
	}
	b.WriteString("\n")

	b.WriteString("RISK ASSESSMENT\n")
	b.WriteString("───────────────\n")
	fmt.Fprintf(&b, "Overall Score: %d/100 (%s)\n\n", risk.OverallScore, strings.ToUpper(risk.RiskLevel))

	if len(risk.Flags) > 0 {
		b.WriteString("Risk Flags:\n")
		for _, flag := range risk.Flags {
			ref := "General"
			if flag.ClauseReference != nil {
				ref = *flag.ClauseReference
			}
			fmt.Fprintf(&b, "\n  [%s - %s] %s\n    Ref: %s\n",
				strings.ToUpper(flag.Severity), strings.ToUpper(flag.Category), flag.Description, ref)
			if flag.Suggestion != nil {
				fmt.Fprintf(&b, "    Suggestion: %s\n", *flag.Suggestion)
			}
		}
	}

	b.WriteString("\n═══════════════════════════════════════════════════\n")
	b.WriteString("Generated by Legal Document Review Assistant\n")

	return b.String()
}
