package model

import (
	"time"

	"gorm.io/datatypes"
)

// Risk level constants, shared by assessments, flags and differences
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// RiskLevelForScore derives a level from a 0-100 score. The engine's own
// stated level is always trusted as-is; this derivation exists for rule-based
// flags and validation tooling.
func RiskLevelForScore(score int) string {
	switch {
	case score < 34:
		return RiskLow
	case score < 67:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Extraction is one analysis run's structured clause output. Append-only;
// the newest record per document is the authoritative one.
type Extraction struct {
	ID               string         `gorm:"primaryKey" json:"id"`
	DocumentID       string         `gorm:"not null;index" json:"document_id"`
	AIProvider       string         `gorm:"not null" json:"ai_provider"`
	AIModel          *string        `json:"ai_model,omitempty"`
	ContractType     string         `gorm:"not null" json:"contract_type"`
	ExtractedData    datatypes.JSON `gorm:"not null" json:"extracted_data"`
	ConfidenceScore  *float64       `json:"confidence_score,omitempty"`
	ProcessingTimeMs *int64         `json:"processing_time_ms,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// ExtractedClause is a single clause within an extraction payload. Order is
// insertion order from the analysis engine.
type ExtractedClause struct {
	ClauseType       string  `json:"clause_type"`
	Title            string  `json:"title"`
	Text             string  `json:"text"`
	SectionReference *string `json:"section_reference,omitempty"`
	Importance       string  `json:"importance"`
}

// ExtractionData is the structured payload stored in Extraction.ExtractedData
type ExtractionData struct {
	Parties         []string          `json:"parties"`
	EffectiveDate   *string           `json:"effective_date,omitempty"`
	TerminationDate *string           `json:"termination_date,omitempty"`
	Clauses         []ExtractedClause `json:"clauses"`
	ContractType    string            `json:"contract_type"`
}

// HasClauseType reports whether any clause carries the given type tag
func (e *ExtractionData) HasClauseType(clauseType string) bool {
	for _, c := range e.Clauses {
		if c.ClauseType == clauseType {
			return true
		}
	}
	return false
}

// RiskAssessment is one analysis run's scored risk evaluation. It always
// references the extraction it was derived from. Append-only, newest-wins.
type RiskAssessment struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	DocumentID   string         `gorm:"not null;index" json:"document_id"`
	ExtractionID string         `gorm:"not null" json:"extraction_id"`
	OverallScore int            `gorm:"not null" json:"overall_score"`
	RiskLevel    string         `gorm:"not null" json:"risk_level"`
	Flags        datatypes.JSON `gorm:"not null" json:"flags"`
	Summary      *string        `json:"summary,omitempty"`
	AIProvider   string         `gorm:"not null" json:"ai_provider"`
	CreatedAt    time.Time      `json:"created_at"`
}

// RiskFlag is a single identified risk within an assessment
type RiskFlag struct {
	Category        string  `json:"category"`
	Severity        string  `json:"severity"`
	Description     string  `json:"description"`
	ClauseReference *string `json:"clause_reference,omitempty"`
	Suggestion      *string `json:"suggestion,omitempty"`
}

// RiskDistribution counts assessments per risk level
type RiskDistribution struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}
