package model

import (
	"time"

	"gorm.io/datatypes"
)

// Comparison type tags
const (
	ComparisonDocVsDoc      = "document_vs_document"
	ComparisonDocVsTemplate = "document_vs_template"
)

// Difference diff_type tags. Anything else from the engine is kept verbatim
// as an administrative tag.
const (
	DiffSubstantive = "substantive"
	DiffFormatting  = "formatting"
)

// Comparison is a structured diff between two documents, or between a
// document and a template. Append-only.
type Comparison struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	DocumentAID    string         `gorm:"not null;index" json:"document_a_id"`
	DocumentBID    *string        `json:"document_b_id,omitempty"`
	TemplateID     *string        `json:"template_id,omitempty"`
	ComparisonType string         `gorm:"not null" json:"comparison_type"`
	Differences    datatypes.JSON `gorm:"not null" json:"differences"`
	Summary        *string        `json:"summary,omitempty"`
	AIProvider     *string        `json:"ai_provider,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Difference is one entry in a comparison's difference list. Display order is
// the order the engine returned; no re-sorting happens below the UI.
type Difference struct {
	Category     string  `json:"category"`
	DiffType     string  `json:"diff_type"`
	Description  string  `json:"description"`
	TextA        *string `json:"text_a,omitempty"`
	TextB        *string `json:"text_b,omitempty"`
	Significance string  `json:"significance"`
}
