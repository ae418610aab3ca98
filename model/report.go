package model

import (
	"time"
)

// Report is a generated point-in-time summary of a document's latest
// analysis. Reports are never invalidated by later analyses.
type Report struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	DocumentID string    `gorm:"not null;index" json:"document_id"`
	ReportType string    `gorm:"not null" json:"report_type"`
	Content    string    `gorm:"not null" json:"content"`
	ExportPath *string   `json:"export_path,omitempty"`
	Format     string    `gorm:"not null;default:'text'" json:"format"`
	CreatedAt  time.Time `json:"created_at"`
}

// Template is a reference contract that documents can be compared against
type Template struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	ContractType  string    `gorm:"not null" json:"contract_type"`
	Description   *string   `json:"description,omitempty"`
	RawText       string    `gorm:"not null" json:"raw_text"`
	ExtractedData *string   `json:"extracted_data,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
