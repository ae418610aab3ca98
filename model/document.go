package model

import (
	"time"
)

// ContractType constants
const (
	ContractTypeNDA              = "nda"
	ContractTypeServiceAgreement = "service_agreement"
	ContractTypeLease            = "lease"
)

// ValidContractType reports whether t is a recognized contract type
func ValidContractType(t string) bool {
	switch t {
	case ContractTypeNDA, ContractTypeServiceAgreement, ContractTypeLease:
		return true
	}
	return false
}

// ContractTypeDisplayName returns the human-readable name for a contract type
func ContractTypeDisplayName(t string) string {
	switch t {
	case ContractTypeNDA:
		return "Non-Disclosure Agreement"
	case ContractTypeServiceAgreement:
		return "Service Agreement"
	case ContractTypeLease:
		return "Lease Agreement"
	default:
		return t
	}
}

// Document represents an uploaded contract and its processing state
type Document struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"not null" json:"filename"`
	OriginalPath string    `gorm:"not null" json:"original_path"`
	StoredPath   string    `gorm:"not null" json:"stored_path"`
	FileHash     string    `gorm:"not null" json:"file_hash"`
	FileSize     int64     `gorm:"not null" json:"file_size"`
	ContractType string    `gorm:"not null" json:"contract_type"`
	RawText      *string   `json:"raw_text,omitempty"`
	PageCount    *int      `json:"page_count,omitempty"`
	Status       Status    `gorm:"column:processing_status;not null;default:'pending';index" json:"processing_status"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRawText reports whether extracted text is present and non-empty
func (d *Document) HasRawText() bool {
	return d.RawText != nil && *d.RawText != ""
}

// DocumentStats is the aggregate view over all documents.
// pending counts both pending and extracted documents: neither has been
// analyzed yet.
type DocumentStats struct {
	Total    int64 `json:"total"`
	Analyzed int64 `json:"analyzed"`
	Pending  int64 `json:"pending"`
	Failed   int64 `json:"failed"`
}
