package service

import (
	"testing"

	"github.com/saagar210/LegalDocsReview/model"
)

func clausesOf(types ...string) []model.ExtractedClause {
	clauses := make([]model.ExtractedClause, len(types))
	for i, ct := range types {
		clauses[i] = model.ExtractedClause{ClauseType: ct, Title: ct, Text: "...", Importance: "medium"}
	}
	return clauses
}

func hasFlag(flags []model.RiskFlag, category, severity string) bool {
	for _, f := range flags {
		if f.Category == category && f.Severity == severity {
			return true
		}
	}
	return false
}

func TestRulesMissingGoverningLaw(t *testing.T) {
	ext := &model.ExtractionData{Clauses: clausesOf("termination")}

	flags := applyRiskRules(ext, model.ContractTypeLease)
	if !hasFlag(flags, "governing_law", model.RiskMedium) {
		t.Error("Expected medium governing_law flag")
	}
}

func TestRulesMissingTermination(t *testing.T) {
	ext := &model.ExtractionData{Clauses: clausesOf("governing_law")}

	flags := applyRiskRules(ext, model.ContractTypeLease)
	if !hasFlag(flags, "termination", model.RiskHigh) {
		t.Error("Expected high termination flag")
	}
}

func TestRulesTerminationSatisfiedByVariants(t *testing.T) {
	// any of these clause types should count as termination coverage
	for _, ct := range []string{"termination", "term_and_duration", "lease_term"} {
		ext := &model.ExtractionData{Clauses: clausesOf("governing_law", ct)}
		flags := applyRiskRules(ext, model.ContractTypeLease)
		if hasFlag(flags, "termination", model.RiskHigh) {
			t.Errorf("Clause type %q should satisfy the termination rule", ct)
		}
	}
}

func TestRulesNDAMissingExclusions(t *testing.T) {
	ext := &model.ExtractionData{Clauses: clausesOf("governing_law", "termination", "term_and_duration")}

	flags := applyRiskRules(ext, model.ContractTypeNDA)
	if !hasFlag(flags, "confidentiality", model.RiskHigh) {
		t.Error("Expected high confidentiality flag for missing exclusions")
	}
}

func TestRulesNDAPerpetualDuration(t *testing.T) {
	ext := &model.ExtractionData{Clauses: clausesOf("governing_law", "termination", "exclusions")}

	flags := applyRiskRules(ext, model.ContractTypeNDA)
	if !hasFlag(flags, "termination", model.RiskMedium) {
		t.Error("Expected medium termination flag for perpetual NDA")
	}

	// a termination date satisfies the rule even without a duration clause
	date := "2027-01-01"
	ext.TerminationDate = &date
	flags = applyRiskRules(ext, model.ContractTypeNDA)
	if hasFlag(flags, "termination", model.RiskMedium) {
		t.Error("Termination date should satisfy the duration rule")
	}
}

func TestRulesServiceAgreement(t *testing.T) {
	ext := &model.ExtractionData{Clauses: clausesOf("governing_law", "termination")}

	flags := applyRiskRules(ext, model.ContractTypeServiceAgreement)
	if !hasFlag(flags, "indemnification", model.RiskHigh) {
		t.Error("Expected high indemnification flag")
	}
	if !hasFlag(flags, "liability", model.RiskHigh) {
		t.Error("Expected high liability flag")
	}
	if !hasFlag(flags, "other", model.RiskMedium) {
		t.Error("Expected medium IP flag")
	}
}

func TestRulesLease(t *testing.T) {
	ext := &model.ExtractionData{Clauses: clausesOf("governing_law", "lease_term")}

	flags := applyRiskRules(ext, model.ContractTypeLease)
	if !hasFlag(flags, "payment", model.RiskMedium) {
		t.Error("Expected medium security deposit flag")
	}
}

func TestRulesCleanContractHasNoFlags(t *testing.T) {
	ext := &model.ExtractionData{
		Clauses: clausesOf("governing_law", "termination", "exclusions", "term_and_duration"),
	}

	flags := applyRiskRules(ext, model.ContractTypeNDA)
	if len(flags) != 0 {
		t.Errorf("Expected no flags for a complete NDA, got %d", len(flags))
	}
}
