package service

import (
	"strings"

	"github.com/saagar210/LegalDocsReview/model"
)

// Rule-based risk checks layered on top of the engine's own assessment.
// They catch structural omissions the engine sometimes misses: a clause
// type that simply is not present in the extraction.

func applyRiskRules(extraction *model.ExtractionData, contractType string) []model.RiskFlag {
	var flags []model.RiskFlag

	flags = appendMissingGoverningLaw(extraction, flags)
	flags = appendMissingTermination(extraction, flags)

	switch contractType {
	case model.ContractTypeNDA:
		flags = appendNDARules(extraction, flags)
	case model.ContractTypeServiceAgreement:
		flags = appendServiceRules(extraction, flags)
	case model.ContractTypeLease:
		flags = appendLeaseRules(extraction, flags)
	}

	return flags
}

func ruleFlag(category, severity, description, suggestion string) model.RiskFlag {
	return model.RiskFlag{
		Category:    category,
		Severity:    severity,
		Description: description,
		Suggestion:  &suggestion,
	}
}

func appendMissingGoverningLaw(extraction *model.ExtractionData, flags []model.RiskFlag) []model.RiskFlag {
	if extraction.HasClauseType("governing_law") {
		return flags
	}
	return append(flags, ruleFlag(
		"governing_law", model.RiskMedium,
		"No governing law clause found. Disputes may be harder to resolve without a specified jurisdiction.",
		"Add a governing law clause specifying the applicable jurisdiction.",
	))
}

func appendMissingTermination(extraction *model.ExtractionData, flags []model.RiskFlag) []model.RiskFlag {
	for _, c := range extraction.Clauses {
		if containsAny(c.ClauseType, "termination", "term_and", "lease_term") {
			return flags
		}
	}
	return append(flags, ruleFlag(
		"termination", model.RiskHigh,
		"No termination clause found. Without clear termination terms, exiting this agreement may be difficult.",
		"Add explicit termination provisions including notice period and termination for cause/convenience.",
	))
}

func appendNDARules(extraction *model.ExtractionData, flags []model.RiskFlag) []model.RiskFlag {
	if !extraction.HasClauseType("exclusions") {
		flags = append(flags, ruleFlag(
			"confidentiality", model.RiskHigh,
			"No exclusions to confidential information defined. This could mean publicly available information is improperly classified as confidential.",
			"Add standard exclusions: publicly available info, independently developed info, info received from third parties.",
		))
	}

	if !extraction.HasClauseType("term_and_duration") && extraction.TerminationDate == nil {
		flags = append(flags, ruleFlag(
			"termination", model.RiskMedium,
			"NDA has no specified duration or expiration. Confidentiality obligations may be perpetual.",
			"Specify a reasonable duration for confidentiality obligations (typically 2-5 years).",
		))
	}
	return flags
}

func appendServiceRules(extraction *model.ExtractionData, flags []model.RiskFlag) []model.RiskFlag {
	if !extraction.HasClauseType("indemnification") {
		flags = append(flags, ruleFlag(
			"indemnification", model.RiskHigh,
			"No indemnification clause found. Without indemnification, there is no protection against third-party claims.",
			"Add mutual indemnification with reasonable caps tied to contract value.",
		))
	}

	if !extraction.HasClauseType("limitation_of_liability") {
		flags = append(flags, ruleFlag(
			"liability", model.RiskHigh,
			"No limitation of liability clause found. Exposure to damages is potentially unlimited.",
			"Add a limitation of liability clause capping damages (typically 1-2x annual contract value).",
		))
	}

	if !extraction.HasClauseType("intellectual_property") {
		flags = append(flags, ruleFlag(
			"other", model.RiskMedium,
			"No intellectual property clause found. IP ownership of deliverables may be unclear.",
			"Add clear IP assignment or licensing terms for work product.",
		))
	}
	return flags
}

func appendLeaseRules(extraction *model.ExtractionData, flags []model.RiskFlag) []model.RiskFlag {
	if !extraction.HasClauseType("security_deposit") {
		flags = append(flags, ruleFlag(
			"payment", model.RiskMedium,
			"No security deposit clause found. Terms for deposit handling and return are undefined.",
			"Add security deposit terms including amount, conditions for withholding, and return timeline.",
		))
	}

	if !extraction.HasClauseType("maintenance_and_repairs") {
		flags = append(flags, ruleFlag(
			"other", model.RiskMedium,
			"No maintenance and repairs clause found. Responsibilities for property upkeep are unclear.",
			"Define maintenance responsibilities for both landlord and tenant.",
		))
	}
	return flags
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
