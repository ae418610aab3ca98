package service

import (
	"fmt"

	"github.com/saagar210/LegalDocsReview/model"
)

// Prompt construction for the AI engine. Every JSON-producing prompt embeds
// the exact schema the response is validated against.

func analysisSystemPrompt(contractType string) string {
	return fmt.Sprintf(
		"You are a legal document analysis expert specializing in %s. "+
			"Extract key clauses and assess risk in a single pass. "+
			"You MUST respond with valid JSON only - no markdown, no explanations, no preamble.",
		model.ContractTypeDisplayName(contractType))
}

func analysisUserPrompt(text, contractType string) string {
	return fmt.Sprintf(
		"Analyze the following %s. Extract all key clauses AND provide a risk assessment in one response.\n\n"+
			"RULES:\n"+
			"1. Quote exact text from the document - do not paraphrase\n"+
			"2. Use null for any clause or field not found in the document\n"+
			"3. Score overall risk 0-100 (0=no risk, 100=extreme risk)\n"+
			"4. Set risk_level to \"low\" (0-33), \"medium\" (34-66), or \"high\" (67-100)\n"+
			"5. Common risks: missing indemnification cap, one-sided termination, auto-renewal traps, "+
			"broad non-compete, unlimited liability, missing governing law\n"+
			"6. Respond with ONLY the JSON object below - no other text\n\n"+
			"JSON Schema:\n%s\n\n"+
			"DOCUMENT TEXT:\n---\n%s\n---",
		model.ContractTypeDisplayName(contractType),
		analysisSchema(contractType),
		text)
}

func analysisSchema(contractType string) string {
	return fmt.Sprintf(`{
  "extraction": {
    "parties": ["string"],
    "effective_date": "YYYY-MM-DD or null",
    "termination_date": "YYYY-MM-DD or null",
    "contract_type": %q,
    "clauses": [
      {
        "clause_type": "string (e.g. %s)",
        "title": "string",
        "text": "exact quoted text",
        "section_reference": "string or null",
        "importance": "high|medium|low"
      }
    ]
  },
  "risk": {
    "overall_score": 0,
    "risk_level": "low|medium|high",
    "summary": "2-3 sentence risk summary",
    "flags": [
      {
        "category": "string",
        "severity": "high|medium|low",
        "description": "string",
        "clause_reference": "string or null",
        "suggestion": "string or null"
      }
    ]
  }
}`, contractType, clauseTypeHints(contractType))
}

func clauseTypeHints(contractType string) string {
	switch contractType {
	case model.ContractTypeNDA:
		return "confidentiality, exclusions, term_and_duration, governing_law, non_compete"
	case model.ContractTypeServiceAgreement:
		return "scope_of_services, payment_terms, term_and_termination, indemnification, limitation_of_liability, intellectual_property, governing_law"
	case model.ContractTypeLease:
		return "premises_description, rent_and_payment, lease_term, security_deposit, maintenance_and_repairs, governing_law"
	default:
		return "confidentiality, termination, governing_law"
	}
}

func comparisonSystemPrompt() string {
	return "You are a legal document comparison expert. Compare two contract versions and categorize differences. " +
		"You MUST respond with valid JSON only - no markdown, no explanations, no preamble."
}

func comparisonUserPrompt(textA, textB, contractType string) string {
	return fmt.Sprintf(
		"Compare these two versions of a %s and identify all differences.\n\n"+
			"RULES:\n"+
			"1. Categorize each difference as \"substantive\" or \"formatting\"\n"+
			"2. Rate significance as \"high\", \"medium\", or \"low\"\n"+
			"3. Quote exact text from each document\n"+
			"4. Respond with ONLY the JSON object below - no other text\n\n"+
			"JSON Schema:\n%s\n\n"+
			"DOCUMENT A:\n---\n%s\n---\n\n"+
			"DOCUMENT B:\n---\n%s\n---",
		model.ContractTypeDisplayName(contractType),
		comparisonSchema,
		textA,
		textB)
}

const comparisonSchema = `{
  "summary": "1-2 sentence overview of how the versions differ",
  "differences": [
    {
      "category": "string (e.g. payment, termination, liability)",
      "diff_type": "substantive|formatting",
      "description": "what changed",
      "text_a": "exact text from document A or null",
      "text_b": "exact text from document B or null",
      "significance": "high|medium|low"
    }
  ]
}`

func summarySystemPrompt() string {
	return "You are a legal document summarizer. Write a concise, client-ready executive summary. " +
		"Respond with plain text only - no JSON, no markdown headers."
}

func summaryUserPrompt(extractionJSON, riskJSON string) string {
	return fmt.Sprintf(
		"Write a 2-3 paragraph executive summary of this contract review for a client.\n\n"+
			"Include:\n"+
			"- What kind of agreement this is and who the parties are\n"+
			"- The overall risk posture and the most important concerns\n"+
			"- What the client should do before signing\n\n"+
			"EXTRACTED DATA:\n%s\n\n"+
			"RISK ASSESSMENT:\n%s",
		extractionJSON,
		riskJSON)
}
