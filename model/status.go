package model

// Status is a document's processing status
type Status string

// Lifecycle: pending -> extracted -> analyzing -> analyzed, with error
// reachable from any of them. analyzed is re-entrant via analyzing.
const (
	StatusPending   Status = "pending"
	StatusExtracted Status = "extracted"
	StatusAnalyzing Status = "analyzing"
	StatusAnalyzed  Status = "analyzed"
	StatusError     Status = "error"
)

// ValidStatus reports whether s is one of the known statuses
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusExtracted, StatusAnalyzing, StatusAnalyzed, StatusError:
		return true
	}
	return false
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusExtracted, StatusError},
	StatusExtracted: {StatusAnalyzing, StatusError},
	StatusAnalyzing: {StatusAnalyzed, StatusError},
	StatusAnalyzed:  {StatusAnalyzing, StatusError},
	// error is not terminal: retry follows the same rules as a clean document
	StatusError: {StatusExtracted, StatusAnalyzing},
}

// CanTransition reports whether moving from one status to another is legal
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanStartAnalysis reports whether a document in this status may enter
// analyzing. Having raw text is the other precondition; the registry
// enforces it separately.
func CanStartAnalysis(s Status) bool {
	return CanTransition(s, StatusAnalyzing)
}

// RequiresRawText reports whether a document in this status must have
// non-null raw text. Violating this is a data-integrity bug.
func RequiresRawText(s Status) bool {
	switch s {
	case StatusExtracted, StatusAnalyzing, StatusAnalyzed:
		return true
	}
	return false
}
