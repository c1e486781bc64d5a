package dto

import "time"

// RebuildIndexResponse reports the outcome of an index rebuild.
type RebuildIndexResponse struct {
	IndexedChunks int    `json:"indexed_chunks"`
	Message       string `json:"message"`
}

// PolicySearchResult is one vector-store hit exposed over the API.
type PolicySearchResult struct {
	Rank       int     `json:"rank"`
	Document   string  `json:"document"`
	SourceFile string  `json:"source_file"`
	FormType   string  `json:"form_type"`
	Similarity float64 `json:"similarity"`
}

// ValidationHistoryItem is one persisted verdict in the history listing.
type ValidationHistoryItem struct {
	ID                string    `json:"id"`
	FormType          string    `json:"form_type"`
	Status            string    `json:"status"`
	CompletenessScore int       `json:"completeness_score"`
	ComplianceScore   int       `json:"compliance_score"`
	PoliciesChecked   int       `json:"policies_checked"`
	CreatedAt         time.Time `json:"created_at"`
}
