package models

// UnfilledValue is the sentinel the extraction component uses for a field
// that is present on the form but left empty.
const UnfilledValue = "UNFILLED"

// ValidationStatus is the final verdict for one validation call.
type ValidationStatus string

const (
	StatusApproved    ValidationStatus = "APPROVED"
	StatusRejected    ValidationStatus = "REJECTED"
	StatusNeedsReview ValidationStatus = "NEEDS_REVIEW"
	StatusError       ValidationStatus = "ERROR"
)

// ExtractedField is a single field observed on the form.
type ExtractedField struct {
	Value    string `json:"value"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Filled reports whether the field carries an actual value.
func (f ExtractedField) Filled() bool {
	return f.Value != "" && f.Value != UnfilledValue
}

// ExtractedFieldRecord is the read-only input produced by the upstream
// extraction component. The validator only reads FormType and
// ExtractedFields; the derived lists travel through untouched.
type ExtractedFieldRecord struct {
	FormType        string                    `json:"form_type"`
	FormCategory    string                    `json:"form_category,omitempty"`
	ExtractedFields map[string]ExtractedField `json:"extracted_fields"`
	FilledFields    []string                  `json:"filled_fields,omitempty"`
	UnfilledFields  []string                  `json:"unfilled_fields,omitempty"`
	TotalFields     int                       `json:"total_fields,omitempty"`
	Confidence      string                    `json:"confidence,omitempty"`
	Error           string                    `json:"error,omitempty"`
}

// Normalized returns a copy safe for the pipeline: a missing form type
// degrades to "Unknown" and a missing field map to an empty one, so malformed
// input travels through as a degraded record instead of a crash.
func (r ExtractedFieldRecord) Normalized() ExtractedFieldRecord {
	out := r
	if out.FormType == "" {
		out.FormType = "Unknown"
	}
	if out.ExtractedFields == nil {
		out.ExtractedFields = map[string]ExtractedField{}
	}
	return out
}

// PolicyViolation is one rule breach found by the compliance check.
type PolicyViolation struct {
	Field    string `json:"field"`
	Issue    string `json:"issue"`
	Policy   string `json:"policy"`
	Severity string `json:"severity"`
}

// ValidationResult is the structured verdict for one validation call.
// Created fresh per call, never merged with a prior result.
type ValidationResult struct {
	Status            ValidationStatus  `json:"status"`
	CompletenessScore int               `json:"completeness_score"`
	ComplianceScore   int               `json:"compliance_score"`
	MissingFields     []string          `json:"missing_fields"`
	PolicyViolations  []PolicyViolation `json:"policy_violations"`
	Recommendations   []string          `json:"recommendations"`
	Summary           string            `json:"summary"`
	FormType          string            `json:"form_type"`
	PoliciesChecked   int               `json:"policies_checked"`
	RawResponse       string            `json:"raw_response,omitempty"`
}

// ErrorResult builds the well-formed shape every failure path returns.
func ErrorResult(formType, summary string) *ValidationResult {
	return &ValidationResult{
		Status:           StatusError,
		MissingFields:    []string{},
		PolicyViolations: []PolicyViolation{},
		Recommendations:  []string{},
		Summary:          summary,
		FormType:         formType,
	}
}
