package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"formguard/internal/models"
	"formguard/internal/vectorstore"

	"go.uber.org/zap"
)

// rawExcerptLimit bounds how much of an unparseable LLM response is retained
// for diagnosis.
const rawExcerptLimit = 500

// VerdictGenerator is the reasoning backend: one prompt in, free text out.
type VerdictGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ReasonerService turns an extracted-field record plus retrieved policy
// evidence into a structured compliance verdict. The judgment itself is
// delegated to the language model; this service owns the exact payload sent
// to it and the strict parsing of what comes back.
type ReasonerService struct {
	generator VerdictGenerator
	logger    *zap.Logger
}

func NewReasonerService(generator VerdictGenerator, logger *zap.Logger) *ReasonerService {
	return &ReasonerService{
		generator: generator,
		logger:    logger,
	}
}

// verdict mirrors the JSON schema the model is instructed to return.
type verdict struct {
	Status            string                   `json:"status"`
	CompletenessScore int                      `json:"completeness_score"`
	ComplianceScore   int                      `json:"compliance_score"`
	MissingFields     []string                 `json:"missing_fields"`
	PolicyViolations  []models.PolicyViolation `json:"policy_violations"`
	Recommendations   []string                 `json:"recommendations"`
	Summary           string                   `json:"summary"`
}

// Assess validates the record against the evidence. It always returns a
// well-formed result; every failure becomes a status=ERROR verdict.
func (s *ReasonerService) Assess(ctx context.Context, record models.ExtractedFieldRecord, evidence []vectorstore.SearchResult) *models.ValidationResult {
	record = record.Normalized()

	prompt, err := s.buildPrompt(record, evidence)
	if err != nil {
		return s.errorResult(record.FormType, len(evidence), fmt.Sprintf("Failed to prepare validation request: %v", err), "")
	}

	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("Reasoning service call failed", zap.Error(err))
		return s.errorResult(record.FormType, len(evidence), fmt.Sprintf("Validation failed due to technical error: %v", err), "")
	}

	v, err := parseVerdict(response)
	if err != nil {
		s.logger.Warn("Could not parse verdict from response", zap.Error(err))
		return s.errorResult(record.FormType, len(evidence), "Could not parse validation response", excerpt(response))
	}

	result := &models.ValidationResult{
		Status:            models.ValidationStatus(v.Status),
		CompletenessScore: s.clampScore(v.CompletenessScore, "completeness_score"),
		ComplianceScore:   s.clampScore(v.ComplianceScore, "compliance_score"),
		MissingFields:     v.MissingFields,
		PolicyViolations:  v.PolicyViolations,
		Recommendations:   v.Recommendations,
		Summary:           v.Summary,
		FormType:          record.FormType,
		PoliciesChecked:   len(evidence),
	}
	if result.MissingFields == nil {
		result.MissingFields = []string{}
	}
	if result.PolicyViolations == nil {
		result.PolicyViolations = []models.PolicyViolation{}
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}

	switch result.Status {
	case models.StatusApproved, models.StatusRejected, models.StatusNeedsReview:
	default:
		s.logger.Warn("Reasoning service returned unknown status", zap.String("status", v.Status))
		return s.errorResult(record.FormType, len(evidence),
			fmt.Sprintf("Reasoning service returned unknown status %q", v.Status), excerpt(response))
	}

	return result
}

func (s *ReasonerService) buildPrompt(record models.ExtractedFieldRecord, evidence []vectorstore.SearchResult) (string, error) {
	formSummary, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render extracted record: %w", err)
	}

	var contextBlock strings.Builder
	for i, chunk := range evidence {
		if i > 0 {
			contextBlock.WriteString("\n\n")
		}
		fmt.Fprintf(&contextBlock, "POLICY DOCUMENT %d:\n%s", i+1, chunk.Document)
	}

	prompt := fmt.Sprintf(`You are a bank form validation expert. Your task is to validate the extracted form data against the bank's policies.

EXTRACTED FORM DATA:
%s

RELEVANT BANK POLICIES:
%s

Based on the policies, validate the form and provide:

1. Completeness Check: Are all required fields filled?
2. Policy Compliance: Does the data comply with bank policies?
3. Specific Violations: List any policy violations with details
4. Missing Information: What information is missing?
5. Recommendations: What should be corrected or added?
6. Final Status: APPROVED / REJECTED / NEEDS_REVIEW

Return your analysis in the following JSON format:
{
  "status": "APPROVED/REJECTED/NEEDS_REVIEW",
  "completeness_score": 0-100,
  "compliance_score": 0-100,
  "missing_fields": ["list of missing required fields"],
  "policy_violations": [
    {
      "field": "field name",
      "issue": "description of violation",
      "policy": "relevant policy rule",
      "severity": "high/medium/low"
    }
  ],
  "recommendations": ["list of recommendations"],
  "summary": "Brief summary of validation result"
}

Be thorough and specific in your validation.`, formSummary, contextBlock.String())

	return prompt, nil
}

// parseVerdict decodes the model's response: a strict decode of the whole
// text first, then the outermost brace-delimited substring as a fallback for
// responses wrapped in prose or markdown fences.
func parseVerdict(response string) (*verdict, error) {
	content := strings.TrimSpace(response)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var v verdict
	if err := json.Unmarshal([]byte(content), &v); err == nil {
		return &v, nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &v); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return &v, nil
}

// clampScore forces a score into [0,100]. An out-of-range value means the
// model drifted from the schema, which is worth a log line but not a failed
// validation.
func (s *ReasonerService) clampScore(score int, name string) int {
	if score < 0 || score > 100 {
		s.logger.Warn("Score out of range, clamping", zap.String("field", name), zap.Int("value", score))
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func (s *ReasonerService) errorResult(formType string, policiesChecked int, summary, raw string) *models.ValidationResult {
	result := models.ErrorResult(formType, summary)
	result.PoliciesChecked = policiesChecked
	result.RawResponse = raw
	return result
}

// excerpt truncates on a rune boundary so the retained text stays valid UTF-8.
func excerpt(response string) string {
	if len(response) <= rawExcerptLimit {
		return response
	}
	cut := rawExcerptLimit
	for cut > 0 && !utf8.RuneStart(response[cut]) {
		cut--
	}
	return response[:cut]
}
