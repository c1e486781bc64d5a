package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"formguard/internal/models"
	"formguard/internal/vectorstore"
)

// stubGenerator returns a fixed response and captures the prompt it was given.
type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

const cleanVerdict = `{
  "status": "APPROVED",
  "completeness_score": 95,
  "compliance_score": 90,
  "missing_fields": [],
  "policy_violations": [],
  "recommendations": ["Attach a second photograph"],
  "summary": "Form satisfies all policy requirements"
}`

func loanRecord() models.ExtractedFieldRecord {
	return models.ExtractedFieldRecord{
		FormType: "Personal Loan Application",
		ExtractedFields: map[string]models.ExtractedField{
			"age":  {Value: "30", Type: "number", Required: true},
			"name": {Value: "A Kumar", Type: "text", Required: true},
		},
	}
}

func loanEvidence() []vectorstore.SearchResult {
	return []vectorstore.SearchResult{
		{Document: "Personal Loan minimum age is 21 years"},
		{Document: "Personal Loan requires salary slips for 3 months"},
	}
}

func TestAssessParsesCleanJSON(t *testing.T) {
	gen := &stubGenerator{response: cleanVerdict}
	svc := NewReasonerService(gen, zap.NewNop())

	result := svc.Assess(context.Background(), loanRecord(), loanEvidence())

	assert.Equal(t, models.StatusApproved, result.Status)
	assert.Equal(t, 95, result.CompletenessScore)
	assert.Equal(t, 90, result.ComplianceScore)
	assert.Equal(t, []string{"Attach a second photograph"}, result.Recommendations)
	assert.Equal(t, "Personal Loan Application", result.FormType)
	assert.Equal(t, 2, result.PoliciesChecked)
	assert.Empty(t, result.RawResponse)
}

func TestAssessParsesMarkdownFencedJSON(t *testing.T) {
	gen := &stubGenerator{response: "```json\n" + cleanVerdict + "\n```"}
	svc := NewReasonerService(gen, zap.NewNop())

	result := svc.Assess(context.Background(), loanRecord(), loanEvidence())
	assert.Equal(t, models.StatusApproved, result.Status)
}

func TestAssessParsesProseWrappedJSON(t *testing.T) {
	gen := &stubGenerator{response: "Here is my analysis of the form:\n" + cleanVerdict + "\nLet me know if you need more detail."}
	svc := NewReasonerService(gen, zap.NewNop())

	result := svc.Assess(context.Background(), loanRecord(), loanEvidence())
	assert.Equal(t, models.StatusApproved, result.Status)
	assert.Equal(t, 95, result.CompletenessScore)
}

func TestAssessUnparseableResponse(t *testing.T) {
	long := strings.Repeat("x", 800)
	gen := &stubGenerator{response: long}
	svc := NewReasonerService(gen, zap.NewNop())

	result := svc.Assess(context.Background(), loanRecord(), loanEvidence())

	assert.Equal(t, models.StatusError, result.Status)
	assert.Equal(t, "Could not parse validation response", result.Summary)
	assert.Equal(t, 2, result.PoliciesChecked)
	assert.Len(t, result.RawResponse, 500)
	assert.NotNil(t, result.MissingFields)
	assert.NotNil(t, result.PolicyViolations)
	assert.NotNil(t, result.Recommendations)
}

func TestAssessExcerptKeepsValidUTF8(t *testing.T) {
	// 200 three-byte runes: the 500-byte cut would land mid-rune.
	gen := &stubGenerator{response: strings.Repeat("₹", 200)}
	svc := NewReasonerService(gen, zap.NewNop())

	result := svc.Assess(context.Background(), loanRecord(), loanEvidence())

	assert.Equal(t, models.StatusError, result.Status)
	assert.LessOrEqual(t, len(result.RawResponse), 500)
	assert.True(t, utf8.ValidString(result.RawResponse))
	assert.Equal(t, 498, len(result.RawResponse))
}

func TestAssessGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream unavailable")}
	svc := NewReasonerService(gen, zap.NewNop())

	result := svc.Assess(context.Background(), loanRecord(), loanEvidence())

	assert.Equal(t, models.StatusError, result.Status)
	assert.Contains(t, result.Summary, "technical error")
	assert.Equal(t, "Personal Loan Application", result.FormType)
}

func TestAssessClampsScores(t *testing.T) {
	gen := &stubGenerator{response: `{
		"status": "NEEDS_REVIEW",
		"completeness_score": 150,
		"compliance_score": -20,
		"summary": "scores drifted"
	}`}
	svc := NewReasonerService(gen, zap.NewNop())

	result := svc.Assess(context.Background(), loanRecord(), loanEvidence())

	assert.Equal(t, models.StatusNeedsReview, result.Status)
	assert.Equal(t, 100, result.CompletenessScore)
	assert.Equal(t, 0, result.ComplianceScore)
}

func TestAssessUnknownStatus(t *testing.T) {
	gen := &stubGenerator{response: `{"status": "MAYBE", "summary": "unsure"}`}
	svc := NewReasonerService(gen, zap.NewNop())

	result := svc.Assess(context.Background(), loanRecord(), loanEvidence())

	assert.Equal(t, models.StatusError, result.Status)
	assert.Contains(t, result.Summary, `"MAYBE"`)
	assert.NotEmpty(t, result.RawResponse)
}

func TestAssessNilSlicesBecomeEmpty(t *testing.T) {
	gen := &stubGenerator{response: `{"status": "REJECTED", "summary": "missing documents"}`}
	svc := NewReasonerService(gen, zap.NewNop())

	result := svc.Assess(context.Background(), loanRecord(), loanEvidence())

	assert.Equal(t, models.StatusRejected, result.Status)
	assert.Equal(t, []string{}, result.MissingFields)
	assert.Equal(t, []models.PolicyViolation{}, result.PolicyViolations)
	assert.Equal(t, []string{}, result.Recommendations)
}

func TestAssessPromptContainsRecordAndEvidence(t *testing.T) {
	gen := &stubGenerator{response: cleanVerdict}
	svc := NewReasonerService(gen, zap.NewNop())

	svc.Assess(context.Background(), loanRecord(), loanEvidence())

	assert.Contains(t, gen.prompt, "Personal Loan Application")
	assert.Contains(t, gen.prompt, `"age"`)
	assert.Contains(t, gen.prompt, "POLICY DOCUMENT 1:\nPersonal Loan minimum age is 21 years")
	assert.Contains(t, gen.prompt, "POLICY DOCUMENT 2:\nPersonal Loan requires salary slips for 3 months")
	assert.Less(t,
		strings.Index(gen.prompt, "EXTRACTED FORM DATA:"),
		strings.Index(gen.prompt, "RELEVANT BANK POLICIES:"),
	)
}

func TestAssessNormalizesDegradedRecord(t *testing.T) {
	gen := &stubGenerator{response: cleanVerdict}
	svc := NewReasonerService(gen, zap.NewNop())

	result := svc.Assess(context.Background(), models.ExtractedFieldRecord{}, nil)

	assert.Equal(t, "Unknown", result.FormType)
	assert.Equal(t, models.StatusApproved, result.Status)
	assert.Equal(t, 0, result.PoliciesChecked)
}

func TestParseVerdictRejectsNonJSON(t *testing.T) {
	_, err := parseVerdict("no structured content here")
	require.Error(t, err)

	_, err = parseVerdict("unbalanced { brace")
	require.Error(t, err)
}
