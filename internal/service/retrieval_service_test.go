package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"formguard/internal/models"
	"formguard/internal/vectorstore"
)

// stubSearcher returns canned results per query and records the queries it saw.
type stubSearcher struct {
	results map[string][]vectorstore.SearchResult
	errs    map[string]error
	queries []string
}

func (s *stubSearcher) Search(_ context.Context, query string, _ int) ([]vectorstore.SearchResult, error) {
	s.queries = append(s.queries, query)
	if err, ok := s.errs[query]; ok {
		return nil, err
	}
	return s.results[query], nil
}

func hit(doc string) vectorstore.SearchResult {
	return vectorstore.SearchResult{Document: doc, Similarity: 0.5}
}

func fieldsNamed(names ...string) map[string]models.ExtractedField {
	fields := make(map[string]models.ExtractedField, len(names))
	for _, n := range names {
		fields[n] = models.ExtractedField{Value: "x", Type: "text", Required: true}
	}
	return fields
}

func TestExpandQueriesTemplates(t *testing.T) {
	svc := NewRetrievalService(&stubSearcher{}, 5, zap.NewNop())
	queries := svc.ExpandQueries("Personal Loan Application", nil)

	assert.Equal(t, []string{
		"Personal Loan Application requirements eligibility",
		"Personal Loan Application documents needed",
		"Personal Loan Application age limits",
		"Personal Loan Application validation rules",
	}, queries)
}

func TestExpandQueriesIncludesFields(t *testing.T) {
	svc := NewRetrievalService(&stubSearcher{}, 5, zap.NewNop())
	queries := svc.ExpandQueries("Savings Account Application", fieldsNamed("age", "name"))

	require.Len(t, queries, 6)
	assert.Contains(t, queries, "Savings Account Application age requirements")
	assert.Contains(t, queries, "Savings Account Application name requirements")
}

func TestExpandQueriesCapsFieldQueries(t *testing.T) {
	svc := NewRetrievalService(&stubSearcher{}, 5, zap.NewNop())
	fields := fieldsNamed("a", "b", "c", "d", "e", "f", "g")
	queries := svc.ExpandQueries("Form", fields)

	assert.Len(t, queries, 4+5)
	// Field names are taken in sorted order, so the first five win.
	assert.Contains(t, queries, "Form e requirements")
	assert.NotContains(t, queries, "Form f requirements")
	assert.NotContains(t, queries, "Form g requirements")
}

func TestSelectEvidenceDeduplicatesKeepingFirst(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]vectorstore.SearchResult{
		"Form requirements eligibility": {hit("chunk A"), hit("chunk B")},
		"Form documents needed":         {hit("chunk B"), hit("chunk C")},
		"Form age limits":               {hit("chunk A")},
	}}
	svc := NewRetrievalService(searcher, 5, zap.NewNop())

	evidence, err := svc.SelectEvidence(context.Background(), "Form", nil)
	require.NoError(t, err)

	docs := make([]string, len(evidence))
	for i, e := range evidence {
		docs[i] = e.Document
	}
	assert.Equal(t, []string{"chunk A", "chunk B", "chunk C"}, docs)
}

func TestSelectEvidenceCapsAtTwiceTopK(t *testing.T) {
	results := make(map[string][]vectorstore.SearchResult)
	for i, q := range []string{
		"Form requirements eligibility",
		"Form documents needed",
		"Form age limits",
		"Form validation rules",
	} {
		results[q] = []vectorstore.SearchResult{
			hit(fmt.Sprintf("chunk %d-1", i)),
			hit(fmt.Sprintf("chunk %d-2", i)),
			hit(fmt.Sprintf("chunk %d-3", i)),
		}
	}
	searcher := &stubSearcher{results: results}
	svc := NewRetrievalService(searcher, 2, zap.NewNop())

	evidence, err := svc.SelectEvidence(context.Background(), "Form", nil)
	require.NoError(t, err)
	assert.Len(t, evidence, 4)
	assert.Equal(t, "chunk 0-1", evidence[0].Document)
}

func TestSelectEvidenceSkipsFailedSubQueries(t *testing.T) {
	searcher := &stubSearcher{
		results: map[string][]vectorstore.SearchResult{
			"Form requirements eligibility": {hit("chunk A")},
			"Form age limits":               {hit("chunk B")},
		},
		errs: map[string]error{
			"Form documents needed": errors.New("embedding backend timeout"),
		},
	}
	svc := NewRetrievalService(searcher, 5, zap.NewNop())

	evidence, err := svc.SelectEvidence(context.Background(), "Form", nil)
	require.NoError(t, err)
	require.Len(t, evidence, 2)
	assert.Equal(t, "chunk A", evidence[0].Document)
	assert.Equal(t, "chunk B", evidence[1].Document)
	assert.Len(t, searcher.queries, 4, "remaining queries still run after a failure")
}

func TestSelectEvidenceFailsWhenAllQueriesFail(t *testing.T) {
	searcher := &stubSearcher{errs: map[string]error{
		"Form requirements eligibility": errors.New("embedding backend timeout"),
		"Form documents needed":         errors.New("embedding backend timeout"),
		"Form age limits":               errors.New("embedding backend timeout"),
		"Form validation rules":         errors.New("embedding backend timeout"),
	}}
	svc := NewRetrievalService(searcher, 5, zap.NewNop())

	_, err := svc.SelectEvidence(context.Background(), "Form", nil)
	assert.ErrorContains(t, err, "policy queries failed")
}

func TestSelectEvidenceAbortsWhenIndexMissing(t *testing.T) {
	searcher := &stubSearcher{errs: map[string]error{
		"Form requirements eligibility": vectorstore.ErrNotBuilt,
	}}
	svc := NewRetrievalService(searcher, 5, zap.NewNop())

	_, err := svc.SelectEvidence(context.Background(), "Form", nil)
	assert.ErrorIs(t, err, vectorstore.ErrNotBuilt)
	assert.Len(t, searcher.queries, 1, "no further queries after an unusable index")
}

func TestSelectEvidenceHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewRetrievalService(&stubSearcher{}, 5, zap.NewNop())
	_, err := svc.SelectEvidence(ctx, "Form", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
