package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"formguard/internal/models"
	"formguard/internal/vectorstore"

	"go.uber.org/zap"
)

// perQueryTopK is the fan-in of each expanded query. Changing it changes
// which evidence reaches the reasoner, so it is a fixed design constant.
const perQueryTopK = 3

// maxFieldQueries bounds the query fan-out for forms with many fields.
const maxFieldQueries = 5

// PolicySearcher is the slice of the vector store the planner needs.
type PolicySearcher interface {
	Search(ctx context.Context, query string, topK int) ([]vectorstore.SearchResult, error)
}

// RetrievalService selects the policy evidence relevant to one extracted
// form. A single embedding of the form type alone under-retrieves policy
// nuances tied to specific fields, so it expands into targeted sub-queries
// and merges the results.
type RetrievalService struct {
	store  PolicySearcher
	topK   int
	logger *zap.Logger
}

func NewRetrievalService(store PolicySearcher, topK int, logger *zap.Logger) *RetrievalService {
	if topK <= 0 {
		topK = 5
	}
	return &RetrievalService{
		store:  store,
		topK:   topK,
		logger: logger,
	}
}

// ExpandQueries builds the canonical query set for a form: four fixed
// templates plus one query per extracted field name, capped to the first
// maxFieldQueries names in sorted order.
func (s *RetrievalService) ExpandQueries(formType string, fields map[string]models.ExtractedField) []string {
	queries := []string{
		fmt.Sprintf("%s requirements eligibility", formType),
		fmt.Sprintf("%s documents needed", formType),
		fmt.Sprintf("%s age limits", formType),
		fmt.Sprintf("%s validation rules", formType),
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > maxFieldQueries {
		names = names[:maxFieldQueries]
	}
	for _, name := range names {
		queries = append(queries, fmt.Sprintf("%s %s requirements", formType, name))
	}
	return queries
}

// SelectEvidence runs the expanded queries, deduplicates hits by exact chunk
// text keeping the first occurrence, and truncates to twice the configured
// top-K. A failed sub-query is skipped; an unusable index or a failure of
// every query aborts.
func (s *RetrievalService) SelectEvidence(ctx context.Context, formType string, fields map[string]models.ExtractedField) ([]vectorstore.SearchResult, error) {
	queries := s.ExpandQueries(formType, fields)

	var evidence []vectorstore.SearchResult
	seen := make(map[string]struct{})
	failed := 0

	for _, query := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		results, err := s.store.Search(ctx, query, perQueryTopK)
		if err != nil {
			if errors.Is(err, vectorstore.ErrNotBuilt) {
				return nil, err
			}
			s.logger.Warn("Policy query failed, skipping",
				zap.String("query", query),
				zap.Error(err),
			)
			failed++
			continue
		}

		for _, result := range results {
			if _, ok := seen[result.Document]; ok {
				continue
			}
			seen[result.Document] = struct{}{}
			evidence = append(evidence, result)
		}
	}

	// A verdict backed by zero policies because every query errored would be
	// indistinguishable from a legitimately empty corpus match.
	if failed == len(queries) {
		return nil, fmt.Errorf("all %d policy queries failed", failed)
	}

	if limit := 2 * s.topK; len(evidence) > limit {
		evidence = evidence[:limit]
	}

	s.logger.Info("Policy evidence selected",
		zap.String("form_type", formType),
		zap.Int("queries", len(queries)),
		zap.Int("chunks", len(evidence)),
	)
	return evidence, nil
}
