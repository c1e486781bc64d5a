package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"formguard/internal/corpus"
	"formguard/internal/models"
	"formguard/internal/textproc"
	"formguard/internal/vectorstore"
	"formguard/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EvidenceSelector is the retrieval planner as the orchestrator sees it.
type EvidenceSelector interface {
	SelectEvidence(ctx context.Context, formType string, fields map[string]models.ExtractedField) ([]vectorstore.SearchResult, error)
}

// VerdictAssessor is the compliance reasoner as the orchestrator sees it.
type VerdictAssessor interface {
	Assess(ctx context.Context, record models.ExtractedFieldRecord, evidence []vectorstore.SearchResult) *models.ValidationResult
}

// HistoryRecorder persists verdicts for later review. Persistence failures
// never change the verdict returned to the caller.
type HistoryRecorder interface {
	Save(ctx context.Context, userID uuid.UUID, result *models.ValidationResult) error
}

// ValidationService is the public entry point of the validator. It owns the
// index lifecycle and drives retrieval then reasoning, converting every
// failure into a well-formed ERROR result.
type ValidationService struct {
	store     *vectorstore.Store
	retrieval EvidenceSelector
	reasoner  VerdictAssessor
	history   HistoryRecorder
	cfg       config.IndexConfig
	logger    *zap.Logger
	available atomic.Bool
}

// NewValidationService restores the persisted index. If the artifacts are
// absent the service starts unavailable and every Validate call reports an
// ERROR result until the index is rebuilt.
func NewValidationService(
	store *vectorstore.Store,
	retrieval EvidenceSelector,
	reasoner VerdictAssessor,
	history HistoryRecorder,
	cfg config.IndexConfig,
	logger *zap.Logger,
) *ValidationService {
	s := &ValidationService{
		store:     store,
		retrieval: retrieval,
		reasoner:  reasoner,
		history:   history,
		cfg:       cfg,
		logger:    logger,
	}

	if err := store.Load(cfg.IndexDir); err != nil {
		if errors.Is(err, vectorstore.ErrNotFound) {
			logger.Warn("Policy index not found, validation unavailable until rebuild",
				zap.String("dir", cfg.IndexDir))
		} else {
			logger.Error("Failed to load policy index", zap.Error(err))
		}
	} else {
		s.available.Store(true)
	}

	return s
}

// Available reports whether the policy index is loaded.
func (s *ValidationService) Available() bool {
	return s.available.Load()
}

// IndexSize reports the number of indexed policy chunks.
func (s *ValidationService) IndexSize() int {
	return s.store.Len()
}

// Validate checks one extracted-field record against the indexed policies.
// It always returns a well-formed result and never an error.
func (s *ValidationService) Validate(ctx context.Context, userID uuid.UUID, record models.ExtractedFieldRecord) *models.ValidationResult {
	record = record.Normalized()

	if record.Error != "" {
		// The extraction component failed upstream; proceed with whatever
		// field data survived rather than crashing.
		s.logger.Warn("Extraction reported an error, validating degraded record",
			zap.String("extraction_error", record.Error))
	}

	var result *models.ValidationResult
	if !s.available.Load() {
		result = models.ErrorResult(record.FormType,
			"Policy index is not available. Rebuild the index and retry.")
	} else {
		result = s.validate(ctx, record)
	}

	if s.history != nil {
		if err := s.history.Save(ctx, userID, result); err != nil {
			s.logger.Warn("Failed to persist validation result", zap.Error(err))
		}
	}
	return result
}

func (s *ValidationService) validate(ctx context.Context, record models.ExtractedFieldRecord) *models.ValidationResult {
	evidence, err := s.retrieval.SelectEvidence(ctx, record.FormType, record.ExtractedFields)
	if err != nil {
		s.logger.Error("Policy retrieval failed", zap.Error(err))
		return models.ErrorResult(record.FormType,
			fmt.Sprintf("Policy retrieval failed: %v", err))
	}

	s.logger.Info("Validating form",
		zap.String("form_type", record.FormType),
		zap.Int("fields", len(record.ExtractedFields)),
		zap.Int("evidence_chunks", len(evidence)),
	)

	return s.reasoner.Assess(ctx, record, evidence)
}

// RebuildIndex rebuilds the embedding index from the given policy documents
// and persists it. Idempotent for the same corpus.
func (s *ValidationService) RebuildIndex(ctx context.Context, policies []models.PolicyDocument) error {
	if len(policies) == 0 {
		return errors.New("no policy documents to index")
	}

	var documents []string
	var meta []models.ChunkMeta
	for i, p := range policies {
		fileName := corpus.FileName(i+1, p)
		cleaned := textproc.Clean(corpus.Render(p))
		chunks, err := textproc.ChunkWords(cleaned, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
		if err != nil {
			return fmt.Errorf("failed to chunk policy %s: %w", p.FormType, err)
		}
		for _, chunk := range chunks {
			documents = append(documents, chunk)
			meta = append(meta, models.ChunkMeta{SourceFile: fileName, FormType: p.FormType})
		}
	}

	return s.rebuild(ctx, documents, meta)
}

// RebuildFromDir rebuilds the index from the rendered policy documents in the
// configured corpus directory, allowing offline corpus regeneration without
// redeploying the serving process.
func (s *ValidationService) RebuildFromDir(ctx context.Context) error {
	docs, err := corpus.LoadDir(s.cfg.CorpusDir)
	if err != nil {
		return fmt.Errorf("failed to load policy corpus: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no policy documents in %s", s.cfg.CorpusDir)
	}

	var documents []string
	var meta []models.ChunkMeta
	for _, doc := range docs {
		cleaned := textproc.Clean(doc.Content)
		chunks, err := textproc.ChunkWords(cleaned, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
		if err != nil {
			return fmt.Errorf("failed to chunk %s: %w", doc.FileName, err)
		}
		for _, chunk := range chunks {
			documents = append(documents, chunk)
			meta = append(meta, models.ChunkMeta{SourceFile: doc.FileName, FormType: doc.FormType})
		}
	}

	return s.rebuild(ctx, documents, meta)
}

func (s *ValidationService) rebuild(ctx context.Context, documents []string, meta []models.ChunkMeta) error {
	if err := s.store.Build(ctx, documents, meta); err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	if err := s.store.Save(s.cfg.IndexDir); err != nil {
		return fmt.Errorf("failed to persist index: %w", err)
	}
	s.available.Store(true)

	s.logger.Info("Policy index rebuilt",
		zap.Int("chunks", len(documents)),
		zap.String("dir", s.cfg.IndexDir),
	)
	return nil
}
