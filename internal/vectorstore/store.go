// Package vectorstore implements a flat nearest-neighbor index over policy
// chunks. Vectors and chunk records live in index-aligned slices; a reader
// must never observe the two at different lengths.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"formguard/internal/models"

	"go.uber.org/zap"
)

var (
	// ErrNotBuilt is returned by Search before any Build or Extend.
	ErrNotBuilt = errors.New("index not built")
	// ErrNotFound is returned by Load when either persisted artifact is absent.
	ErrNotFound = errors.New("index artifacts not found")
)

// Embedder turns text into fixed-dimension vectors. The same embedder must be
// used at build time and query time.
type Embedder interface {
	Model() string
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// SearchResult is one retrieved chunk, ranked by ascending distance.
type SearchResult struct {
	Rank       int              `json:"rank"`
	Document   string           `json:"document"`
	Meta       models.ChunkMeta `json:"metadata"`
	Distance   float64          `json:"distance"`
	Similarity float64          `json:"similarity"`
}

// Store is the embedding index. Search is safe to call concurrently against
// a stable index; Build, Extend, Save and Load take exclusive access.
type Store struct {
	embedder Embedder
	logger   *zap.Logger

	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	documents []string
	meta      []models.ChunkMeta
	modelName string
}

func NewStore(embedder Embedder, logger *zap.Logger) *Store {
	return &Store{
		embedder:  embedder,
		logger:    logger,
		modelName: embedder.Model(),
	}
}

// Build replaces any existing index with one computed from documents.
func (s *Store) Build(ctx context.Context, documents []string, meta []models.ChunkMeta) error {
	vectors, dim, err := s.embed(ctx, documents, meta)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dim
	s.vectors = vectors
	s.documents = append([]string(nil), documents...)
	s.meta = append([]models.ChunkMeta(nil), meta...)
	s.modelName = s.embedder.Model()

	s.logger.Info("Vector index built", zap.Int("documents", len(documents)), zap.Int("dimension", dim))
	return nil
}

// Extend appends documents to the index, preserving existing entries and
// their order. With no index built yet it behaves as Build.
func (s *Store) Extend(ctx context.Context, documents []string, meta []models.ChunkMeta) error {
	s.mu.RLock()
	empty := len(s.vectors) == 0
	s.mu.RUnlock()
	if empty {
		return s.Build(ctx, documents, meta)
	}

	vectors, dim, err := s.embed(ctx, documents, meta)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if dim != s.dimension {
		return fmt.Errorf("embedding dimension changed: index has %d, got %d", s.dimension, dim)
	}
	s.vectors = append(s.vectors, vectors...)
	s.documents = append(s.documents, documents...)
	s.meta = append(s.meta, meta...)

	s.logger.Info("Vector index extended", zap.Int("added", len(documents)), zap.Int("total", len(s.documents)))
	return nil
}

// Search embeds the query and returns the topK nearest chunks by squared
// Euclidean distance. Similarity is 1/(1+distance). Ties keep insertion order.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	queryVec := vectors[0]

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.vectors) == 0 {
		return nil, ErrNotBuilt
	}
	if topK <= 0 {
		topK = 5
	}
	if topK > len(s.vectors) {
		topK = len(s.vectors)
	}

	distances := make([]float64, len(s.vectors))
	for i, v := range s.vectors {
		distances[i] = squaredL2(v, queryVec)
	}

	order := make([]int, len(distances))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return distances[order[a]] < distances[order[b]]
	})

	results := make([]SearchResult, 0, topK)
	for rank := 0; rank < topK; rank++ {
		idx := order[rank]
		dist := distances[idx]
		results = append(results, SearchResult{
			Rank:       rank + 1,
			Document:   s.documents[idx],
			Meta:       s.meta[idx],
			Distance:   dist,
			Similarity: 1 / (1 + dist),
		})
	}
	return results, nil
}

// Len reports the number of indexed chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// ModelName reports the embedding model identifier the index was built with.
func (s *Store) ModelName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelName
}

func (s *Store) embed(ctx context.Context, documents []string, meta []models.ChunkMeta) ([][]float32, int, error) {
	if len(documents) == 0 {
		return nil, 0, errors.New("no documents to index")
	}
	if len(documents) != len(meta) {
		return nil, 0, fmt.Errorf("documents and metadata length mismatch: %d vs %d", len(documents), len(meta))
	}

	vectors, err := s.embedder.Embed(ctx, documents)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(vectors) != len(documents) {
		return nil, 0, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(documents))
	}

	dim := len(vectors[0])
	for _, v := range vectors {
		if len(v) != dim {
			return nil, 0, errors.New("embedder returned vectors of mixed dimension")
		}
	}
	return vectors, dim, nil
}

func squaredL2(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
