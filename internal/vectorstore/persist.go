package vectorstore

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"formguard/internal/models"

	"go.uber.org/zap"
)

// The index persists as two co-located artifacts that must always travel
// together: the vector structure and the chunk/metadata bundle.
const (
	indexFileName     = "index.bin"
	documentsFileName = "documents.json"
)

type indexArtifact struct {
	Dimension int
	Vectors   [][]float32
}

type documentsArtifact struct {
	Documents []string           `json:"documents"`
	Metadata  []models.ChunkMeta `json:"metadata"`
	ModelName string             `json:"model_name"`
}

// Save writes both artifacts under dir. Each file is written to a temporary
// location and renamed into place so readers never see a partial write.
func (s *Store) Save(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.vectors) == 0 {
		return ErrNotBuilt
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create index dir: %w", err)
	}

	if err := writeAtomic(filepath.Join(dir, indexFileName), func(f *os.File) error {
		return gob.NewEncoder(f).Encode(indexArtifact{Dimension: s.dimension, Vectors: s.vectors})
	}); err != nil {
		return fmt.Errorf("failed to write vector index: %w", err)
	}

	if err := writeAtomic(filepath.Join(dir, documentsFileName), func(f *os.File) error {
		return json.NewEncoder(f).Encode(documentsArtifact{
			Documents: s.documents,
			Metadata:  s.meta,
			ModelName: s.modelName,
		})
	}); err != nil {
		return fmt.Errorf("failed to write document bundle: %w", err)
	}

	s.logger.Info("Vector index saved", zap.String("dir", dir), zap.Int("documents", len(s.documents)))
	return nil
}

// Load reads both artifacts from dir and swaps them in together. A missing
// artifact yields ErrNotFound and leaves the in-memory index untouched.
func (s *Store) Load(dir string) error {
	indexPath := filepath.Join(dir, indexFileName)
	documentsPath := filepath.Join(dir, documentsFileName)

	for _, path := range []string{indexPath, documentsPath} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
	}

	indexFile, err := os.Open(indexPath)
	if err != nil {
		return fmt.Errorf("failed to open vector index: %w", err)
	}
	defer indexFile.Close()

	var idx indexArtifact
	if err := gob.NewDecoder(indexFile).Decode(&idx); err != nil {
		return fmt.Errorf("failed to decode vector index: %w", err)
	}

	documentsFile, err := os.Open(documentsPath)
	if err != nil {
		return fmt.Errorf("failed to open document bundle: %w", err)
	}
	defer documentsFile.Close()

	var docs documentsArtifact
	if err := json.NewDecoder(documentsFile).Decode(&docs); err != nil {
		return fmt.Errorf("failed to decode document bundle: %w", err)
	}

	if len(idx.Vectors) != len(docs.Documents) || len(docs.Documents) != len(docs.Metadata) {
		return fmt.Errorf("corrupt index artifacts: %d vectors, %d documents, %d metadata records",
			len(idx.Vectors), len(docs.Documents), len(docs.Metadata))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = idx.Dimension
	s.vectors = idx.Vectors
	s.documents = docs.Documents
	s.meta = docs.Metadata
	s.modelName = docs.ModelName

	if embedderModel := s.embedder.Model(); docs.ModelName != "" && docs.ModelName != embedderModel {
		s.logger.Warn("Index was built with a different embedding model",
			zap.String("index_model", docs.ModelName),
			zap.String("embedder_model", embedderModel),
		)
	}

	s.logger.Info("Vector index loaded", zap.String("dir", dir), zap.Int("documents", len(s.documents)))
	return nil
}

func writeAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
