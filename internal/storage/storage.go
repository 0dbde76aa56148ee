package storage

import (
	"contracheck/internal/config"
	"contracheck/internal/domain"
)

// Storage persists and loads run reports (e.g. for the failures viewer).
type Storage interface {
	Save(report *domain.RunReport) error
	Load() (*domain.RunReport, error)
}

// JSONStorage stores reports in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Path returns the report file location.
func (s *JSONStorage) Path() string {
	return s.cfg.GetOutputPath()
}
