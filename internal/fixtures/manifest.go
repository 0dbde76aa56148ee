package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"contracheck/internal/domain"
)

// Manifest lists fixture pairs explicitly.
//
//	pairs:
//	  - name: correct/calculator
//	    implementation: correct/calculator.js
//	    documentation: correct/calculator.md
//	    contradiction: false
type Manifest struct {
	Pairs []domain.FixturePair `yaml:"pairs"`
}

// LoadManifest reads a manifest file. Relative artifact paths resolve against the
// manifest's directory.
func LoadManifest(path string) ([]domain.FixturePair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	pairs := make([]domain.FixturePair, 0, len(m.Pairs))
	for i, p := range m.Pairs {
		if err := validateEntry(p); err != nil {
			return nil, fmt.Errorf("manifest %s: pair %d: %w", path, i+1, err)
		}
		if !filepath.IsAbs(p.ImplementationPath) {
			p.ImplementationPath = filepath.Join(base, p.ImplementationPath)
		}
		if !filepath.IsAbs(p.DocumentationPath) {
			p.DocumentationPath = filepath.Join(base, p.DocumentationPath)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func validateEntry(p domain.FixturePair) error {
	switch {
	case p.Name == "":
		return errors.New("name is required")
	case p.ImplementationPath == "":
		return errors.New("implementation is required")
	case p.DocumentationPath == "":
		return errors.New("documentation is required")
	}
	return nil
}
