package domain

import (
	"fmt"
	"os"
	"path/filepath"
)

// FixturePair is an implementation artifact and the documentation describing it,
// labeled with whether the detector is expected to find a contradiction.
type FixturePair struct {
	Name                  string `json:"name" yaml:"name"`
	ImplementationPath    string `json:"implementation" yaml:"implementation"`
	DocumentationPath     string `json:"documentation" yaml:"documentation"`
	ExpectedContradiction bool   `json:"contradiction" yaml:"contradiction"`
}

// ExpectedExitCode is the detector exit status that counts as a pass for this pair.
func (p FixturePair) ExpectedExitCode() int {
	if p.ExpectedContradiction {
		return ExitContradiction
	}
	return ExitConsistent
}

// Args returns the positional arguments passed to the detector.
func (p FixturePair) Args() []string {
	return []string{p.ImplementationPath, p.DocumentationPath}
}

// Classification returns a short label for the expected outcome.
func (p FixturePair) Classification() string {
	if p.ExpectedContradiction {
		return "contradictory"
	}
	return "consistent"
}

// Validate checks that both artifacts exist and can be read.
func (p FixturePair) Validate() error {
	for _, path := range p.Args() {
		if err := checkReadable(path); err != nil {
			return fmt.Errorf("fixture %s: %w", p.Name, err)
		}
	}
	return nil
}

func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("artifact not found: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("artifact is not a regular file: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("artifact not readable: %s: %w", path, err)
	}
	return f.Close()
}

// TestCase is one scheduled (fixture pair, mode) combination.
type TestCase struct {
	Pair FixturePair
	Mode ExecutionMode
}

// Description is the human-readable label used in progress lines and summaries.
func (tc TestCase) Description() string {
	return fmt.Sprintf("%s: %s + %s (%s)",
		tc.Pair.Name,
		filepath.Base(tc.Pair.ImplementationPath),
		filepath.Base(tc.Pair.DocumentationPath),
		tc.Mode)
}
