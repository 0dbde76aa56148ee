package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"contracheck/internal/domain"
)

// DocumentationExt marks the documentation artifact of a pair.
const DocumentationExt = ".md"

// Scanner discovers fixture pairs under a fixtures root
type Scanner struct {
	classes      map[string]bool
	manifestName string
}

// NewScanner creates a new Scanner for the given classification directories
func NewScanner(classes map[string]bool, manifestName string) *Scanner {
	classMap := make(map[string]bool, len(classes))
	for dir, contradiction := range classes {
		classMap[dir] = contradiction
	}
	return &Scanner{classes: classMap, manifestName: manifestName}
}

// Scan finds all fixture pairs in the given root directory. A manifest in the
// root takes precedence over directory scanning.
func (s *Scanner) Scan(root string) ([]domain.FixturePair, error) {
	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("fixtures path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixtures path is not a directory: %s", root)
	}

	if s.manifestName != "" {
		manifestPath := filepath.Join(root, s.manifestName)
		if _, err := os.Stat(manifestPath); err == nil {
			return LoadManifest(manifestPath)
		}
	}

	dirs := make([]string, 0, len(s.classes))
	for dir := range s.classes {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var pairs []domain.FixturePair
	for _, dir := range dirs {
		classPath := filepath.Join(root, dir)
		info, err := os.Stat(classPath)
		if err != nil || !info.IsDir() {
			continue
		}
		found, err := s.scanClass(classPath, dir, s.classes[dir])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, found...)
	}

	return pairs, nil
}

// scanClass groups the files of one classification directory into pairs by stem.
func (s *Scanner) scanClass(classPath, class string, contradiction bool) ([]domain.FixturePair, error) {
	entries, err := os.ReadDir(classPath)
	if err != nil {
		return nil, fmt.Errorf("read classification dir %s: %w", classPath, err)
	}

	type group struct {
		docs  []string
		impls []string
	}
	groups := make(map[string]*group)

	for _, entry := range entries {
		name := entry.Name()
		// Skip hidden files and nested directories
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		g := groups[stem]
		if g == nil {
			g = &group{}
			groups[stem] = g
		}
		if strings.EqualFold(ext, DocumentationExt) {
			g.docs = append(g.docs, name)
		} else {
			g.impls = append(g.impls, name)
		}
	}

	stems := make([]string, 0, len(groups))
	for stem := range groups {
		stems = append(stems, stem)
	}
	sort.Strings(stems)

	pairs := make([]domain.FixturePair, 0, len(stems))
	for _, stem := range stems {
		g := groups[stem]
		if len(g.docs) != 1 || len(g.impls) != 1 {
			return nil, fmt.Errorf("%s/%s: expected one implementation and one %s file, found %d and %d",
				class, stem, DocumentationExt, len(g.impls), len(g.docs))
		}
		pairs = append(pairs, domain.FixturePair{
			Name:                  class + "/" + stem,
			ImplementationPath:    filepath.Join(classPath, g.impls[0]),
			DocumentationPath:     filepath.Join(classPath, g.docs[0]),
			ExpectedContradiction: contradiction,
		})
	}
	return pairs, nil
}

// ValidateAll checks every pair before anything is invoked.
func ValidateAll(pairs []domain.FixturePair) error {
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if seen[p.Name] {
			return fmt.Errorf("duplicate fixture name: %s", p.Name)
		}
		seen[p.Name] = true
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
