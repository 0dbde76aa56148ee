package fixtures

import (
	"path"
	"strings"

	"contracheck/internal/domain"
)

// Filter filters fixture pairs by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters pairs by name pattern using wildcard matching.
// Supports patterns like "incorrect/*" and "*calc*". A plain word selects a
// whole class ("correct") or stems containing it ("calc").
func (f *Filter) FilterByName(pairs []domain.FixturePair, pattern string) []domain.FixturePair {
	if pattern == "" {
		return pairs
	}

	var filtered []domain.FixturePair
	for _, p := range pairs {
		if matchName(p.Name, pattern) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	// Names are slash separated (class/stem); try the full name and the stem
	for _, candidate := range []string{name, path.Base(name)} {
		if matched, err := path.Match(pattern, candidate); err == nil && matched {
			return true
		}
	}

	if !strings.ContainsAny(pattern, "*?") {
		return matchPlain(name, pattern)
	}

	// Flexible fallback for patterns like "*calc*": every literal part must appear
	// in order, and a pattern that does not start with * is anchored at the start
	if strings.Contains(pattern, "?") {
		return false
	}
	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(name, parts[0]) {
		return false
	}
	rest := name[len(parts[0]):]
	nonEmpty := parts[0] != ""
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		nonEmpty = true
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}
	return nonEmpty
}

// matchPlain matches a pattern without wildcards against name segments so that
// "correct" never selects "incorrect/...". A pattern with a slash is a prefix of
// the name; otherwise it must equal a class segment or occur in the stem.
func matchPlain(name, pattern string) bool {
	if strings.Contains(pattern, "/") {
		return strings.HasPrefix(name, pattern)
	}
	segments := strings.Split(name, "/")
	for _, seg := range segments[:len(segments)-1] {
		if seg == pattern {
			return true
		}
	}
	return strings.Contains(segments[len(segments)-1], pattern)
}
