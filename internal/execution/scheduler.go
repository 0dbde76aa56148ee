package execution

import "contracheck/internal/domain"

// Scheduler orders (pair, mode) combinations into test cases
type Scheduler interface {
	Schedule(pairs []domain.FixturePair, modes []domain.ExecutionMode) []domain.TestCase
}

// ModeMajorScheduler runs every pair in one mode before moving to the next mode
type ModeMajorScheduler struct{}

// NewModeMajorScheduler creates a new ModeMajorScheduler
func NewModeMajorScheduler() *ModeMajorScheduler {
	return &ModeMajorScheduler{}
}

// Schedule returns the cases mode by mode, keeping fixture order within a mode
func (s *ModeMajorScheduler) Schedule(pairs []domain.FixturePair, modes []domain.ExecutionMode) []domain.TestCase {
	cases := make([]domain.TestCase, 0, len(pairs)*len(modes))
	for _, mode := range modes {
		for _, pair := range pairs {
			cases = append(cases, domain.TestCase{Pair: pair, Mode: mode})
		}
	}
	return cases
}
