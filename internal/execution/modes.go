package execution

import (
	"fmt"

	"contracheck/internal/domain"
)

// ModeSelector decides once, at startup, which execution modes are scheduled
type ModeSelector struct {
	credentialEnv string
	offlineOnly   bool
}

// Selection is the outcome of mode selection.
type Selection struct {
	Modes   []domain.ExecutionMode
	Skipped []domain.SkippedMode
}

// NewModeSelector creates a new ModeSelector
func NewModeSelector(credentialEnv string, offlineOnly bool) *ModeSelector {
	return &ModeSelector{credentialEnv: credentialEnv, offlineOnly: offlineOnly}
}

// Select always includes offline mode and includes live mode only when the
// credential variable is non-empty. The credential value is never retained.
func (s *ModeSelector) Select(lookup func(string) (string, bool)) Selection {
	sel := Selection{Modes: []domain.ExecutionMode{domain.ModeOffline}}

	switch {
	case s.offlineOnly:
		sel.Skipped = append(sel.Skipped, domain.SkippedMode{
			Mode:   domain.ModeLive,
			Reason: "disabled by --offline-only",
		})
	case !credentialPresent(lookup, s.credentialEnv):
		sel.Skipped = append(sel.Skipped, domain.SkippedMode{
			Mode:   domain.ModeLive,
			Reason: fmt.Sprintf("%s is not set", s.credentialEnv),
		})
	default:
		sel.Modes = append(sel.Modes, domain.ModeLive)
	}

	return sel
}

func credentialPresent(lookup func(string) (string, bool), name string) bool {
	if lookup == nil || name == "" {
		return false
	}
	v, ok := lookup(name)
	return ok && v != ""
}
