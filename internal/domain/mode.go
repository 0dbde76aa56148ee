package domain

import "fmt"

// ExecutionMode selects how the detector performs its analysis.
type ExecutionMode string

const (
	// ModeOffline is deterministic and makes no network calls.
	ModeOffline ExecutionMode = "offline"
	// ModeLive uses a real backend service and needs a credential.
	ModeLive ExecutionMode = "live"
)

// ParseExecutionMode converts a string into an ExecutionMode.
func ParseExecutionMode(s string) (ExecutionMode, error) {
	switch ExecutionMode(s) {
	case ModeOffline, ModeLive:
		return ExecutionMode(s), nil
	default:
		return "", fmt.Errorf("unknown execution mode %q", s)
	}
}

func (m ExecutionMode) String() string {
	return string(m)
}
