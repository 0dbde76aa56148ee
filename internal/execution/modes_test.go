package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contracheck/internal/domain"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestModeSelector_Select(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		offlineOnly bool
		modes       []domain.ExecutionMode
		skipReason  string
	}{
		{
			name:       "credential absent skips live",
			env:        map[string]string{},
			modes:      []domain.ExecutionMode{domain.ModeOffline},
			skipReason: "OPENAI_API_KEY is not set",
		},
		{
			name:       "empty credential counts as absent",
			env:        map[string]string{"OPENAI_API_KEY": ""},
			modes:      []domain.ExecutionMode{domain.ModeOffline},
			skipReason: "OPENAI_API_KEY is not set",
		},
		{
			name:  "credential present schedules live",
			env:   map[string]string{"OPENAI_API_KEY": "sk-test"},
			modes: []domain.ExecutionMode{domain.ModeOffline, domain.ModeLive},
		},
		{
			name:        "offline only",
			env:         map[string]string{"OPENAI_API_KEY": "sk-test"},
			offlineOnly: true,
			modes:       []domain.ExecutionMode{domain.ModeOffline},
			skipReason:  "disabled by --offline-only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewModeSelector("OPENAI_API_KEY", tt.offlineOnly).Select(lookupFrom(tt.env))

			assert.Equal(t, tt.modes, sel.Modes)
			if tt.skipReason == "" {
				assert.Empty(t, sel.Skipped)
				return
			}
			if assert.Len(t, sel.Skipped, 1) {
				assert.Equal(t, domain.ModeLive, sel.Skipped[0].Mode)
				assert.Equal(t, tt.skipReason, sel.Skipped[0].Reason)
				assert.NotContains(t, sel.Skipped[0].Reason, "sk-test")
			}
		})
	}
}

func TestModeSelector_SelectEvaluatesOnce(t *testing.T) {
	calls := 0
	lookup := func(key string) (string, bool) {
		calls++
		return "sk-test", true
	}
	NewModeSelector("OPENAI_API_KEY", false).Select(lookup)
	assert.Equal(t, 1, calls)
}
