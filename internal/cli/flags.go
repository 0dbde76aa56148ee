package cli

import (
	"time"

	"contracheck/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Detector      string
	Fixtures      string
	NameFilter    string
	Timeout       time.Duration
	OfflineOnly   bool
	Progress      bool
	ModeEnv       string
	CredentialEnv string
	OfflineID     string
	LiveID        string
	EnvFile       string
	HistoryDSN    string
	Plain         bool
	Mode          string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Detector:      f.Detector,
		Fixtures:      f.Fixtures,
		NameFilter:    f.NameFilter,
		Timeout:       f.Timeout,
		OfflineOnly:   f.OfflineOnly,
		Progress:      f.Progress,
		ModeEnv:       f.ModeEnv,
		CredentialEnv: f.CredentialEnv,
		OfflineID:     f.OfflineID,
		LiveID:        f.LiveID,
		EnvFile:       f.EnvFile,
		HistoryDSN:    f.HistoryDSN,
		Plain:         f.Plain,
		Mode:          f.Mode,
	}
}
