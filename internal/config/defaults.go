package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultDetectorPath is where the detector binary is expected, relative to the project
	DefaultDetectorPath = "check_differences"
	// DefaultFixturesPath is the fixtures root, relative to the project
	DefaultFixturesPath = "fixtures"
	// DefaultManifestFile is the optional explicit fixture list inside the fixtures root
	DefaultManifestFile = "fixtures.yaml"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "last-run.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".contracheck"
	// DefaultEnvFile is loaded before the credential check when present
	DefaultEnvFile = ".env"

	// DefaultModeEnv is set on the detector's environment to select its mode
	DefaultModeEnv = "LLM_MODE"
	// DefaultCredentialEnv gates live-mode test cases
	DefaultCredentialEnv = "OPENAI_API_KEY"
	// DefaultOfflineID is the mode identifier the detector understands as offline
	DefaultOfflineID = "mock"
	// DefaultLiveID is the mode identifier the detector understands as live
	DefaultLiveID = "openai"

	// DefaultTimeout of zero means invocations may block until the detector exits
	DefaultTimeout time.Duration = 0

	// DetectorBuildHint is printed when the detector is missing
	DetectorBuildHint = "build it first with: go build -o check_differences"

	// EnvDetector overrides the detector path
	EnvDetector = "CONTRACHECK_DETECTOR"
	// EnvHistoryDSN enables the MySQL run history
	EnvHistoryDSN = "CONTRACHECK_HISTORY_DSN"
)

// DefaultClassificationDirs maps classification directory names to whether their
// pairs are expected to contain a contradiction.
var DefaultClassificationDirs = map[string]bool{
	"correct":   false,
	"incorrect": true,
}
