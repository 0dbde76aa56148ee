package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"contracheck/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath  string
	DetectorPath string
	FixturesPath string
	ManifestFile string
	EnvFile      string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	HistoryDSN     string

	// Detector contract
	ModeEnv       string
	CredentialEnv string
	ModeIDs       map[domain.ExecutionMode]string
	Timeout       time.Duration

	// Classification directory name -> expected contradiction
	ClassificationDirs map[string]bool

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		DetectorPath:   DefaultDetectorPath,
		FixturesPath:   DefaultFixturesPath,
		ManifestFile:   DefaultManifestFile,
		EnvFile:        DefaultEnvFile,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		ModeEnv:        DefaultModeEnv,
		CredentialEnv:  DefaultCredentialEnv,
		Timeout:        DefaultTimeout,
		ModeIDs: map[domain.ExecutionMode]string{
			domain.ModeOffline: DefaultOfflineID,
			domain.ModeLive:    DefaultLiveID,
		},
	}
	cfg.ClassificationDirs = make(map[string]bool, len(DefaultClassificationDirs))
	for dir, contradiction := range DefaultClassificationDirs {
		cfg.ClassificationDirs[dir] = contradiction
	}
	return cfg
}

// Load creates a config, applies the environment and then flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Apply(flags)
	return cfg
}

// Apply overlays environment fallbacks and non-zero flags onto the config.
func (c *Config) Apply(flags Flags) {
	c.Flags = flags

	if v := os.Getenv(EnvDetector); v != "" {
		c.DetectorPath = v
	}
	if v := os.Getenv(EnvHistoryDSN); v != "" {
		c.HistoryDSN = v
	}

	if flags.Detector != "" {
		c.DetectorPath = flags.Detector
	}
	if flags.Fixtures != "" {
		c.FixturesPath = flags.Fixtures
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	if flags.ModeEnv != "" {
		c.ModeEnv = flags.ModeEnv
	}
	if flags.CredentialEnv != "" {
		c.CredentialEnv = flags.CredentialEnv
	}
	if flags.OfflineID != "" {
		c.ModeIDs[domain.ModeOffline] = flags.OfflineID
	}
	if flags.LiveID != "" {
		c.ModeIDs[domain.ModeLive] = flags.LiveID
	}
	if flags.EnvFile != "" {
		c.EnvFile = flags.EnvFile
	}
	if flags.HistoryDSN != "" {
		c.HistoryDSN = flags.HistoryDSN
	}
}

// LoadEnvFile loads the configured .env file without overriding variables that
// are already set. A missing file is not an error.
func (c *Config) LoadEnvFile() error {
	path := c.resolve(c.EnvFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// GetDetectorPath returns the absolute detector path. Relative paths resolve
// against the project so a bare name is never looked up in PATH.
func (c *Config) GetDetectorPath() string {
	p := c.resolve(c.DetectorPath)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetFixturesPath returns the fixtures root
func (c *Config) GetFixturesPath() string {
	return c.resolve(c.FixturesPath)
}

// GetManifestPath returns the path of the optional fixture manifest
func (c *Config) GetManifestPath() string {
	return filepath.Join(c.GetFixturesPath(), c.ManifestFile)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// ModeID returns the identifier passed to the detector for a mode.
func (c *Config) ModeID(mode domain.ExecutionMode) string {
	if id, ok := c.ModeIDs[mode]; ok && id != "" {
		return id
	}
	return string(mode)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}
