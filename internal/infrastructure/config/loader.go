// Package config persists user settings as YAML under ~/.cmdwatch.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/mdcognizant/cursor-sub001/assets"
	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/pkg/filesystem"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// FileStore loads and saves ~/.cmdwatch/config.yaml (overridable via
// CMDWATCH_CONFIG). Malformed persisted config falls back to defaults with
// a warning, never aborting startup.
type FileStore struct {
	overridePath string
	logger       ports.Logger
}

// NewFileStore builds a store; path overrides the default location.
func NewFileStore(path string, logger ports.Logger) *FileStore {
	return &FileStore{overridePath: path, logger: logger}
}

// Load implements ports.ConfigRepository.
func (s *FileStore) Load() (domain.Config, error) {
	path := s.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := domain.DefaultConfig()
			if err := s.write(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return domain.DefaultConfig(), err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if s.logger != nil {
			s.logger.Warn("config file is malformed, using defaults", map[string]interface{}{
				"path": path, "error": err.Error(),
			})
		}
		return domain.DefaultConfig(), fmt.Errorf("%w: %v", domain.ErrConfigCorrupt, err)
	}
	return hydrateDefaults(cfg), nil
}

// Save implements ports.ConfigRepository; persistence is atomic.
func (s *FileStore) Save(cfg domain.Config) error {
	return s.write(s.resolvePath(), cfg)
}

// Reset restores the documented built-in defaults and persists them
// immediately.
func (s *FileStore) Reset() (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if err := s.Save(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Path returns the resolved config file location.
func (s *FileStore) Path() string { return s.resolvePath() }

func (s *FileStore) resolvePath() string {
	if s.overridePath != "" {
		return s.overridePath
	}
	if custom := os.Getenv("CMDWATCH_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".cmdwatch", "config.yaml")
}

func (s *FileStore) write(path string, cfg domain.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, raw, domain.SecureFilePermissions)
}

// hydrateDefaults fills gaps a hand-edited file may leave, keeping the
// loaded config usable without forcing a rewrite.
func hydrateDefaults(cfg domain.Config) domain.Config {
	defaults := domain.DefaultConfig()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = defaults.ConfigFormatVersion
	}
	if cfg.DefaultTimeoutSeconds <= 0 {
		cfg.DefaultTimeoutSeconds = defaults.DefaultTimeoutSeconds
	}
	if cfg.CommandTimeouts == nil {
		cfg.CommandTimeouts = map[string]int{}
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = defaults.MaxHistory
	}
	if cfg.SlowThresholdSeconds <= 0 {
		cfg.SlowThresholdSeconds = defaults.SlowThresholdSeconds
	}
	if cfg.Shell == "" {
		cfg.Shell = defaults.Shell
	}
	if cfg.Diagnostics.ProbeTimeoutSeconds <= 0 {
		cfg.Diagnostics.ProbeTimeoutSeconds = defaults.Diagnostics.ProbeTimeoutSeconds
	}
	if cfg.Diagnostics.ProfileWarnSeconds <= 0 {
		cfg.Diagnostics.ProfileWarnSeconds = defaults.Diagnostics.ProfileWarnSeconds
	}
	if cfg.Diagnostics.ProfileFailSeconds <= 0 {
		cfg.Diagnostics.ProfileFailSeconds = defaults.Diagnostics.ProfileFailSeconds
	}
	if cfg.Diagnostics.PathWarnEntries <= 0 {
		cfg.Diagnostics.PathWarnEntries = defaults.Diagnostics.PathWarnEntries
	}
	if cfg.Diagnostics.VCSWarnSeconds <= 0 {
		cfg.Diagnostics.VCSWarnSeconds = defaults.Diagnostics.VCSWarnSeconds
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

// DefaultYAML exposes the embedded annotated default config for `config
// --show` on a fresh install.
func DefaultYAML() []byte { return assets.DefaultConfigYAML }

var _ ports.ConfigRepository = (*FileStore)(nil)
